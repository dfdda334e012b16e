// SPDX-License-Identifier: EPL-2.0

package plugin

import "errors"

var (
	// ErrOpenFailed wraps native loading/instantiation failures so they
	// stay distinguishable from sample stream I/O errors.
	ErrOpenFailed = errors.New("plugin failed to open")
	// ErrNotOpen is returned when metadata is requested before Open.
	ErrNotOpen = errors.New("plugin is not open")
	// ErrUnknownReference is returned for a chain reference that matches
	// no builtin name and no loadable binary.
	ErrUnknownReference = errors.New("unknown plugin reference")
)
