// SPDX-License-Identifier: EPL-2.0

package smf

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
