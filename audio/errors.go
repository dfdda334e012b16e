// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrChannelMapUnsupported = errors.New("unsupported channel mapping")
	ErrSourceClosed          = errors.New("source is closed")
	ErrSinkClosed            = errors.New("sink is closed")
)
