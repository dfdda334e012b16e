// SPDX-License-Identifier: EPL-2.0

package host

import "errors"

// Category sentinels for the run outcome. Every failure the engine surfaces
// wraps exactly one of these, so callers choose an exit signal with
// errors.Is. There is no retry anywhere: a deterministic batch render that
// silently recovered would corrupt its own sample-accuracy guarantee.
var (
	// ErrConfiguration marks missing or contradictory required resources,
	// detected before the loop starts. Never a partial run.
	ErrConfiguration = errors.New("configuration error")
	// ErrResourceOpen marks a source that failed to open.
	ErrResourceOpen = errors.New("resource open error")
	// ErrPluginChain marks a plugin that failed construction or
	// initialization.
	ErrPluginChain = errors.New("plugin chain error")
	// ErrRuntimeIO marks a read or write failing mid-run; the run stops
	// at the failing block and frames already written stay on disk.
	ErrRuntimeIO = errors.New("runtime I/O error")
)
