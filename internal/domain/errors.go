package domain

import "errors"

// Fatal conditions. Callers match them with errors.Is.
var (
	ErrRuntimeMissing       = errors.New("required runtime not found")
	ErrRuntimeTooOld        = errors.New("runtime version below minimum")
	ErrTerminalUnsupported  = errors.New("terminal library unavailable")
	ErrPayloadMissing       = errors.New("payload missing")
	ErrPayloadCorrupt       = errors.New("payload checksum mismatch")
	ErrElevationUnavailable = errors.New("elevation required but unavailable")
	ErrHomeUnavailable      = errors.New("home directory unavailable")
	ErrInterrupted          = errors.New("interrupted before modifying the filesystem")
)
