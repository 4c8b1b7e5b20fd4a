package engine

import "errors"

// ErrNotReady is returned when an operation requires an initialized stage.
// Callers must not attempt any network or engine call after seeing it.
var ErrNotReady = errors.New("engine: stage is not initialized")
