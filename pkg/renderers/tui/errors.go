package tui

import "errors"

// ErrAborted signals the user aborted input, typically with Ctrl+C. Callers
// should treat the session as unsubmitted.
var ErrAborted = errors.New("tui: aborted")
