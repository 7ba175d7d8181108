package utils

import "errors"

// ErrUserInitiatedExit is returned when the user asks to stop, by interrupt,
// by an empty line or by one of the quit words.
var ErrUserInitiatedExit = errors.New("user exited")
