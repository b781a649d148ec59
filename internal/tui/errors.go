package tui

import "errors"

// ErrInterrupted is returned when the user quits while a task is running.
var ErrInterrupted = errors.New("interrupted")
