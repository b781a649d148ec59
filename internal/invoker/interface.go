package invoker

import (
	"context"
	"io"
)

// Runner launches external tools. Implementations never go through a shell;
// Argv[0] is the program and the rest are passed verbatim.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Command is one tool invocation.
type Command struct {
	Argv []string

	// Dir is the working directory; empty means the current one
	Dir string

	// Output receives stdout and stderr line by line while the tool runs.
	// It may be nil.
	Output io.Writer
}

// Result is what a finished tool left behind.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
