package invoker

import (
	"fmt"
	"strings"
)

// ToolNotFoundError is returned when a program or interpreter cannot be
// found.
type ToolNotFoundError struct {
	Tool       string
	Candidates []string
}

func (e *ToolNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%s not found, make sure it is installed and on PATH", e.Tool)
	}
	return fmt.Sprintf("%s not found (looked for %s)", e.Tool, strings.Join(e.Candidates, ", "))
}

// InvocationError is returned when a tool could not be started or exited
// with a non-zero code.
type InvocationError struct {
	Argv     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *InvocationError) Error() string {
	name := "command"
	if len(e.Argv) > 0 {
		name = e.Argv[0]
	}
	if e.Err != nil && e.ExitCode <= 0 {
		return fmt.Sprintf("failed to run %s: %v", name, e.Err)
	}
	msg := fmt.Sprintf("%s exited with code %d", name, e.ExitCode)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
