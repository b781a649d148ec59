package invoker

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// MockResponse is what MockRunner answers for one argv.
type MockResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int

	// Err simulates a failure to start the tool
	Err error
}

// MockRunner implements Runner for testing. Every call is recorded and
// answered from the responses registered with On; unknown commands succeed
// with empty output.
type MockRunner struct {
	mu        sync.Mutex
	calls     []Command
	responses map[string]MockResponse
	missing   map[string]bool
}

var _ Runner = (*MockRunner)(nil)

// NewMockRunner creates a new MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{
		responses: make(map[string]MockResponse),
		missing:   make(map[string]bool),
	}
}

// On registers the response for argv.
func (m *MockRunner) On(argv []string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key(argv)] = resp
}

// Missing makes every command starting with program fail as not installed.
func (m *MockRunner) Missing(program string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing[program] = true
}

// Calls returns the recorded commands in call order.
func (m *MockRunner) Calls() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

// Argvs returns the argv of every recorded command.
func (m *MockRunner) Argvs() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Argv
	}
	return out
}

func (m *MockRunner) Run(_ context.Context, cmd Command) (Result, error) {
	m.mu.Lock()
	cmd.Argv = slices.Clone(cmd.Argv)
	m.calls = append(m.calls, cmd)
	resp, ok := m.responses[key(cmd.Argv)]
	missing := len(cmd.Argv) > 0 && m.missing[cmd.Argv[0]]
	m.mu.Unlock()

	if missing {
		return Result{ExitCode: -1}, &ToolNotFoundError{Tool: cmd.Argv[0]}
	}
	if !ok {
		return Result{}, nil
	}

	if resp.Err != nil {
		return Result{ExitCode: -1}, &InvocationError{Argv: cmd.Argv, ExitCode: -1, Err: resp.Err}
	}

	if cmd.Output != nil {
		for _, stream := range []string{resp.Stdout, resp.Stderr} {
			for _, line := range strings.Split(strings.TrimSuffix(stream, "\n"), "\n") {
				if line != "" {
					fmt.Fprintln(cmd.Output, line)
				}
			}
		}
	}

	res := Result{ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}
	if resp.ExitCode != 0 {
		return res, &InvocationError{Argv: cmd.Argv, ExitCode: resp.ExitCode, Stderr: resp.Stderr}
	}
	return res, nil
}

func key(argv []string) string {
	return strings.Join(argv, "\x00")
}
