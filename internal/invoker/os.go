package invoker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/ouroboros-dev/ouroboros/internal/logging"
)

// OSRunner implements Runner using os/exec
type OSRunner struct {
	logger *log.Logger
}

var _ Runner = (*OSRunner)(nil)

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{logger: logging.New("invoker")}
}

// Run starts cmd and waits for it. Output lines are forwarded to cmd.Output
// as they arrive and captured per stream in the Result.
func (r *OSRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if len(cmd.Argv) == 0 {
		return Result{}, errors.New("empty command")
	}

	program, err := exec.LookPath(cmd.Argv[0])
	if err != nil {
		return Result{ExitCode: -1}, &ToolNotFoundError{Tool: cmd.Argv[0]}
	}

	c := exec.CommandContext(ctx, program, cmd.Argv[1:]...)
	c.Dir = cmd.Dir

	stdout, err := c.StdoutPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to open stdout: %w", err)
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to open stderr: %w", err)
	}

	r.logger.Debug("running", "argv", cmd.Argv, "dir", cmd.Dir)

	if err := c.Start(); err != nil {
		return Result{ExitCode: -1}, &InvocationError{Argv: cmd.Argv, ExitCode: -1, Err: err}
	}

	out := &lineWriter{w: cmd.Output}
	var (
		wg               sync.WaitGroup
		stdoutB, stderrB strings.Builder
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := out.copyLines(stdout, &stdoutB); err != nil {
			r.logger.Warn("failed to read stdout", "argv", cmd.Argv, "err", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := out.copyLines(stderr, &stderrB); err != nil {
			r.logger.Warn("failed to read stderr", "argv", cmd.Argv, "err", err)
		}
	}()
	wg.Wait()

	waitErr := c.Wait()
	res := Result{
		ExitCode: c.ProcessState.ExitCode(),
		Stdout:   stdoutB.String(),
		Stderr:   stderrB.String(),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return res, &InvocationError{Argv: cmd.Argv, ExitCode: res.ExitCode, Stderr: res.Stderr, Err: waitErr}
		}
		return res, &InvocationError{Argv: cmd.Argv, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	r.logger.Debug("finished", "argv", cmd.Argv, "exit", res.ExitCode)
	return res, nil
}

// lineWriter serialises lines coming from stdout and stderr.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// copyLines forwards src line by line until EOF. Lines of any length are
// kept; a final line without a newline is terminated.
func (l *lineWriter) copyLines(src io.Reader, capture *strings.Builder) error {
	reader := bufio.NewReader(src)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			capture.WriteString(line)
			capture.WriteByte('\n')

			if l.w != nil {
				l.mu.Lock()
				fmt.Fprintln(l.w, line)
				l.mu.Unlock()
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			// drain the rest so the child never blocks on a full pipe
			_, _ = io.Copy(io.Discard, reader)
			return err
		}
	}
}
