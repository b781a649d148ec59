package logging

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	mu     sync.Mutex
	level  = log.WarnLevel
	output io.Writer = os.Stderr
)

// New returns a logger that tags every line with prefix.
func New(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()

	return log.NewWithOptions(output, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

// SetLevel parses s (debug, info, warn, error) and applies it to loggers
// created afterwards.
func SetLevel(s string) error {
	parsed, err := log.ParseLevel(s)
	if err != nil {
		return err
	}

	mu.Lock()
	level = parsed
	mu.Unlock()
	return nil
}

// SetOutput redirects loggers created afterwards.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}
