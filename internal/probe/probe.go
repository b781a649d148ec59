// Package probe asks external tools for their version once per view and
// keeps the answer.
package probe

import (
	"context"
	"strings"
	"sync"

	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle of a Cache.
type Status int

const (
	Unknown Status = iota
	Pending
	Resolved
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a Cache.
type State struct {
	Status Status

	// Text is the first output line with the tool prefix removed
	Text string

	// Version is the version token found in Text, if any
	Version string

	Err error
}

// Display returns what a view shows for the state.
func (s State) Display() string {
	switch s.Status {
	case Resolved:
		if s.Version != "" {
			return s.Version
		}
		return s.Text
	case Failed:
		return "not found: " + s.Err.Error()
	case Pending:
		return "checking..."
	default:
		return "-"
	}
}

// Probe describes how to query one tool.
type Probe struct {
	Name string
	Argv []string

	// Prefix is removed from the start of the output, e.g. "conda "
	Prefix string
}

// Cache runs its probe at most once at a time and keeps the first
// successful answer for its lifetime. A failure is reported but not kept, so
// the next Get probes again. There is no invalidation and no cancellation.
type Cache struct {
	runner invoker.Runner
	probe  Probe

	group singleflight.Group

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// NewCache creates a Cache for p.
func NewCache(runner invoker.Runner, p Probe) *Cache {
	return &Cache{runner: runner, probe: p}
}

// Name returns the probed tool name.
func (c *Cache) Name() string {
	return c.probe.Name
}

// State returns the current state without probing.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnResolve registers fn to be called once with the next finished state. If
// a version is already cached fn is called right away.
func (c *Cache) OnResolve(fn func(State)) {
	c.mu.Lock()
	if c.state.Status == Resolved {
		state := c.state
		c.mu.Unlock()
		fn(state)
		return
	}
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Start probes in the background.
func (c *Cache) Start(ctx context.Context) {
	go c.Get(ctx)
}

// Get returns the cached version or probes for it. Concurrent callers share
// one probe.
func (c *Cache) Get(ctx context.Context) State {
	c.mu.Lock()
	if c.state.Status == Resolved {
		state := c.state
		c.mu.Unlock()
		return state
	}
	c.state = State{Status: Pending}
	c.mu.Unlock()

	v, _, _ := c.group.Do(c.probe.Name, func() (any, error) {
		return c.resolve(ctx), nil
	})
	return v.(State)
}

// resolve runs the probe and stores its result before the flight ends, so a
// caller arriving after it sees the cached state instead of probing again.
func (c *Cache) resolve(ctx context.Context) State {
	state := c.run(ctx)

	c.mu.Lock()
	c.state = state
	listeners := c.listeners
	c.listeners = nil
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return state
}

func (c *Cache) run(ctx context.Context) State {
	res, err := c.runner.Run(ctx, invoker.Command{Argv: c.probe.Argv})
	if err != nil {
		return State{Status: Failed, Err: err}
	}
	text := ParseOutput(res.Stdout, c.probe.Prefix)
	return State{Status: Resolved, Text: text, Version: ExtractVersion(text)}
}

// ParseOutput returns the first non-blank line of out without prefix.
func ParseOutput(out, prefix string) string {
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return ""
}

// ExtractVersion returns the first word of text that reads as a semantic
// version, or "".
func ExtractVersion(text string) string {
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ",;()")
		candidate := word
		if !strings.HasPrefix(candidate, "v") {
			candidate = "v" + candidate
		}
		if semver.IsValid(candidate) {
			return word
		}
	}
	return ""
}
