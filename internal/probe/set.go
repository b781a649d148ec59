package probe

import (
	"context"

	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"golang.org/x/sync/errgroup"
)

// Set is the group of version caches shown by one view.
type Set struct {
	caches []*Cache
}

// NewSet creates the standard caches. python may be empty when no
// environment interpreter was found; Nuitka is then left out.
func NewSet(runner invoker.Runner, tools argbuilder.Tools, python string) *Set {
	probes := []Probe{
		{Name: "conda", Argv: tools.CondaVersion(), Prefix: "conda "},
		{Name: "uv", Argv: tools.UVVersion(), Prefix: "uv "},
		{Name: "docker", Argv: tools.DockerVersion(), Prefix: "Docker version "},
	}
	if python != "" {
		probes = append(probes, Probe{Name: "nuitka", Argv: argbuilder.NuitkaVersion(python)})
	}

	s := &Set{}
	for _, p := range probes {
		s.caches = append(s.caches, NewCache(runner, p))
	}
	return s
}

// Caches returns the caches in display order.
func (s *Set) Caches() []*Cache {
	return s.caches
}

// Resolve probes every tool concurrently and returns the states in display
// order.
func (s *Set) Resolve(ctx context.Context) []State {
	states := make([]State, len(s.caches))

	var g errgroup.Group
	for i, c := range s.caches {
		g.Go(func() error {
			states[i] = c.Get(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return states
}
