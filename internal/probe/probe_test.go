package probe

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/stretchr/testify/require"
)

// countingRunner counts calls and can hold them until released.
type countingRunner struct {
	calls   atomic.Int32
	release chan struct{}
	stdout  string
	err     error
}

func (r *countingRunner) Run(_ context.Context, cmd invoker.Command) (invoker.Result, error) {
	r.calls.Add(1)
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return invoker.Result{ExitCode: 1}, r.err
	}
	return invoker.Result{Stdout: r.stdout}, nil
}

func TestCache_ProbesOnce(t *testing.T) {
	runner := &countingRunner{stdout: "conda 24.9.2\n"}
	cache := NewCache(runner, Probe{Name: "conda", Argv: []string{"conda", "--version"}, Prefix: "conda "})

	require.Equal(t, Unknown, cache.State().Status)

	first := cache.Get(context.Background())
	require.Equal(t, Resolved, first.Status)
	require.Equal(t, "24.9.2", first.Text)
	require.Equal(t, "24.9.2", first.Version)

	second := cache.Get(context.Background())
	require.Equal(t, first, second)
	require.Equal(t, int32(1), runner.calls.Load())
}

func TestCache_ConcurrentCallersShareOneProbe(t *testing.T) {
	runner := &countingRunner{stdout: "uv 0.5.1 (f399a5271 2024-11-08)\n", release: make(chan struct{})}
	cache := NewCache(runner, Probe{Name: "uv", Argv: []string{"uv", "--version"}, Prefix: "uv "})

	var wg sync.WaitGroup
	results := make([]State, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = cache.Get(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return runner.calls.Load() == 1 }, time.Second, time.Millisecond)
	require.Equal(t, Pending, cache.State().Status)
	close(runner.release)
	wg.Wait()

	for _, st := range results {
		require.Equal(t, Resolved, st.Status)
		require.Equal(t, "0.5.1", st.Version)
	}
	require.Equal(t, int32(1), runner.calls.Load())
	require.Equal(t, Resolved, cache.State().Status)
}

func TestCache_LateCallersReuseResult(t *testing.T) {
	for range 50 {
		runner := &countingRunner{stdout: "conda 24.9.2\n"}
		cache := NewCache(runner, Probe{Name: "conda", Argv: []string{"conda", "--version"}, Prefix: "conda "})

		var wg sync.WaitGroup
		results := make([]State, 16)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				time.Sleep(time.Duration(i%4) * 50 * time.Microsecond)
				results[i] = cache.Get(context.Background())
			}()
		}
		wg.Wait()

		for _, st := range results {
			require.Equal(t, Resolved, st.Status)
		}
		require.Equal(t, int32(1), runner.calls.Load())
	}
}

func TestCache_FailureIsRetried(t *testing.T) {
	runner := &countingRunner{err: &invoker.ToolNotFoundError{Tool: "docker"}}
	cache := NewCache(runner, Probe{Name: "docker", Argv: []string{"docker", "--version"}})

	st := cache.Get(context.Background())
	require.Equal(t, Failed, st.Status)
	var notFound *invoker.ToolNotFoundError
	require.True(t, errors.As(st.Err, &notFound))
	require.Contains(t, st.Display(), "not found")

	runner.err = nil
	runner.stdout = "Docker version 27.3.1, build ce12230\n"
	st = cache.Get(context.Background())
	require.Equal(t, Resolved, st.Status)
	require.Equal(t, "27.3.1", st.Display())
	require.Equal(t, int32(2), runner.calls.Load())
}

func TestCache_OnResolve(t *testing.T) {
	runner := &countingRunner{stdout: "2.4.8\nCommercial: None\n"}
	cache := NewCache(runner, Probe{Name: "nuitka", Argv: []string{"py", "-m", "nuitka", "--version"}})

	var got []State
	cache.OnResolve(func(s State) { got = append(got, s) })
	cache.Get(context.Background())
	cache.Get(context.Background())
	require.Len(t, got, 1)
	require.Equal(t, "2.4.8", got[0].Version)

	// registered after resolution: called right away
	cache.OnResolve(func(s State) { got = append(got, s) })
	require.Len(t, got, 2)
}

func TestCache_Start(t *testing.T) {
	runner := &countingRunner{stdout: "conda 24.9.2\n"}
	cache := NewCache(runner, Probe{Name: "conda", Argv: []string{"conda", "--version"}, Prefix: "conda "})

	done := make(chan State, 1)
	cache.OnResolve(func(s State) { done <- s })
	cache.Start(context.Background())

	select {
	case s := <-done:
		require.Equal(t, "24.9.2", s.Display())
	case <-time.After(time.Second):
		t.Fatal("probe did not resolve")
	}
}

func TestParseOutput(t *testing.T) {
	require.Equal(t, "24.9.2", ParseOutput("\n  conda 24.9.2  \n", "conda "))
	require.Equal(t, "", ParseOutput("", "conda "))
	require.Equal(t, "27.3.1, build ce12230", ParseOutput("Docker version 27.3.1, build ce12230", "Docker version "))
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"24.9.2", "24.9.2"},
		{"0.5.1 (f399a5271 2024-11-08)", "0.5.1"},
		{"27.3.1, build ce12230", "27.3.1"},
		{"v1.2.3-rc1", "v1.2.3-rc1"},
		{"no version here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, ExtractVersion(tt.input))
		})
	}
}

func TestSet_Resolve(t *testing.T) {
	runner := invoker.NewMockRunner()
	tools := argbuilder.DefaultTools()
	runner.On(tools.CondaVersion(), invoker.MockResponse{Stdout: "conda 24.9.2\n"})
	runner.On(tools.UVVersion(), invoker.MockResponse{Stdout: "uv 0.5.1\n"})
	runner.Missing("docker")
	runner.On(argbuilder.NuitkaVersion("py"), invoker.MockResponse{Stdout: "2.4.8\n"})

	set := NewSet(runner, tools, "py")
	states := set.Resolve(context.Background())

	require.Len(t, states, 4)
	require.Equal(t, "24.9.2", states[0].Display())
	require.Equal(t, "0.5.1", states[1].Display())
	require.Equal(t, Failed, states[2].Status)
	require.Equal(t, "2.4.8", states[3].Display())

	require.Len(t, NewSet(runner, tools, "").Caches(), 3)
}
