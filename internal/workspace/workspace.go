// Package workspace locates the project directory ouroboros operates on.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// Workspace is a project directory holding ouroboros.yml and/or
// pyproject.toml.
type Workspace struct {
	fs       filesystem.FileSystem
	RootPath string

	// ConfigPath and PyprojectPath are absolute; the files may not exist yet
	ConfigPath    string
	PyprojectPath string
}

// Option configures workspace behavior.
type Option func(*Workspace)

// WithConfigPath overrides the project file location.
func WithConfigPath(path string) Option {
	return func(w *Workspace) {
		w.ConfigPath = path
	}
}

// WithPyprojectPath overrides the pyproject.toml location.
func WithPyprojectPath(path string) Option {
	return func(w *Workspace) {
		w.PyprojectPath = path
	}
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem, options ...Option) *Workspace {
	ws := &Workspace{fs: fs}

	for _, option := range options {
		option(ws)
	}

	return ws
}

// Detect walks up from the working directory to the nearest directory with
// a project file. Without one the working directory becomes the root, so
// `init` can create it there.
func (w *Workspace) Detect() error {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	root, found := findRoot(w.fs, cwd)
	if !found {
		root = cwd
	}
	w.RootPath = root

	w.ConfigPath = w.resolve(w.ConfigPath, models.ProjectFileName)
	w.PyprojectPath = w.resolve(w.PyprojectPath, models.PyprojectFileName)

	return nil
}

func (w *Workspace) resolve(override, name string) string {
	if override == "" {
		return filepath.Join(w.RootPath, name)
	}
	if filepath.IsAbs(override) {
		return override
	}
	cwd, err := w.fs.Getwd()
	if err != nil {
		return filepath.Join(w.RootPath, override)
	}
	return filepath.Join(cwd, override)
}

// findRoot walks up the directory tree looking for ouroboros.yml or
// pyproject.toml.
func findRoot(fs filesystem.FileSystem, start string) (string, bool) {
	dir := filepath.Clean(start)

	for {
		if fs.Exists(filepath.Join(dir, models.ProjectFileName)) ||
			fs.Exists(filepath.Join(dir, models.PyprojectFileName)) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Name returns the lower-cased directory name, used as the default
// project.name of a new pyproject.toml.
func (w *Workspace) Name() string {
	return filepath.Base(w.RootPath)
}

// EnvDir returns the absolute environment directory for name.
func (w *Workspace) EnvDir(name string) string {
	return filepath.Join(w.RootPath, models.ResolveEnvName(name))
}

// Interpreter finds the Python interpreter of the named environment.
func (w *Workspace) Interpreter(goos, name string) (string, error) {
	return invoker.Interpreter(w.fs, goos, w.EnvDir(name))
}
