package workspace

import (
	"bytes"
	"fmt"
	"path/filepath"

	gitignore "github.com/denormal/go-gitignore"
)

// envIgnoreContent makes git skip everything inside an environment.
const envIgnoreContent = "*"

// IsIgnored reports whether the root .gitignore already excludes path.
func (w *Workspace) IsIgnored(path string, isDir bool) (bool, error) {
	ignore, err := w.loadRootGitIgnore()
	if err != nil || ignore == nil {
		return false, err
	}

	match := ignore.Absolute(path, isDir)
	return match != nil && match.Ignore(), nil
}

// EnsureEnvIgnored writes a .gitignore containing "*" into the environment
// directory unless the root .gitignore already covers it. It returns the
// written path, or "" when nothing was written.
func (w *Workspace) EnsureEnvIgnored(name string) (string, error) {
	envDir := w.EnvDir(name)
	if !w.fs.Exists(envDir) {
		return "", fmt.Errorf("environment directory %s does not exist", envDir)
	}

	ignored, err := w.IsIgnored(envDir, true)
	if err != nil {
		return "", err
	}
	if ignored {
		return "", nil
	}

	path := filepath.Join(envDir, ".gitignore")
	if err := w.fs.WriteFile(path, []byte(envIgnoreContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func (w *Workspace) loadRootGitIgnore() (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(w.RootPath, ".gitignore")
	if !w.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := w.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .gitignore: %w", err)
	}

	return gitignore.New(bytes.NewReader(data), w.RootPath, nil), nil
}
