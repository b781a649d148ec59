package workspace

import (
	"path/filepath"

	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// WorkspaceBuilder helps create test workspaces
type WorkspaceBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewWorkspaceBuilder creates a new WorkspaceBuilder
func NewWorkspaceBuilder(root string) *WorkspaceBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(root)

	return &WorkspaceBuilder{
		fs:   fs,
		root: root,
	}
}

// WithProjectFile writes ouroboros.yml
func (wb *WorkspaceBuilder) WithProjectFile(content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, models.ProjectFileName), []byte(content))
	return wb
}

// WithPyproject writes pyproject.toml
func (wb *WorkspaceBuilder) WithPyproject(content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, models.PyprojectFileName), []byte(content))
	return wb
}

// WithGitIgnore writes the root .gitignore
func (wb *WorkspaceBuilder) WithGitIgnore(content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, ".gitignore"), []byte(content))
	return wb
}

// WithEnv creates an environment directory with an interpreter laid out
// for goos
func (wb *WorkspaceBuilder) WithEnv(name, goos string) *WorkspaceBuilder {
	envDir := filepath.Join(wb.root, name)
	wb.fs.AddFile(invoker.InterpreterCandidates(goos, envDir)[0], nil)
	return wb
}

// WithFile adds an arbitrary file relative to the root
func (wb *WorkspaceBuilder) WithFile(rel, content string) *WorkspaceBuilder {
	wb.fs.AddFile(filepath.Join(wb.root, rel), []byte(content))
	return wb
}

// Build returns the mock filesystem
func (wb *WorkspaceBuilder) Build() *filesystem.MockFileSystem {
	return wb.fs
}
