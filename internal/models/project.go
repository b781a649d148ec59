package models

import (
	"strings"

	"github.com/ouroboros-dev/ouroboros/internal/document"
)

const (
	// ProjectFileName is the project document at the workspace root.
	ProjectFileName = "ouroboros.yml"

	// DefaultEnvName is used when the environment name is blank.
	DefaultEnvName = ".venv"

	// DefaultPythonVersion is used when the Python version is blank.
	DefaultPythonVersion = "3.10"

	keyName         = "name"
	keyDependencies = "dependencies"
	keyNuitka       = "nuitka"
)

// ProjectConfig is the environment part of ouroboros.yml.
type ProjectConfig struct {
	// Name is the environment directory name as stored; may be blank
	Name string

	// Dependencies is nil when the key is absent and empty when it is present
	// but holds no entries
	Dependencies []DependencyEntry
}

// ProjectFromDocument reads the name and dependencies keys of doc.
func ProjectFromDocument(doc *document.Map) ProjectConfig {
	var cfg ProjectConfig
	cfg.Name, _ = doc.String(keyName)

	if items, ok := doc.List(keyDependencies); ok {
		cfg.Dependencies = make([]DependencyEntry, 0, len(items))
		for _, item := range items {
			if entry, ok := ParseDependencyEntry(item); ok {
				cfg.Dependencies = append(cfg.Dependencies, entry)
			}
		}
	}

	return cfg
}

// ApplyTo writes name and dependencies into doc. Every other key of doc,
// including the nuitka section, is left as it is.
func (p ProjectConfig) ApplyTo(doc *document.Map) {
	doc.Set(keyName, p.Name)

	items := make([]any, 0, len(p.Dependencies))
	for _, entry := range p.Dependencies {
		items = append(items, entry.Persisted())
	}
	doc.Set(keyDependencies, items)
}

// EnvName returns the environment directory name with the default applied.
func (p ProjectConfig) EnvName() string {
	return ResolveEnvName(p.Name)
}

// ResolveEnvName returns name trimmed, or DefaultEnvName when blank.
func ResolveEnvName(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return DefaultEnvName
}

// ResolvePythonVersion returns version trimmed, or DefaultPythonVersion when
// blank.
func ResolvePythonVersion(version string) string {
	if version = strings.TrimSpace(version); version != "" {
		return version
	}
	return DefaultPythonVersion
}

// DefaultProjectDocument is written by `ouroboros init` when no project file
// exists yet.
func DefaultProjectDocument() *document.Map {
	doc := document.New()
	doc.Set(keyName, "")
	pip := document.New()
	pip.Set(pipKey, []any{})
	doc.Set(keyDependencies, []any{pip})
	return doc
}
