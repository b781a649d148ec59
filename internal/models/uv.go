package models

import (
	"strings"

	"github.com/ouroboros-dev/ouroboros/internal/document"
)

const (
	// PyprojectFileName is the uv project document at the workspace root.
	PyprojectFileName = "pyproject.toml"

	// DefaultProjectVersion is written when project.version is blank.
	DefaultProjectVersion = "0.1.0"

	keyProject          = "project"
	keyVersion          = "version"
	keyRequiresPython   = "requires-python"
	keyDependencyGroups = "dependency-groups"
	keyDev              = "dev"
)

// UVProjectConfig is the part of pyproject.toml edited by the uv form.
type UVProjectConfig struct {
	Name            string
	Version         string
	RequiresPython  string
	Dependencies    []string
	DevDependencies []string
}

// UVFromDocument reads the uv fields from a pyproject document.
func UVFromDocument(doc *document.Map) UVProjectConfig {
	var cfg UVProjectConfig

	if project, ok := doc.Map(keyProject); ok {
		cfg.Name, _ = project.String(keyName)
		cfg.Version, _ = project.String(keyVersion)
		cfg.RequiresPython, _ = project.String(keyRequiresPython)
		cfg.Dependencies, _ = project.Strings(keyDependencies)
	}
	if groups, ok := doc.Map(keyDependencyGroups); ok {
		cfg.DevDependencies, _ = groups.Strings(keyDev)
	}

	return cfg
}

// ApplyTo merges cfg into doc. A blank name keeps the stored one. Empty
// dependency lists remove their key and an emptied dependency-groups table is
// removed as well. Unrelated keys such as [tool.uv] are kept.
func (c UVProjectConfig) ApplyTo(doc *document.Map) {
	project := doc.EnsureMap(keyProject)

	if name := strings.TrimSpace(c.Name); name != "" {
		project.Set(keyName, name)
	}

	version := strings.TrimSpace(c.Version)
	if version == "" {
		version = DefaultProjectVersion
	}
	project.Set(keyVersion, version)
	project.Set(keyRequiresPython, NormalizeRequiresPython(c.RequiresPython))

	if deps := CleanItems(c.Dependencies); len(deps) > 0 {
		project.Set(keyDependencies, document.StringList(deps))
	} else {
		project.Delete(keyDependencies)
	}

	dev := CleanItems(c.DevDependencies)
	if len(dev) > 0 {
		doc.EnsureMap(keyDependencyGroups).Set(keyDev, document.StringList(dev))
		return
	}
	if groups, ok := doc.Map(keyDependencyGroups); ok {
		groups.Delete(keyDev)
		if groups.Len() == 0 {
			doc.Delete(keyDependencyGroups)
		}
	}
}

// NormalizeRequiresPython turns form input into a requires-python specifier.
// Input that already carries an operator or several clauses is kept as typed.
func NormalizeRequiresPython(input string) string {
	input = strings.TrimSpace(input)
	if strings.ContainsAny(input, ",<>=~!") {
		return input
	}
	return ">=" + ResolvePythonVersion(input)
}

// NewPyprojectDocument returns the document written when pyproject.toml does
// not exist yet.
func NewPyprojectDocument(name string) *document.Map {
	doc := document.New()
	doc.EnsureMap(keyProject).Set(keyName, strings.ToLower(name))
	return doc
}
