package models

import (
	"slices"

	"github.com/ouroboros-dev/ouroboros/internal/document"
)

const (
	pipKey = "pip"

	// PythonPrefix marks the interpreter pin among plain entries.
	PythonPrefix = "python="
)

// DependencyEntry is one item of the dependencies sequence: either a plain
// conda spec string or the group of pip-only packages.
type DependencyEntry struct {
	spec  string
	pip   []string
	isPip bool
}

// SpecEntry creates a plain entry such as "numpy" or "python=3.10".
func SpecEntry(spec string) DependencyEntry {
	return DependencyEntry{spec: spec}
}

// PipEntry creates the pip group entry.
func PipEntry(packages []string) DependencyEntry {
	return DependencyEntry{pip: slices.Clone(packages), isPip: true}
}

// IsPip reports whether the entry is the pip group.
func (e DependencyEntry) IsPip() bool {
	return e.isPip
}

// Spec returns the plain spec string; empty for the pip group.
func (e DependencyEntry) Spec() string {
	return e.spec
}

// PipPackages returns the packages of the pip group.
func (e DependencyEntry) PipPackages() []string {
	return slices.Clone(e.pip)
}

// Persisted returns the document value for the entry.
func (e DependencyEntry) Persisted() any {
	if !e.isPip {
		return e.spec
	}
	group := document.NewInline()
	group.Set(pipKey, document.StringList(e.pip))
	return group
}

// ParseDependencyEntry converts a document value. Values that are neither a
// string nor a mapping with a pip key are rejected.
func ParseDependencyEntry(v any) (DependencyEntry, bool) {
	switch t := v.(type) {
	case string:
		return SpecEntry(t), true
	case *document.Map:
		pkgs, ok := t.Strings(pipKey)
		if !ok {
			if !t.Has(pipKey) {
				return DependencyEntry{}, false
			}
			// "pip:" with no value decodes to null
			pkgs = nil
		}
		return PipEntry(pkgs), true
	default:
		return DependencyEntry{}, false
	}
}
