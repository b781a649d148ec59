package models

import (
	"testing"

	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequiresPython(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"3.12", ">=3.12"},
		{" 3.11 ", ">=3.11"},
		{"", ">=3.10"},
		{">=3.10,<3.13", ">=3.10,<3.13"},
		{"~=3.11", "~=3.11"},
		{"==3.12.*", "==3.12.*"},
		{"!=3.9", "!=3.9"},
		{"<4", "<4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, NormalizeRequiresPython(tt.input))
		})
	}
}

func TestUVProjectConfig_ApplyTo(t *testing.T) {
	doc, err := document.DecodeTOML([]byte(`[project]
name = "demo"
version = "1.2.0"
dependencies = ["numpy"]

[tool.uv]
package = false
`))
	require.NoError(t, err)

	UVProjectConfig{
		Name:            "demo",
		RequiresPython:  "3.12",
		Dependencies:    []string{"numpy", " ", "pandas>=2"},
		DevDependencies: []string{"pytest"},
	}.ApplyTo(doc)

	require.Equal(t, []string{"project", "tool", "dependency-groups"}, doc.Keys())

	cfg := UVFromDocument(doc)
	require.Equal(t, UVProjectConfig{
		Name:            "demo",
		Version:         "0.1.0",
		RequiresPython:  ">=3.12",
		Dependencies:    []string{"numpy", "pandas>=2"},
		DevDependencies: []string{"pytest"},
	}, cfg)
}

func TestUVProjectConfig_ApplyToDeletesEmptyLists(t *testing.T) {
	doc, err := document.DecodeTOML([]byte(`[project]
name = "demo"
dependencies = ["numpy"]

[dependency-groups]
dev = ["pytest"]
`))
	require.NoError(t, err)

	UVProjectConfig{Name: "demo", Version: "2.0.0"}.ApplyTo(doc)

	project, ok := doc.Map("project")
	require.True(t, ok)
	require.False(t, project.Has("dependencies"))
	require.False(t, doc.Has("dependency-groups"))

	version, _ := project.String("version")
	require.Equal(t, "2.0.0", version)
}

func TestUVProjectConfig_ApplyToKeepsOtherGroups(t *testing.T) {
	doc, err := document.DecodeTOML([]byte(`[dependency-groups]
dev = ["pytest"]
lint = ["ruff"]
`))
	require.NoError(t, err)

	UVProjectConfig{Name: "demo"}.ApplyTo(doc)

	groups, ok := doc.Map("dependency-groups")
	require.True(t, ok)
	require.Equal(t, []string{"lint"}, groups.Keys())
}

func TestNewPyprojectDocument(t *testing.T) {
	doc := NewPyprojectDocument("MyProject")
	require.Equal(t, "myproject", UVFromDocument(doc).Name)
}

func TestUVProjectConfig_ApplyToBlankNameKeepsStored(t *testing.T) {
	doc := NewPyprojectDocument("demo")

	UVProjectConfig{}.ApplyTo(doc)

	cfg := UVFromDocument(doc)
	require.Equal(t, "demo", cfg.Name)
	require.Equal(t, "0.1.0", cfg.Version)
	require.Equal(t, ">=3.10", cfg.RequiresPython)
}
