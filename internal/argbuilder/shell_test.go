package argbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuote(t *testing.T) {
	require.Equal(t, "python -m nuitka main.py", Quote([]string{"python", "-m", "nuitka", "main.py"}))
	require.Equal(t, "pip install 'my pkg' '$(rm -rf x)'", Quote([]string{"pip", "install", "my pkg", "$(rm -rf x)"}))
	require.Equal(t, "''", Quote([]string{""}))
}

func TestSplitArgs(t *testing.T) {
	env := func(name string) string {
		if name == "LEVEL" {
			return "3"
		}
		return ""
	}

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "blank", input: "   ", expected: []string{}},
		{name: "whitespace separated", input: "--lto=yes   --jobs=2", expected: []string{"--lto=yes", "--jobs=2"}},
		{name: "quotes group words", input: `--company-name="Acme Corp" '--product-name=My App'`, expected: []string{"--company-name=Acme Corp", "--product-name=My App"}},
		{name: "variables expand", input: "--python-flag=-O$LEVEL", expected: []string{"--python-flag=-O3"}},
		{name: "patterns are not globbed", input: "--include-data-files=src/*.txt=./", expected: []string{"--include-data-files=src/*.txt=./"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitArgs(tt.input, env)
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitArgs_Rejects(t *testing.T) {
	for _, input := range []string{"--a; rm -rf /", "--a | tee log", "--a && --b", "--a > out", `"unterminated`} {
		t.Run(input, func(t *testing.T) {
			_, err := SplitArgs(input, nil)
			require.Error(t, err)
		})
	}
}
