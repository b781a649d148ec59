package models

import (
	"testing"

	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/stretchr/testify/require"
)

func TestParseBuildMode(t *testing.T) {
	tests := []struct {
		input    string
		expected BuildMode
		wantErr  bool
	}{
		{input: "independent", expected: BuildIndependent},
		{input: "onefile", expected: BuildOnefile},
		{input: "module", expected: BuildModule},
		{input: " OneFile ", expected: BuildOnefile},
		{input: "standalone", expected: BuildIndependent},
		{input: "单文件模式", expected: BuildOnefile},
		{input: "单文件格式", expected: BuildOnefile},
		{input: "模块模式", expected: BuildModule},
		{input: "独立模式", expected: BuildIndependent},
		{input: "app", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBuildMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCompiler(t *testing.T) {
	c, err := ParseCompiler("MinGW64")
	require.NoError(t, err)
	require.Equal(t, CompilerMinGW64, c)

	_, err = ParseCompiler("gcc")
	require.Error(t, err)
}

func TestNuitkaFromDocument_Defaults(t *testing.T) {
	doc := document.New()
	doc.Set("name", "env")

	require.Equal(t, DefaultNuitkaOptions(), NuitkaFromDocument(doc))

	opts := DefaultNuitkaOptions()
	require.Equal(t, BuildIndependent, opts.BuildMode)
	require.Equal(t, CompilerAuto, opts.Compiler)
	require.True(t, opts.RemoveOutput)
	require.True(t, opts.AssumeYes)
	require.False(t, opts.DisableConsole)
	require.False(t, opts.ShowScons)
}

func TestNuitkaFromDocument_Values(t *testing.T) {
	doc, err := document.DecodeYAML([]byte(`nuitka:
  entry: main.py
  output_name: app
  jobs: 6
  build_mode: onefile
  compiler: clang
  disable_console: true
  remove_output: false
  packages: [" numpy ", "", pandas, numpy]
  extra_args: [--lto=yes]
`))
	require.NoError(t, err)

	opts := NuitkaFromDocument(doc)
	require.Equal(t, "main.py", opts.Entry)
	require.Equal(t, "app", opts.OutputName)
	require.Equal(t, "6", opts.Jobs)
	require.Equal(t, BuildOnefile, opts.BuildMode)
	require.Equal(t, CompilerClang, opts.Compiler)
	require.True(t, opts.DisableConsole)
	require.False(t, opts.RemoveOutput)
	require.True(t, opts.AssumeYes)
	require.Equal(t, []string{"numpy", "pandas", "numpy"}, opts.Packages)
	require.Equal(t, []string{"--lto=yes"}, opts.ExtraArgs)
}

func TestNuitkaFromDocument_UnknownChoiceKept(t *testing.T) {
	doc, err := document.DecodeYAML([]byte("nuitka:\n  build_mode: app\n  compiler: gcc\n"))
	require.NoError(t, err)

	opts := NuitkaFromDocument(doc)
	require.Equal(t, BuildMode("app"), opts.BuildMode)
	require.Equal(t, Compiler("gcc"), opts.Compiler)
}

func TestNuitkaFromDocument_LegacyKeys(t *testing.T) {
	doc, err := document.DecodeYAML([]byte(`nuitka:
  build_mode: 单文件模式
  remove: false
  scons: true
  download: false
  other_args: "--lto=yes   --jobs=2"
`))
	require.NoError(t, err)

	opts := NuitkaFromDocument(doc)
	require.Equal(t, BuildOnefile, opts.BuildMode)
	require.False(t, opts.RemoveOutput)
	require.True(t, opts.ShowScons)
	require.False(t, opts.AssumeYes)
	require.Equal(t, []string{"--lto=yes", "--jobs=2"}, opts.ExtraArgs)
}

func TestNuitkaOptions_ApplyTo(t *testing.T) {
	doc, err := document.DecodeYAML([]byte(`name: env
nuitka:
  remove: false
  other_args: --lto=yes
dependencies:
  - numpy
`))
	require.NoError(t, err)

	opts := NuitkaFromDocument(doc)
	opts.Entry = " main.py "
	opts.Plugins = []string{"pyside6", "  "}
	opts.ApplyTo(doc)

	require.Equal(t, []string{"name", "nuitka", "dependencies"}, doc.Keys())

	section, ok := doc.Map("nuitka")
	require.True(t, ok)
	require.False(t, section.Has("remove"))
	require.False(t, section.Has("other_args"))
	require.Equal(t, []string{
		"entry", "output_name", "output_dir", "build_mode",
		"disable_console", "remove_output", "show_scons", "assume_yes",
		"compiler", "jobs",
		"plugins", "packages", "modules", "no_imports", "files", "dirs", "extra_args",
	}, section.Keys())

	entry, _ := section.String("entry")
	require.Equal(t, "main.py", entry)
	plugins, _ := section.Strings("plugins")
	require.Equal(t, []string{"pyside6"}, plugins)
	extra, _ := section.Strings("extra_args")
	require.Equal(t, []string{"--lto=yes"}, extra)

	reloaded := NuitkaFromDocument(doc)
	require.False(t, reloaded.RemoveOutput)
	require.Equal(t, "main.py", reloaded.Entry)
}

func TestNuitkaOptions_Views(t *testing.T) {
	opts := DefaultNuitkaOptions()
	opts.Entry = "main.py"
	opts.Packages = []string{"numpy"}

	require.Equal(t, "main.py", opts.Strings()[FieldEntry])
	require.True(t, opts.Bools()[FieldRemoveOutput])
	require.Equal(t, "independent", opts.Choices()[FieldBuildMode])
	require.Equal(t, []string{"numpy"}, opts.Lists()[FieldPackages])
	require.Len(t, opts.Lists(), 7)
}
