package argbuilder

import (
	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// NuitkaGrammar is the flag table for `python -m nuitka`.
var NuitkaGrammar = Grammar{
	Name: "nuitka",
	Fixed: []FixedField{
		{Field: models.FieldEntry, Prefix: ""},
		{Field: models.FieldOutputName, Prefix: "--output-filename="},
		{Field: models.FieldOutputDir, Prefix: "--output-dir="},
		{Field: models.FieldJobs, Prefix: "--jobs="},
	},
	Switches: []Switch{
		{Field: models.FieldDisableConsole, Flag: "--windows-console-mode=disable"},
		{Field: models.FieldRemoveOutput, Flag: "--remove-output"},
		{Field: models.FieldShowScons, Flag: "--show-scons"},
		{Field: models.FieldAssumeYes, Flag: "--assume-yes-for-downloads"},
	},
	Choices: []Choice{
		{Field: models.FieldBuildMode, Tokens: map[string]string{
			models.BuildIndependent.String(): "--standalone",
			models.BuildOnefile.String():     "--onefile",
			models.BuildModule.String():      "--module",
		}},
		{Field: models.FieldCompiler, Tokens: map[string]string{
			models.CompilerAuto.String():    "",
			models.CompilerMSVC.String():    "--msvc=latest",
			models.CompilerMinGW64.String(): "--mingw64",
			models.CompilerClang.String():   "--clang",
		}},
	},
	Lists: []ListField{
		{Field: models.FieldPlugins, Prefix: "--enable-plugin="},
		{Field: models.FieldPackages, Prefix: "--include-package="},
		{Field: models.FieldModules, Prefix: "--include-module="},
		{Field: models.FieldNoImports, Prefix: "--nofollow-import-to="},
		{Field: models.FieldFiles, Prefix: "--include-data-files="},
		{Field: models.FieldDirs, Prefix: "--include-data-dir="},
		{Field: models.FieldExtraArgs, Prefix: ""},
	},
}

// NuitkaValues exposes opts to the builder.
func NuitkaValues(opts models.NuitkaOptions) Values {
	return Values{
		Strings: opts.Strings(),
		Bools:   opts.Bools(),
		Choices: opts.Choices(),
		Lists:   opts.Lists(),
	}
}

// NuitkaArgs returns the option tokens for opts, without the interpreter
// prefix.
func NuitkaArgs(opts models.NuitkaOptions) ([]string, []ValidationWarning) {
	return NuitkaGrammar.Build(NuitkaValues(opts))
}

// NuitkaCommand returns the full argv compiling with python.
func NuitkaCommand(python string, opts models.NuitkaOptions) ([]string, []ValidationWarning) {
	args, warnings := NuitkaArgs(opts)
	return append(nuitkaPrefix(python), args...), warnings
}

// NuitkaVersion returns the argv printing Nuitka's version.
func NuitkaVersion(python string) []string {
	return append(nuitkaPrefix(python), "--version")
}

// NuitkaCleanCache returns the argv removing every Nuitka cache.
func NuitkaCleanCache(python string) []string {
	return append(nuitkaPrefix(python), "--clean-cache=all")
}

func nuitkaPrefix(python string) []string {
	return []string{python, "-m", "nuitka"}
}
