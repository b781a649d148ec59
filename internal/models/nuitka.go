package models

import (
	"fmt"
	"strings"

	"github.com/ouroboros-dev/ouroboros/internal/document"
)

// BuildMode selects one of Nuitka's top-level compilation strategies.
type BuildMode string

const (
	BuildIndependent BuildMode = "independent"
	BuildOnefile     BuildMode = "onefile"
	BuildModule      BuildMode = "module"
)

// buildModeAliases maps spellings found in older project files.
var buildModeAliases = map[string]BuildMode{
	"standalone": BuildIndependent,
	"独立模式":       BuildIndependent,
	"单文件模式":      BuildOnefile,
	"单文件格式":      BuildOnefile,
	"模块模式":       BuildModule,
}

// IsValid checks if the build mode is known
func (b BuildMode) IsValid() bool {
	switch b {
	case BuildIndependent, BuildOnefile, BuildModule:
		return true
	default:
		return false
	}
}

// String returns the string representation of BuildMode
func (b BuildMode) String() string {
	return string(b)
}

// ParseBuildMode parses a string into a BuildMode
func ParseBuildMode(s string) (BuildMode, error) {
	bm := normalizeBuildMode(s)
	if !bm.IsValid() {
		return "", fmt.Errorf("invalid build mode: %s (must be independent, onefile, or module)", s)
	}
	return bm, nil
}

func normalizeBuildMode(s string) BuildMode {
	s = strings.TrimSpace(s)
	if alias, ok := buildModeAliases[s]; ok {
		return alias
	}
	return BuildMode(strings.ToLower(s))
}

// Compiler selects the C compiler backend.
type Compiler string

const (
	CompilerAuto    Compiler = "auto"
	CompilerMSVC    Compiler = "msvc"
	CompilerMinGW64 Compiler = "mingw64"
	CompilerClang   Compiler = "clang"
)

// IsValid checks if the compiler is known
func (c Compiler) IsValid() bool {
	switch c {
	case CompilerAuto, CompilerMSVC, CompilerMinGW64, CompilerClang:
		return true
	default:
		return false
	}
}

// String returns the string representation of Compiler
func (c Compiler) String() string {
	return string(c)
}

// ParseCompiler parses a string into a Compiler. Matching is case-insensitive
// so labels like "MinGW64" from older files are accepted.
func ParseCompiler(s string) (Compiler, error) {
	c := Compiler(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid compiler: %s (must be auto, msvc, mingw64, or clang)", s)
	}
	return c, nil
}

// Nuitka option keys, shared by the persisted document and the argument
// builder.
const (
	FieldEntry          = "entry"
	FieldOutputName     = "output_name"
	FieldOutputDir      = "output_dir"
	FieldBuildMode      = "build_mode"
	FieldDisableConsole = "disable_console"
	FieldRemoveOutput   = "remove_output"
	FieldShowScons      = "show_scons"
	FieldAssumeYes      = "assume_yes"
	FieldCompiler       = "compiler"
	FieldJobs           = "jobs"
	FieldPlugins        = "plugins"
	FieldPackages       = "packages"
	FieldModules        = "modules"
	FieldNoImports      = "no_imports"
	FieldFiles          = "files"
	FieldDirs           = "dirs"
	FieldExtraArgs      = "extra_args"
)

// NuitkaOptions is the nuitka section of ouroboros.yml.
type NuitkaOptions struct {
	Entry      string
	OutputName string
	OutputDir  string
	Jobs       string

	// BuildMode and Compiler keep unrecognised values verbatim so the
	// argument builder can report them.
	BuildMode BuildMode
	Compiler  Compiler

	DisableConsole bool
	RemoveOutput   bool
	ShowScons      bool
	AssumeYes      bool

	Plugins   []string
	Packages  []string
	Modules   []string
	NoImports []string
	Files     []string
	Dirs      []string

	// ExtraArgs holds pass-through tokens, already split
	ExtraArgs []string
}

// DefaultNuitkaOptions returns the options used for keys that are missing.
func DefaultNuitkaOptions() NuitkaOptions {
	return NuitkaOptions{
		BuildMode:    BuildIndependent,
		Compiler:     CompilerAuto,
		RemoveOutput: true,
		AssumeYes:    true,
	}
}

type stringField struct {
	key string
	ref func(o *NuitkaOptions) *string
}

type boolField struct {
	key    string
	legacy string
	ref    func(o *NuitkaOptions) *bool
}

type listField struct {
	key string
	ref func(o *NuitkaOptions) *[]string
}

// nuitkaStringFields lists the single-value text fields in persisted order.
var nuitkaStringFields = []stringField{
	{FieldEntry, func(o *NuitkaOptions) *string { return &o.Entry }},
	{FieldOutputName, func(o *NuitkaOptions) *string { return &o.OutputName }},
	{FieldOutputDir, func(o *NuitkaOptions) *string { return &o.OutputDir }},
	{FieldJobs, func(o *NuitkaOptions) *string { return &o.Jobs }},
}

var nuitkaBoolFields = []boolField{
	{FieldDisableConsole, "console", func(o *NuitkaOptions) *bool { return &o.DisableConsole }},
	{FieldRemoveOutput, "remove", func(o *NuitkaOptions) *bool { return &o.RemoveOutput }},
	{FieldShowScons, "scons", func(o *NuitkaOptions) *bool { return &o.ShowScons }},
	{FieldAssumeYes, "download", func(o *NuitkaOptions) *bool { return &o.AssumeYes }},
}

var nuitkaListFields = []listField{
	{FieldPlugins, func(o *NuitkaOptions) *[]string { return &o.Plugins }},
	{FieldPackages, func(o *NuitkaOptions) *[]string { return &o.Packages }},
	{FieldModules, func(o *NuitkaOptions) *[]string { return &o.Modules }},
	{FieldNoImports, func(o *NuitkaOptions) *[]string { return &o.NoImports }},
	{FieldFiles, func(o *NuitkaOptions) *[]string { return &o.Files }},
	{FieldDirs, func(o *NuitkaOptions) *[]string { return &o.Dirs }},
	{FieldExtraArgs, func(o *NuitkaOptions) *[]string { return &o.ExtraArgs }},
}

// legacyOtherArgs is the free-text extra arguments key of older files.
const legacyOtherArgs = "other_args"

// Strings returns the single-value text fields keyed by field name.
func (o NuitkaOptions) Strings() map[string]string {
	out := make(map[string]string, len(nuitkaStringFields))
	for _, f := range nuitkaStringFields {
		out[f.key] = *f.ref(&o)
	}
	return out
}

// Bools returns the switches keyed by field name.
func (o NuitkaOptions) Bools() map[string]bool {
	out := make(map[string]bool, len(nuitkaBoolFields))
	for _, f := range nuitkaBoolFields {
		out[f.key] = *f.ref(&o)
	}
	return out
}

// Choices returns the enumerated fields keyed by field name.
func (o NuitkaOptions) Choices() map[string]string {
	return map[string]string{
		FieldBuildMode: o.BuildMode.String(),
		FieldCompiler:  o.Compiler.String(),
	}
}

// Lists returns the repeatable fields keyed by field name.
func (o NuitkaOptions) Lists() map[string][]string {
	out := make(map[string][]string, len(nuitkaListFields))
	for _, f := range nuitkaListFields {
		out[f.key] = *f.ref(&o)
	}
	return out
}

// NuitkaFromDocument reads the nuitka section of doc, defaulting every
// missing field. Keys written by older versions are honoured when the
// current key is absent.
func NuitkaFromDocument(doc *document.Map) NuitkaOptions {
	opts := DefaultNuitkaOptions()

	section, ok := doc.Map(keyNuitka)
	if !ok {
		return opts
	}

	for _, f := range nuitkaStringFields {
		if v, ok := scalarString(section, f.key); ok {
			*f.ref(&opts) = strings.TrimSpace(v)
		}
	}

	for _, f := range nuitkaBoolFields {
		if v, ok := section.Bool(f.key); ok {
			*f.ref(&opts) = v
		} else if v, ok := section.Bool(f.legacy); ok {
			*f.ref(&opts) = v
		}
	}

	if v, ok := section.String(FieldBuildMode); ok && strings.TrimSpace(v) != "" {
		opts.BuildMode = normalizeBuildMode(v)
	}
	if v, ok := section.String(FieldCompiler); ok && strings.TrimSpace(v) != "" {
		if c, err := ParseCompiler(v); err == nil {
			opts.Compiler = c
		} else {
			opts.Compiler = Compiler(strings.TrimSpace(v))
		}
	}

	for _, f := range nuitkaListFields {
		if items, ok := section.Strings(f.key); ok {
			*f.ref(&opts) = CleanItems(items)
		}
	}

	if !section.Has(FieldExtraArgs) {
		if text, ok := section.String(legacyOtherArgs); ok {
			opts.ExtraArgs = strings.Fields(text)
		}
	}

	return opts
}

// ApplyTo writes opts into the nuitka section of doc, creating it if needed.
// Keys outside the nuitka section are not touched; legacy keys are dropped.
func (o NuitkaOptions) ApplyTo(doc *document.Map) {
	section := doc.EnsureMap(keyNuitka)

	for _, f := range nuitkaStringFields[:3] {
		section.Set(f.key, strings.TrimSpace(*f.ref(&o)))
	}
	section.Set(FieldBuildMode, o.BuildMode.String())
	for _, f := range nuitkaBoolFields {
		section.Set(f.key, *f.ref(&o))
		section.Delete(f.legacy)
	}
	section.Set(FieldCompiler, o.Compiler.String())
	section.Set(FieldJobs, strings.TrimSpace(o.Jobs))

	for _, f := range nuitkaListFields {
		section.Set(f.key, document.StringList(CleanItems(*f.ref(&o))))
	}
	section.Delete(legacyOtherArgs)
}

// CleanItems trims every item and drops blank ones. Duplicates are kept.
func CleanItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// scalarString reads key as text; numbers written by hand (jobs: 6) are
// accepted too.
func scalarString(m *document.Map, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case int64:
		return fmt.Sprintf("%d", t), true
	case float64:
		return fmt.Sprintf("%g", t), true
	default:
		return "", false
	}
}
