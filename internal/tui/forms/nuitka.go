package forms

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// NuitkaState is the Nuitka form.
type NuitkaState struct {
	Entry      string
	OutputName string
	OutputDir  string
	Jobs       string
	BuildMode  string
	Compiler   string
	Switches   []string

	Plugins   string
	Packages  string
	Modules   string
	NoImports string
	Files     string
	Dirs      string

	// ExtraArgs is free text split with shell word rules on save
	ExtraArgs string
}

var switchOptions = []huh.Option[string]{
	huh.NewOption("Disable console window", models.FieldDisableConsole),
	huh.NewOption("Remove build folder", models.FieldRemoveOutput),
	huh.NewOption("Show scons commands", models.FieldShowScons),
	huh.NewOption("Allow downloads", models.FieldAssumeYes),
}

// NewNuitkaState fills the form from the nuitka section.
func NewNuitkaState(opts models.NuitkaOptions) NuitkaState {
	s := NuitkaState{
		Entry:      opts.Entry,
		OutputName: opts.OutputName,
		OutputDir:  opts.OutputDir,
		Jobs:       opts.Jobs,
		BuildMode:  opts.BuildMode.String(),
		Compiler:   opts.Compiler.String(),
		Plugins:    joinLines(opts.Plugins),
		Packages:   joinLines(opts.Packages),
		Modules:    joinLines(opts.Modules),
		NoImports:  joinLines(opts.NoImports),
		Files:      joinLines(opts.Files),
		Dirs:       joinLines(opts.Dirs),
		ExtraArgs:  argbuilder.Quote(opts.ExtraArgs),
	}

	bools := opts.Bools()
	for _, o := range switchOptions {
		if bools[o.Value] {
			s.Switches = append(s.Switches, o.Value)
		}
	}
	return s
}

// Options returns the option set to persist.
func (s NuitkaState) Options() (models.NuitkaOptions, error) {
	extra, err := argbuilder.SplitArgs(s.ExtraArgs, os.Getenv)
	if err != nil {
		return models.NuitkaOptions{}, err
	}

	opts := models.NuitkaOptions{
		Entry:      s.Entry,
		OutputName: s.OutputName,
		OutputDir:  s.OutputDir,
		Jobs:       s.Jobs,
		BuildMode:  models.BuildMode(s.BuildMode),
		Compiler:   models.Compiler(s.Compiler),
		Plugins:    splitLines(s.Plugins),
		Packages:   splitLines(s.Packages),
		Modules:    splitLines(s.Modules),
		NoImports:  splitLines(s.NoImports),
		Files:      splitLines(s.Files),
		Dirs:       splitLines(s.Dirs),
		ExtraArgs:  extra,
	}

	for _, field := range s.Switches {
		switch field {
		case models.FieldDisableConsole:
			opts.DisableConsole = true
		case models.FieldRemoveOutput:
			opts.RemoveOutput = true
		case models.FieldShowScons:
			opts.ShowScons = true
		case models.FieldAssumeYes:
			opts.AssumeYes = true
		}
	}
	return opts, nil
}

func validateJobs(v string) error {
	if v == "" {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err != nil || n <= 0 {
		return fmt.Errorf("jobs must be a positive number")
	}
	return nil
}

func validateExtraArgs(v string) error {
	_, err := argbuilder.SplitArgs(v, os.Getenv)
	return err
}

// NuitkaForm builds the Nuitka form bound to s.
func NuitkaForm(s *NuitkaState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Entry script").Placeholder("main.py").Value(&s.Entry),
			huh.NewInput().Title("Output file name").Value(&s.OutputName),
			huh.NewInput().Title("Output directory").Value(&s.OutputDir),
			huh.NewInput().Title("Parallel jobs").Validate(validateJobs).Value(&s.Jobs),
		).Title("Basics"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Build mode").
				Options(
					huh.NewOption("Standalone folder", models.BuildIndependent.String()),
					huh.NewOption("Single file", models.BuildOnefile.String()),
					huh.NewOption("Extension module", models.BuildModule.String()),
				).
				Value(&s.BuildMode),
			huh.NewSelect[string]().
				Title("Compiler").
				Options(
					huh.NewOption("Auto", models.CompilerAuto.String()),
					huh.NewOption("MSVC (latest)", models.CompilerMSVC.String()),
					huh.NewOption("MinGW64", models.CompilerMinGW64.String()),
					huh.NewOption("Clang", models.CompilerClang.String()),
				).
				Value(&s.Compiler),
			huh.NewMultiSelect[string]().
				Title("Switches").
				Options(switchOptions...).
				Value(&s.Switches),
		).Title("Mode"),
		huh.NewGroup(
			huh.NewText().Title("Plugins").Lines(3).Value(&s.Plugins),
			huh.NewText().Title("Include packages").Lines(4).Value(&s.Packages),
			huh.NewText().Title("Include modules").Lines(4).Value(&s.Modules),
			huh.NewText().Title("Do not follow imports to").Lines(3).Value(&s.NoImports),
		).Title("Imports"),
		huh.NewGroup(
			huh.NewText().
				Title("Data files").
				Description("SOURCE=DEST, one per line.").
				Lines(4).
				Value(&s.Files),
			huh.NewText().
				Title("Data directories").
				Description("SOURCE=DEST, one per line.").
				Lines(4).
				Value(&s.Dirs),
			huh.NewInput().
				Title("Extra arguments").
				Description("Passed to Nuitka as typed; quote values with spaces.").
				Validate(validateExtraArgs).
				Value(&s.ExtraArgs),
		).Title("Data and extras"),
	)
}
