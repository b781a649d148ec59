package forms

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/depspec"
	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// EnvState is the environment form.
type EnvState struct {
	Name   string
	Python string
	Conda  string
	Pip    string
}

// NewEnvState fills the form from the project file.
func NewEnvState(cfg models.ProjectConfig) EnvState {
	split := depspec.FromPersisted(cfg.Dependencies)
	return EnvState{
		Name:   cfg.Name,
		Python: split.Python,
		Conda:  joinLines(split.Conda),
		Pip:    joinLines(split.Pip),
	}
}

// Project returns the configuration to persist. The name is stored as
// typed; a blank Python version becomes the default because the python=
// entry always needs one.
func (s EnvState) Project() models.ProjectConfig {
	python := models.ResolvePythonVersion(s.Python)
	return models.ProjectConfig{
		Name:         strings.TrimSpace(s.Name),
		Dependencies: depspec.ToPersisted(python, splitLines(s.Conda), splitLines(s.Pip)),
	}
}

// EnvForm builds the environment form bound to s.
func EnvForm(s *EnvState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Environment name").
				Description("Directory of the conda environment.").
				Placeholder(models.DefaultEnvName).
				Value(&s.Name),
			huh.NewInput().
				Title("Python version").
				Placeholder(models.DefaultPythonVersion).
				Value(&s.Python),
		).Title("Environment"),
		huh.NewGroup(
			huh.NewText().
				Title("Conda packages").
				Description("One spec per line, e.g. numpy or scipy>=1.10.").
				Lines(8).
				Value(&s.Conda),
			huh.NewText().
				Title("Pip packages").
				Description("Installed with pip after the conda packages.").
				Lines(8).
				Value(&s.Pip),
		).Title("Dependencies"),
	)
}
