package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/models"
)

// UVState is the uv project form.
type UVState struct {
	Name           string
	Version        string
	RequiresPython string
	Dependencies   string
	Dev            string
}

// NewUVState fills the form from pyproject.toml.
func NewUVState(cfg models.UVProjectConfig) UVState {
	return UVState{
		Name:           cfg.Name,
		Version:        cfg.Version,
		RequiresPython: cfg.RequiresPython,
		Dependencies:   joinLines(cfg.Dependencies),
		Dev:            joinLines(cfg.DevDependencies),
	}
}

// Project returns the configuration to persist.
func (s UVState) Project() models.UVProjectConfig {
	return models.UVProjectConfig{
		Name:            s.Name,
		Version:         s.Version,
		RequiresPython:  s.RequiresPython,
		Dependencies:    splitLines(s.Dependencies),
		DevDependencies: splitLines(s.Dev),
	}
}

// UVForm builds the uv form bound to s.
func UVForm(s *UVState) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Project name").Value(&s.Name),
			huh.NewInput().
				Title("Version").
				Placeholder(models.DefaultProjectVersion).
				Value(&s.Version),
			huh.NewInput().
				Title("Requires Python").
				Description("A bare version like 3.12 becomes >=3.12.").
				Placeholder(models.DefaultPythonVersion).
				Value(&s.RequiresPython),
		).Title("Project"),
		huh.NewGroup(
			huh.NewText().
				Title("Dependencies").
				Description("One PEP 508 requirement per line.").
				Lines(8).
				Value(&s.Dependencies),
			huh.NewText().
				Title("Dev dependencies").
				Lines(6).
				Value(&s.Dev),
		).Title("Dependencies"),
	)
}
