package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/depspec"
	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/ouroboros-dev/ouroboros/internal/tui/forms"
	"github.com/spf13/cobra"
)

const (
	requirementsFileName = "requirements.txt"
	environmentFileName  = "environment.yml"
)

// EnvCommand handles the env command group
type EnvCommand struct {
	fs     filesystem.FileSystem
	runner invoker.Runner
	opts   *globalOptions

	// fill lets the user edit the state; tests replace the form
	fill func(*forms.EnvState) error

	name   string
	python string
	conda  []string
	pip    []string
}

// NewEnvCommand creates the env command group
func NewEnvCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions) *cobra.Command {
	cmd := &EnvCommand{
		fs:     fs,
		runner: runner,
		opts:   opts,
		fill: func(st *forms.EnvState) error {
			return forms.Run(forms.EnvForm(st))
		},
	}
	return cmd.command()
}

func (c *EnvCommand) command() *cobra.Command {
	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the conda environment of the project",
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Update the environment definition without the form",
		Long: `Update the environment definition in ouroboros.yml. Only the given flags
change; --conda and --pip replace the whole package list.`,
		Example: `  ouroboros env save --python 3.11 --conda numpy --conda pandas --pip requests`,
		Args:    cobra.NoArgs,
		RunE:    c.runSave,
	}
	saveCmd.Flags().StringVar(&c.name, "name", "", "Environment directory name")
	saveCmd.Flags().StringVar(&c.python, "python", "", "Python version")
	saveCmd.Flags().StringArrayVar(&c.conda, "conda", nil, "Conda package spec (repeatable)")
	saveCmd.Flags().StringArrayVar(&c.pip, "pip", nil, "Pip package spec (repeatable)")

	envCmd.AddCommand(
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the environment definition in a form",
			Args:  cobra.NoArgs,
			RunE:  c.runEdit,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the environment definition",
			Args:  cobra.NoArgs,
			RunE:  c.runShow,
		},
		saveCmd,
		&cobra.Command{
			Use:   "build",
			Short: "Create the environment with conda",
			Args:  cobra.NoArgs,
			RunE:  c.runBuild,
		},
		&cobra.Command{
			Use:   "install",
			Short: "Install the conda and pip packages into the environment",
			Args:  cobra.NoArgs,
			RunE:  c.runInstall,
		},
		&cobra.Command{
			Use:   "activate",
			Short: "Print the command activating the environment",
			Args:  cobra.NoArgs,
			RunE:  c.runActivate,
		},
		&cobra.Command{
			Use:   "export-requirements",
			Short: "Write pip freeze output to " + requirementsFileName,
			Args:  cobra.NoArgs,
			RunE:  c.runExportRequirements,
		},
		&cobra.Command{
			Use:   "export-env",
			Short: "Write conda env export output to " + environmentFileName,
			Args:  cobra.NoArgs,
			RunE:  c.runExportEnv,
		},
	)

	return envCmd
}

func (c *EnvCommand) project(s *session) (models.ProjectConfig, error) {
	doc, err := s.load(s.ws.ConfigPath)
	if err != nil {
		return models.ProjectConfig{}, err
	}
	return models.ProjectFromDocument(doc), nil
}

// save writes cfg, keeping every other key of the project file.
func (c *EnvCommand) save(s *session, cfg models.ProjectConfig) error {
	err := s.store.Update(s.ws.ConfigPath, func(doc *document.Map) error {
		cfg.ApplyTo(doc)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, tui.Success("saved "+s.ws.ConfigPath))
	return nil
}

func (c *EnvCommand) runEdit(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	// Editing a malformed file would discard it, so the parse error stops us.
	doc, err := s.store.Load(s.ws.ConfigPath)
	if err != nil {
		return err
	}

	st := forms.NewEnvState(models.ProjectFromDocument(doc))
	if err := c.fill(&st); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(s.out, tui.SubtleStyle.Render("cancelled"))
			return nil
		}
		return err
	}

	return c.save(s, st.Project())
}

func (c *EnvCommand) runSave(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	doc, err := s.store.Load(s.ws.ConfigPath)
	if err != nil {
		return err
	}

	cfg := models.ProjectFromDocument(doc)
	split := depspec.FromPersisted(cfg.Dependencies)

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = strings.TrimSpace(c.name)
	}
	if flags.Changed("python") {
		split.Python = c.python
	}
	if flags.Changed("conda") {
		split.Conda = models.CleanItems(c.conda)
	}
	if flags.Changed("pip") {
		split.Pip = models.CleanItems(c.pip)
	}

	cfg.Dependencies = depspec.ToPersisted(models.ResolvePythonVersion(split.Python), split.Conda, split.Pip)
	return c.save(s, cfg)
}

func (c *EnvCommand) runShow(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, err := c.project(s)
	if err != nil {
		return err
	}
	split := depspec.FromPersisted(cfg.Dependencies)

	python := split.Python
	if python == "" {
		python = "(not set)"
	}

	interpreter, err := s.ws.Interpreter(s.goos, cfg.Name)
	if err != nil {
		interpreter = "(not built)"
	} else if rel, err := filepath.Rel(s.ws.RootPath, interpreter); err == nil {
		interpreter = rel
	}

	renderTable(s.out, [2]string{"Setting", "Value"}, [][2]string{
		{"Environment", cfg.EnvName()},
		{"Python", python},
		{"Conda packages", strings.Join(split.Conda, ", ")},
		{"Pip packages", strings.Join(split.Pip, ", ")},
		{"Interpreter", interpreter},
	})
	return nil
}

func (c *EnvCommand) runBuild(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	if !c.fs.Exists(s.ws.ConfigPath) {
		return fmt.Errorf("%s not found, run `ouroboros init` first", s.ws.ConfigPath)
	}

	cfg, err := c.project(s)
	if err != nil {
		return err
	}
	env := cfg.EnvName()

	if err := s.run(cmd.Context(), s.tools.CondaEnvCreate(s.ws.ConfigPath, env)); err != nil {
		return err
	}
	if s.dryRun {
		return nil
	}

	// a terminal wrapper may return before conda has created the directory
	if len(s.terminal) > 0 && !c.fs.Exists(s.ws.EnvDir(env)) {
		fmt.Fprintln(s.out, tui.SubtleStyle.Render("environment "+env+" is being built in a separate terminal, run `ouroboros env build` again to check it"))
		return nil
	}

	ignore, err := s.ws.EnsureEnvIgnored(env)
	if err != nil {
		return err
	}
	if ignore != "" {
		fmt.Fprintln(s.out, tui.Success("wrote "+ignore))
	}

	fmt.Fprintln(s.out, tui.Success("environment "+env+" created"))
	return nil
}

func (c *EnvCommand) runInstall(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, err := c.project(s)
	if err != nil {
		return err
	}
	env := cfg.EnvName()
	split := depspec.FromPersisted(cfg.Dependencies)

	condaArgv := s.tools.CondaInstall(env, split.Conda)
	if condaArgv == nil && len(models.CleanItems(split.Pip)) == 0 {
		fmt.Fprintln(s.out, tui.SubtleStyle.Render("no packages to install"))
		return nil
	}

	if err := s.run(cmd.Context(), condaArgv); err != nil {
		return err
	}

	if len(models.CleanItems(split.Pip)) == 0 {
		return nil
	}

	python, err := s.interpreter(cfg.Name, "")
	if err != nil {
		return fmt.Errorf("failed to find the environment interpreter, run `ouroboros env build` first: %w", err)
	}
	return s.run(cmd.Context(), argbuilder.PipInstall(python, s.settings.PipIndexURL, split.Pip))
}

func (c *EnvCommand) runActivate(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, err := c.project(s)
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, argbuilder.Quote([]string{s.tools.Conda, "activate", s.ws.EnvDir(cfg.Name)}))
	return nil
}

func (c *EnvCommand) runExportRequirements(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, err := c.project(s)
	if err != nil {
		return err
	}

	python, err := s.interpreter(cfg.Name, "")
	if err != nil {
		return fmt.Errorf("failed to find the environment interpreter, run `ouroboros env build` first: %w", err)
	}

	path := filepath.Join(s.ws.RootPath, requirementsFileName)
	return s.capture(cmd.Context(), argbuilder.PipFreeze(python), path)
}

func (c *EnvCommand) runExportEnv(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, err := c.project(s)
	if err != nil {
		return err
	}

	path := filepath.Join(s.ws.RootPath, environmentFileName)
	return s.capture(cmd.Context(), s.tools.CondaEnvExport(cfg.EnvName()), path)
}
