package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/ouroboros-dev/ouroboros/internal/tui/forms"
	"github.com/spf13/cobra"
)

// uvEnvDir is where uv keeps the project environment.
const uvEnvDir = ".venv"

// UVCommand handles the uv command group
type UVCommand struct {
	fs     filesystem.FileSystem
	runner invoker.Runner
	opts   *globalOptions

	// fill lets the user edit the state; tests replace the form
	fill func(*forms.UVState) error

	name           string
	version        string
	requiresPython string
	deps           []string
	dev            []string
}

// NewUVCommand creates the uv command group
func NewUVCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions) *cobra.Command {
	cmd := &UVCommand{
		fs:     fs,
		runner: runner,
		opts:   opts,
		fill: func(st *forms.UVState) error {
			return forms.Run(forms.UVForm(st))
		},
	}
	return cmd.command()
}

func (c *UVCommand) command() *cobra.Command {
	uvCmd := &cobra.Command{
		Use:   "uv",
		Short: "Manage the uv project in pyproject.toml",
	}

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Update pyproject.toml without the form",
		Long: `Update the project table of pyproject.toml. Only the given flags change;
--dep and --dev replace the whole list. Other tables such as [tool.uv] are kept.`,
		Example: `  ouroboros uv save --requires-python 3.12 --dep httpx --dev pytest`,
		Args:    cobra.NoArgs,
		RunE:    c.runSave,
	}
	saveCmd.Flags().StringVar(&c.name, "name", "", "Project name")
	saveCmd.Flags().StringVar(&c.version, "version", "", "Project version")
	saveCmd.Flags().StringVar(&c.requiresPython, "requires-python", "", "Python requirement, a bare version means at least that version")
	saveCmd.Flags().StringArrayVar(&c.deps, "dep", nil, "Dependency (repeatable)")
	saveCmd.Flags().StringArrayVar(&c.dev, "dev", nil, "Dev dependency (repeatable)")

	uvCmd.AddCommand(
		&cobra.Command{
			Use:   "edit",
			Short: "Edit pyproject.toml in a form",
			Args:  cobra.NoArgs,
			RunE:  c.runEdit,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the uv project settings",
			Args:  cobra.NoArgs,
			RunE:  c.runShow,
		},
		saveCmd,
		&cobra.Command{
			Use:   "sync",
			Short: "Install the locked dependencies with uv sync",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runSync(cmd, false)
			},
		},
		&cobra.Command{
			Use:   "upgrade",
			Short: "Upgrade the locked dependencies with uv sync --upgrade",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runSync(cmd, true)
			},
		},
		&cobra.Command{
			Use:   "freeze",
			Short: "Write uv pip freeze output to " + requirementsFileName,
			Args:  cobra.NoArgs,
			RunE:  c.runFreeze,
		},
		&cobra.Command{
			Use:   "activate",
			Short: "Print the command activating the uv environment",
			Args:  cobra.NoArgs,
			RunE:  c.runActivate,
		},
	)

	return uvCmd
}

// loadDocument loads pyproject.toml, or a new document named after the project
// directory when it does not exist yet.
func (c *UVCommand) loadDocument(s *session) (*document.Map, error) {
	if !c.fs.Exists(s.ws.PyprojectPath) {
		return models.NewPyprojectDocument(s.ws.Name()), nil
	}
	return s.store.Load(s.ws.PyprojectPath)
}

func (c *UVCommand) save(s *session, doc *document.Map, cfg models.UVProjectConfig) error {
	cfg.ApplyTo(doc)
	if err := s.store.Save(doc, s.ws.PyprojectPath); err != nil {
		return err
	}

	fmt.Fprintln(s.out, tui.Success("saved "+s.ws.PyprojectPath))
	return nil
}

func (c *UVCommand) runEdit(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	doc, err := c.loadDocument(s)
	if err != nil {
		return err
	}

	st := forms.NewUVState(models.UVFromDocument(doc))
	if err := c.fill(&st); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(s.out, tui.SubtleStyle.Render("cancelled"))
			return nil
		}
		return err
	}

	return c.save(s, doc, st.Project())
}

func (c *UVCommand) runSave(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	doc, err := c.loadDocument(s)
	if err != nil {
		return err
	}

	cfg := models.UVFromDocument(doc)

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = c.name
	}
	if flags.Changed("version") {
		cfg.Version = c.version
	}
	if flags.Changed("requires-python") {
		cfg.RequiresPython = c.requiresPython
	}
	if flags.Changed("dep") {
		cfg.Dependencies = models.CleanItems(c.deps)
	}
	if flags.Changed("dev") {
		cfg.DevDependencies = models.CleanItems(c.dev)
	}

	return c.save(s, doc, cfg)
}

func (c *UVCommand) runShow(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	doc, err := s.load(s.ws.PyprojectPath)
	if err != nil {
		return err
	}
	cfg := models.UVFromDocument(doc)

	renderTable(s.out, [2]string{"Setting", "Value"}, [][2]string{
		{"Name", cfg.Name},
		{"Version", cfg.Version},
		{"Requires Python", cfg.RequiresPython},
		{"Dependencies", strings.Join(cfg.Dependencies, ", ")},
		{"Dev dependencies", strings.Join(cfg.DevDependencies, ", ")},
	})
	return nil
}

func (c *UVCommand) runSync(cmd *cobra.Command, upgrade bool) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	if !c.fs.Exists(s.ws.PyprojectPath) {
		return fmt.Errorf("%s not found, run `ouroboros uv edit` or `ouroboros init --uv` first", s.ws.PyprojectPath)
	}

	return s.run(cmd.Context(), s.tools.UVSync(upgrade))
}

func (c *UVCommand) runFreeze(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	path := filepath.Join(s.ws.RootPath, requirementsFileName)
	return s.capture(cmd.Context(), s.tools.UVPipFreeze(), path)
}

func (c *UVCommand) runActivate(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	envDir := filepath.Join(s.ws.RootPath, uvEnvDir)
	if s.goos == "windows" {
		fmt.Fprintln(s.out, filepath.Join(envDir, "Scripts", "activate"))
		return nil
	}

	fmt.Fprintln(s.out, argbuilder.Quote([]string{"source", filepath.Join(envDir, "bin", "activate")}))
	return nil
}
