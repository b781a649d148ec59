package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/buildscript"
	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/models"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/ouroboros-dev/ouroboros/internal/tui/forms"
	"github.com/spf13/cobra"
)

// NuitkaCommand handles the nuitka command group
type NuitkaCommand struct {
	fs     filesystem.FileSystem
	runner invoker.Runner
	opts   *globalOptions

	// fill lets the user edit the state; tests replace the form
	fill func(*forms.NuitkaState) error

	python string
}

// NewNuitkaCommand creates the nuitka command group
func NewNuitkaCommand(fs filesystem.FileSystem, runner invoker.Runner, opts *globalOptions) *cobra.Command {
	cmd := &NuitkaCommand{
		fs:     fs,
		runner: runner,
		opts:   opts,
		fill: func(st *forms.NuitkaState) error {
			return forms.Run(forms.NuitkaForm(st))
		},
	}
	return cmd.command()
}

func (c *NuitkaCommand) command() *cobra.Command {
	nuitkaCmd := &cobra.Command{
		Use:   "nuitka",
		Short: "Configure and run Nuitka builds",
	}
	nuitkaCmd.PersistentFlags().StringVar(&c.python, "python", "",
		"Interpreter running Nuitka (default: the project environment's)")

	nuitkaCmd.AddCommand(
		&cobra.Command{
			Use:   "edit",
			Short: "Edit the Nuitka options in a form",
			Args:  cobra.NoArgs,
			RunE:  c.runEdit,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the Nuitka options and the resulting command",
			Args:  cobra.NoArgs,
			RunE:  c.runShow,
		},
		&cobra.Command{
			Use:   "build",
			Short: "Compile the entry script with Nuitka",
			Args:  cobra.NoArgs,
			RunE:  c.runBuild,
		},
		&cobra.Command{
			Use:   "script",
			Short: "Write " + buildscript.FileName + " running the same build",
			Args:  cobra.NoArgs,
			RunE:  c.runScript,
		},
		&cobra.Command{
			Use:   "clean-cache",
			Short: "Remove every Nuitka cache",
			Args:  cobra.NoArgs,
			RunE:  c.runCleanCache,
		},
	)

	return nuitkaCmd
}

func (c *NuitkaCommand) load(s *session) (models.ProjectConfig, models.NuitkaOptions, error) {
	doc, err := s.load(s.ws.ConfigPath)
	if err != nil {
		return models.ProjectConfig{}, models.NuitkaOptions{}, err
	}
	return models.ProjectFromDocument(doc), models.NuitkaFromDocument(doc), nil
}

func (c *NuitkaCommand) runEdit(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	doc, err := s.store.Load(s.ws.ConfigPath)
	if err != nil {
		return err
	}

	st := forms.NewNuitkaState(models.NuitkaFromDocument(doc))
	if err := c.fill(&st); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(s.out, tui.SubtleStyle.Render("cancelled"))
			return nil
		}
		return err
	}

	opts, err := st.Options()
	if err != nil {
		return err
	}

	err = s.store.Update(s.ws.ConfigPath, func(doc *document.Map) error {
		opts.ApplyTo(doc)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, tui.Success("saved "+s.ws.ConfigPath))
	return nil
}

func (c *NuitkaCommand) runShow(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, opts, err := c.load(s)
	if err != nil {
		return err
	}

	python, err := s.interpreter(cfg.Name, c.python)
	if err != nil {
		python = "python"
	}

	bools := opts.Bools()
	var switches []string
	for _, f := range []string{models.FieldDisableConsole, models.FieldRemoveOutput, models.FieldShowScons, models.FieldAssumeYes} {
		if bools[f] {
			switches = append(switches, f)
		}
	}

	renderTable(s.out, [2]string{"Option", "Value"}, [][2]string{
		{"Entry", opts.Entry},
		{"Output name", opts.OutputName},
		{"Output dir", opts.OutputDir},
		{"Build mode", opts.BuildMode.String()},
		{"Compiler", opts.Compiler.String()},
		{"Jobs", opts.Jobs},
		{"Switches", strings.Join(switches, ", ")},
		{"Plugins", strings.Join(opts.Plugins, ", ")},
		{"Packages", strings.Join(opts.Packages, ", ")},
		{"Modules", strings.Join(opts.Modules, ", ")},
		{"No-follow imports", strings.Join(opts.NoImports, ", ")},
		{"Data files", strings.Join(opts.Files, ", ")},
		{"Data dirs", strings.Join(opts.Dirs, ", ")},
		{"Extra args", argbuilder.Quote(opts.ExtraArgs)},
	})

	argv, warnings := argbuilder.NuitkaCommand(python, opts)
	s.warn(warnings)
	fmt.Fprintln(s.out, tui.Command(argbuilder.Quote(argv)))
	return nil
}

func (c *NuitkaCommand) runBuild(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, opts, err := c.load(s)
	if err != nil {
		return err
	}
	if opts.Entry == "" {
		return fmt.Errorf("no entry script configured, set it with `ouroboros nuitka edit`")
	}

	python, err := s.interpreter(cfg.Name, c.python)
	if err != nil {
		return fmt.Errorf("failed to find the environment interpreter, run `ouroboros env build` or pass --python: %w", err)
	}

	argv, warnings := argbuilder.NuitkaCommand(python, opts)
	s.warn(warnings)

	if err := s.run(cmd.Context(), argv); err != nil {
		return err
	}
	if !s.dryRun {
		fmt.Fprintln(s.out, tui.Success("build finished"))
	}
	return nil
}

func (c *NuitkaCommand) runScript(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	_, opts, err := c.load(s)
	if err != nil {
		return err
	}

	nuitkaArgs, warnings := argbuilder.NuitkaArgs(opts)
	s.warn(warnings)

	path, err := buildscript.Write(c.fs, s.ws.RootPath, append([]string{"-m", "nuitka"}, nuitkaArgs...))
	if err != nil {
		return err
	}

	fmt.Fprintln(s.out, tui.Success("wrote "+path))
	return nil
}

func (c *NuitkaCommand) runCleanCache(cmd *cobra.Command, args []string) error {
	s, err := c.opts.open(cmd, c.fs, c.runner)
	if err != nil {
		return err
	}

	cfg, _, err := c.load(s)
	if err != nil {
		return err
	}

	python, err := s.interpreter(cfg.Name, c.python)
	if err != nil {
		return fmt.Errorf("failed to find the environment interpreter, run `ouroboros env build` or pass --python: %w", err)
	}

	return s.run(cmd.Context(), argbuilder.NuitkaCleanCache(python))
}
