package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/ouroboros-dev/ouroboros/internal/configstore"
	"github.com/ouroboros-dev/ouroboros/internal/document"
	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/ouroboros-dev/ouroboros/internal/logging"
	"github.com/ouroboros-dev/ouroboros/internal/settings"
	"github.com/ouroboros-dev/ouroboros/internal/tui"
	"github.com/ouroboros-dev/ouroboros/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath    string
	pyprojectPath string
	settingsPath  string
	dryRun        bool
	verbose       bool
}

func (o *globalOptions) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "Path to ouroboros.yml (default: <project>/ouroboros.yml)")
	flags.StringVar(&o.pyprojectPath, "pyproject", "", "Path to pyproject.toml (default: <project>/pyproject.toml)")
	flags.StringVar(&o.settingsPath, "settings", "", "Path to the user settings file")
	flags.BoolVar(&o.dryRun, "dry-run", false, "Print commands instead of running them")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")
}

// session is the state one command invocation works with.
type session struct {
	fs       filesystem.FileSystem
	ws       *workspace.Workspace
	settings settings.Settings
	store    *configstore.Store
	tools    argbuilder.Tools
	out      io.Writer
	logger   *log.Logger
	goos     string
	dryRun   bool

	// runner executes tool commands; it prints them under --dry-run
	runner invoker.Runner

	// probeRunner always executes, version checks have no side effects
	probeRunner invoker.Runner

	// terminal wraps long-running commands, see settings.KeyTerminal
	terminal []string
}

// open loads settings, applies the log level and detects the workspace.
func (o *globalOptions) open(cmd *cobra.Command, fs filesystem.FileSystem, runner invoker.Runner) (*session, error) {
	cfg, err := settings.Load(o.settingsPath)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	if err := logging.SetLevel(level); err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", settings.KeyLogLevel, level, err)
	}

	terminal, err := cfg.TerminalPrefix()
	if err != nil {
		return nil, err
	}

	ws := workspace.New(fs,
		workspace.WithConfigPath(o.configPath),
		workspace.WithPyprojectPath(o.pyprojectPath),
	)
	if err := ws.Detect(); err != nil {
		return nil, fmt.Errorf("failed to detect project: %w", err)
	}

	out := cmd.OutOrStdout()
	s := &session{
		fs:          fs,
		ws:          ws,
		settings:    cfg,
		store:       configstore.New(fs),
		tools:       cfg.Tools(),
		out:         out,
		logger:      logging.New("cli"),
		goos:        runtime.GOOS,
		dryRun:      o.dryRun,
		runner:      runner,
		probeRunner: runner,
		terminal:    terminal,
	}
	if o.dryRun {
		s.runner = invoker.NewDryRunner(out)
	}

	s.logger.Debug("project detected", "root", ws.RootPath, "config", ws.ConfigPath, "settings", cfg.Path)
	return s, nil
}

// load reads path. A malformed file is reported and replaced by an empty
// document so read-only commands keep working with defaults.
func (s *session) load(path string) (*document.Map, error) {
	doc, err := s.store.Load(path)
	if err != nil {
		var perr *configstore.ParseError
		if !errors.As(err, &perr) {
			return nil, err
		}
		fmt.Fprintln(s.out, tui.Warning(perr.Error()+", using defaults"))
	}
	return doc, nil
}

// run executes argv in the project root, streaming its output. A nil argv
// means there is nothing to do.
func (s *session) run(ctx context.Context, argv []string) error {
	if argv == nil {
		return nil
	}

	if len(s.terminal) > 0 {
		argv = append(append([]string{}, s.terminal...), argv...)
	}

	if !s.dryRun {
		fmt.Fprintln(s.out, tui.Command(argbuilder.Quote(argv)))
	}

	_, err := s.runner.Run(ctx, invoker.Command{
		Argv:   argv,
		Dir:    s.ws.RootPath,
		Output: s.out,
	})
	return err
}

// capture runs argv and stores its stdout at path.
func (s *session) capture(ctx context.Context, argv []string, path string) error {
	cmd := invoker.Command{Argv: argv, Dir: s.ws.RootPath}

	if s.dryRun {
		_, err := s.runner.Run(ctx, cmd)
		return err
	}

	if err := invoker.Capture(ctx, s.runner, s.fs, cmd, path); err != nil {
		return err
	}
	fmt.Fprintln(s.out, tui.Success("wrote "+path))
	return nil
}

// interpreter returns the Python interpreter of the env environment, or
// override when set. Under --dry-run a missing interpreter is replaced by
// its most likely location so the command can still be shown.
func (s *session) interpreter(env, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	python, err := s.ws.Interpreter(s.goos, env)
	if err != nil {
		var nf *invoker.ToolNotFoundError
		if s.dryRun && errors.As(err, &nf) && len(nf.Candidates) > 0 {
			return nf.Candidates[0], nil
		}
		return "", err
	}
	return python, nil
}

// warn logs builder warnings and shows them to the user.
func (s *session) warn(warnings []argbuilder.ValidationWarning) {
	for _, w := range warnings {
		s.logger.Warn("option ignored", "grammar", w.Grammar, "field", w.Field, "label", w.Label)
		fmt.Fprintln(s.out, tui.Warning(w.Error()))
	}
}

// interactive reports whether out is a terminal.
func (s *session) interactive() bool {
	f, ok := s.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderTable writes a two column key/value table.
func renderTable(out io.Writer, header [2]string, rows [][2]string) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{header[0], header[1]})
	for _, r := range rows {
		t.AppendRow(table.Row{r[0], r[1]})
	}

	t.Render()
}
