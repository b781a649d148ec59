package cli

import (
	"fmt"

	"github.com/ouroboros-dev/ouroboros/internal/filesystem"
	"github.com/ouroboros-dev/ouroboros/internal/invoker"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, runner invoker.Runner) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ouroboros",
		Short: "Manage conda environments, uv projects and Nuitka builds",
		Long: `A CLI tool for the Python tooling around a project.

ouroboros keeps the environment, uv and Nuitka settings of a project in
ouroboros.yml and pyproject.toml, and turns them into conda, pip, uv and
Nuitka command lines.`,
		SilenceUsage: true,
	}

	opts.register(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(NewInitCommand(fs, opts))
	rootCmd.AddCommand(NewEnvCommand(fs, runner, opts))
	rootCmd.AddCommand(NewNuitkaCommand(fs, runner, opts))
	rootCmd.AddCommand(NewUVCommand(fs, runner, opts))
	rootCmd.AddCommand(NewCacheCommand(fs, runner, opts))
	rootCmd.AddCommand(NewToolsCommand(fs, runner, opts))
	rootCmd.AddCommand(NewVersionsCommand(fs, runner, opts))
	rootCmd.AddCommand(NewSettingsCommand(opts))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	runner := invoker.NewOSRunner()

	rootCmd := NewRootCommand(fs, runner)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
