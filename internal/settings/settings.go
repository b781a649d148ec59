// Package settings loads the user-wide ouroboros configuration.
//
// Values come from, in increasing priority: built-in defaults, the TOML
// settings file and OUROBOROS_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ouroboros-dev/ouroboros/internal/argbuilder"
	"github.com/spf13/viper"
)

const (
	// AppName is the directory name under the user config dir.
	AppName = "ouroboros"

	// FileName is the settings file inside the app directory.
	FileName = "config.toml"

	// EnvPrefix prefixes environment overrides, e.g. OUROBOROS_LOG_LEVEL.
	EnvPrefix = "OUROBOROS"
)

// Keys of the settings file.
const (
	KeyPipIndexURL      = "pip_index_url"
	KeyLogLevel         = "log_level"
	KeyTerminal         = "terminal"
	KeyCondaExecutable  = "conda_executable"
	KeyUVExecutable     = "uv_executable"
	KeyDockerExecutable = "docker_executable"
)

// Settings is the user-wide configuration.
type Settings struct {
	// PipIndexURL is passed to pip install as --index-url when set
	PipIndexURL string `mapstructure:"pip_index_url"`

	LogLevel string `mapstructure:"log_level"`

	// Terminal is a command line that long-running tools are wrapped in,
	// such as "x-terminal-emulator -e". Empty runs them in place.
	Terminal string `mapstructure:"terminal"`

	CondaExecutable  string `mapstructure:"conda_executable"`
	UVExecutable     string `mapstructure:"uv_executable"`
	DockerExecutable string `mapstructure:"docker_executable"`

	// Path is the settings file that was read; empty when none existed
	Path string `mapstructure:"-"`
}

// Default returns the built-in settings.
func Default() Settings {
	tools := argbuilder.DefaultTools()
	return Settings{
		LogLevel:         "warn",
		CondaExecutable:  tools.Conda,
		UVExecutable:     tools.UV,
		DockerExecutable: tools.Docker,
	}
}

// DefaultPath returns the settings file location for the current user.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the settings file at path, or at DefaultPath when path is
// empty. A missing file is not an error.
func Load(path string) (Settings, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Settings{}, err
		}
		path = p
	}

	v := viper.New()

	defaults := Default()
	v.SetDefault(KeyPipIndexURL, defaults.PipIndexURL)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyTerminal, defaults.Terminal)
	v.SetDefault(KeyCondaExecutable, defaults.CondaExecutable)
	v.SetDefault(KeyUVExecutable, defaults.UVExecutable)
	v.SetDefault(KeyDockerExecutable, defaults.DockerExecutable)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("toml")

	resolved := ""
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
		resolved = path
	} else if !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to stat settings %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	s.Path = resolved

	return s, nil
}

// Tools returns the executables to run, falling back to PATH lookups for
// blank entries.
func (s Settings) Tools() argbuilder.Tools {
	tools := argbuilder.DefaultTools()
	if v := strings.TrimSpace(s.CondaExecutable); v != "" {
		tools.Conda = v
	}
	if v := strings.TrimSpace(s.UVExecutable); v != "" {
		tools.UV = v
	}
	if v := strings.TrimSpace(s.DockerExecutable); v != "" {
		tools.Docker = v
	}
	return tools
}

// TerminalPrefix splits Terminal into argv tokens.
func (s Settings) TerminalPrefix() ([]string, error) {
	tokens, err := argbuilder.SplitArgs(s.Terminal, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid %s setting: %w", KeyTerminal, err)
	}
	return tokens, nil
}

// Entries returns the settings as key/value pairs in file order.
func (s Settings) Entries() [][2]string {
	return [][2]string{
		{KeyPipIndexURL, s.PipIndexURL},
		{KeyLogLevel, s.LogLevel},
		{KeyTerminal, s.Terminal},
		{KeyCondaExecutable, s.CondaExecutable},
		{KeyUVExecutable, s.UVExecutable},
		{KeyDockerExecutable, s.DockerExecutable},
	}
}
