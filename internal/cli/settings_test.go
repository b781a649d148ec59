package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingsShow_Defaults(t *testing.T) {
	cmd := NewSettingsCommand(testOptions(t))

	out, err := runCommand(t, cmd, "show")
	require.NoError(t, err)
	require.Contains(t, out, "no settings file")
	require.Contains(t, out, "conda_executable")
	require.Contains(t, out, "warn")
}

func TestSettingsShow_File(t *testing.T) {
	opts := writeSettings(t, `pip_index_url = "https://mirror.example/simple"`)
	cmd := NewSettingsCommand(opts)

	out, err := runCommand(t, cmd, "show")
	require.NoError(t, err)
	require.Contains(t, out, "read "+opts.settingsPath)
	require.Contains(t, out, "https://mirror.example/simple")
}

func TestInvalidLogLevel(t *testing.T) {
	opts := writeSettings(t, `log_level = "loud"`)
	cmd := NewCacheCommand(buildWorkspace(t, nil), nil, opts)

	_, err := runCommand(t, cmd, "conda")
	require.Error(t, err)
	require.Contains(t, err.Error(), "log_level")
}
