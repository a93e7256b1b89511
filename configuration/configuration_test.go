package configuration_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sebo-the-tramp/travelsync/configuration"
)

func TestParse_InitializesDefaultConfigOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "config.json")

	config, err := configuration.Parse(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5000/api", config.APIBaseURL)
	require.Equal(t, "ws://localhost:5000/socket", config.SocketURL)
	require.Equal(t, 10, config.RequestTimeout)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(written, &onDisk))
	require.Contains(t, onDisk, "airportdb_token")
}

func TestParse_ReadsExistingConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	dataDir := filepath.Join(dir, "data")
	contents := `{"api_base_url": "https://travelsync.example/api", "data_directory": "` + dataDir + `"}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	config, err := configuration.Parse(path)
	require.NoError(t, err)
	require.Equal(t, "https://travelsync.example/api", config.APIBaseURL)
	require.Equal(t, dataDir, config.DataDirectory)
	require.DirExists(t, dataDir)
	require.Equal(t, filepath.Join(dataDir, "session.db"), config.SessionPath())
}

func TestExpandPath_ReplacesTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := configuration.ExpandPath("~/.travelsync/config.json")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".travelsync/config.json"), expanded)

	unchanged, err := configuration.ExpandPath("/etc/travelsync.json")
	require.NoError(t, err)
	require.Equal(t, "/etc/travelsync.json", unchanged)
}
