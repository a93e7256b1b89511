package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var defaultConfig = Config{
	APIBaseURL:     "http://localhost:5000/api",
	SocketURL:      "ws://localhost:5000/socket",
	AirportDBHost:  "https://airportdb.io",
	AirportDBToken: "API_TOKEN",
	RequestTimeout: 10,
	DataDirectory:  "~/.travelsync",
}

// Config holds configuration for the travelsync tool.
type Config struct {
	APIBaseURL     string `json:"api_base_url"`
	SocketURL      string `json:"socket_url"`
	AirportDBHost  string `json:"airportdb_host"`
	AirportDBToken string `json:"airportdb_token"`
	RequestTimeout int    `json:"request_timeout"`
	DataDirectory  string `json:"data_directory"`
}

// SessionPath returns the path of the session database.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDirectory, "session.db")
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDataDirectory, err := ExpandPath(config.DataDirectory)
	if err != nil {
		return nil, errors.Wrap(err, "expanding data directory path")
	}
	config.DataDirectory = expandedDataDirectory
	if err := os.MkdirAll(config.DataDirectory, 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}

// ExpandPath expands a path to avoid `~`.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home dir")
	}
	return filepath.Join(home, path[2:]), nil
}
