// Package config loads the server configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Stations struct {
		// Source selects the station loader: "csv" reads per-station
		// files from DataDir, "json" reads one StationsFile.
		Source       string `yaml:"source"`
		DataDir      string `yaml:"data_dir"`
		StationsFile string `yaml:"stations_file"`
		// OverridesFile optionally layers per-station corrections on top
		// of the loaded constants.
		OverridesFile string `yaml:"overrides_file"`
	} `yaml:"stations"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 30 * time.Second
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Log.Level = "info"
	c.Log.Format = "json"
	c.Stations.Source = "csv"
	c.Stations.DataDir = "./data"
	return &c
}

// Load reads and parses a YAML configuration file. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()

	//nolint:gosec // G304: Path comes from the command line.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML (or defaults when path is empty) and
// overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	var c *Config
	if path == "" {
		c = Default()
	} else {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if v := os.Getenv("PORT"); v != "" {
		if _, err := fmt.Sscanf(v, "%d", &c.Server.Port); err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.Stations.DataDir = v
	}
	if v := os.Getenv("STATIONS_FILE"); v != "" {
		c.Stations.StationsFile = v
		c.Stations.Source = "json"
	}
	if v := os.Getenv("STATION_OVERRIDES_FILE"); v != "" {
		c.Stations.OverridesFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = strings.Split(v, ",")
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	switch c.Stations.Source {
	case "csv":
		if c.Stations.DataDir == "" {
			return fmt.Errorf("stations.data_dir is required for the csv source")
		}
	case "json":
		if c.Stations.StationsFile == "" {
			return fmt.Errorf("stations.stations_file is required for the json source")
		}
	default:
		return fmt.Errorf("stations.source must be 'csv' or 'json', got '%s'", c.Stations.Source)
	}
	return nil
}
