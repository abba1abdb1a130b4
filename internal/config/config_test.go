package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  read_timeout: 5s
log:
  level: debug
stations:
  source: json
  stations_file: /data/stations.json
cors:
  allowed_origins:
    - https://tides.example.com
`)

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != 9000 {
		t.Errorf("port: expected 9000, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout: expected 5s, got %v", c.Server.ReadTimeout)
	}
	// Unset fields keep defaults.
	if c.Server.WriteTimeout != 30*time.Second {
		t.Errorf("write timeout default: expected 30s, got %v", c.Server.WriteTimeout)
	}
	if c.Stations.Source != "json" || c.Stations.StationsFile != "/data/stations.json" {
		t.Errorf("unexpected stations config %+v", c.Stations)
	}
	if len(c.CORS.AllowedOrigins) != 1 {
		t.Errorf("expected 1 allowed origin, got %v", c.CORS.AllowedOrigins)
	}
}

func TestLoad_InvalidSource(t *testing.T) {
	path := writeConfig(t, `
stations:
  source: netcdf
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown stations source")
	}
}

func TestLoadWithEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STATIONS_FILE", "/tmp/stations.json")
	t.Setenv("LOG_LEVEL", "warn")

	c, err := LoadWithEnv("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Port != 3000 {
		t.Errorf("port: expected 3000, got %d", c.Server.Port)
	}
	if c.Stations.Source != "json" {
		t.Errorf("STATIONS_FILE should switch source to json, got %s", c.Stations.Source)
	}
	if c.Log.Level != "warn" {
		t.Errorf("log level: expected warn, got %s", c.Log.Level)
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}
