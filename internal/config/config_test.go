package config

import (
	"os"
	"path/filepath"
	"testing"
)

type testOptions struct {
	Config string
	Port   string `toml:"serial.port" env:"SERIAL_PORT"`
	Baud   int    `toml:"serial.baud" env:"SERIAL_BAUD"`
	Debug  bool   `toml:"logging.debug" env:"LOGGING_DEBUG"`
}

func writeTOML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFromTOML(t *testing.T) {
	path := writeTOML(t, `
[serial]
port = "/dev/ttyUSB3"
baud = 57600

[logging]
debug = true
`)

	opts := &testOptions{Config: path, Baud: 115200}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if opts.Port != "/dev/ttyUSB3" {
		t.Errorf("Port = %q", opts.Port)
	}
	if opts.Baud != 57600 {
		t.Errorf("Baud = %d", opts.Baud)
	}
	if !opts.Debug {
		t.Error("Debug not set from TOML")
	}
}

func TestLoadConfigEnvOverridesTOML(t *testing.T) {
	path := writeTOML(t, `
[serial]
port = "/dev/ttyUSB3"
`)
	t.Setenv("PANELNODE_SERIAL_PORT", "/dev/ttyACM0")

	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if opts.Port != "/dev/ttyACM0" {
		t.Errorf("Port = %q, want env override", opts.Port)
	}
}

func TestLoadConfigMissingFileIsNotFatal(t *testing.T) {
	opts := &testOptions{Config: "does-not-exist.toml", Port: "/dev/default"}
	if err := LoadConfig(opts, nil); err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if opts.Port != "/dev/default" {
		t.Errorf("Port = %q, want defaults kept", opts.Port)
	}
}

func TestLoadConfigMalformedTOML(t *testing.T) {
	path := writeTOML(t, `not toml at all [`)

	opts := &testOptions{Config: path}
	if err := LoadConfig(opts, nil); err == nil {
		t.Fatal("LoadConfig() with malformed TOML succeeded, want error")
	}
}

func TestLoadLoggingConfig(t *testing.T) {
	path := writeTOML(t, `
[logging]
level = "debug"
format = "json"
transport = "warn"
driver = "error"
`)

	cfg := LoadLoggingConfig(path)
	if cfg.Level != "debug" || cfg.Format != "json" {
		t.Errorf("global config = %+v", cfg)
	}
	if cfg.Modules["transport"] != "warn" || cfg.Modules["driver"] != "error" {
		t.Errorf("module levels = %v", cfg.Modules)
	}
}

func TestLoadLoggingConfigMissingFile(t *testing.T) {
	cfg := LoadLoggingConfig("does-not-exist.toml")
	if cfg.Level != "info" || cfg.Format != "text" {
		t.Errorf("defaults = %+v", cfg)
	}
}
