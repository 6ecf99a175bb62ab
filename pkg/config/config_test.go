package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoad_DefaultsApplied(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write minimal config
	configContent := `
logging:
  level: "INFO"

storage:
  target: "memory"

api:
  port: 8080
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults were applied
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Storage.Cell != "articles" {
		t.Errorf("Expected default cell 'articles', got %q", cfg.Storage.Cell)
	}
	if len(cfg.Storage.Collections) != 1 || cfg.Storage.Collections[0] != "articles" {
		t.Errorf("Expected default collections ['articles'], got %v", cfg.Storage.Collections)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected API port 8080, got %d", cfg.API.Port)
	}
}

func TestApplyDefaults_ServedCollectionEnsured(t *testing.T) {
	// A collections list that omits the served collection must not leave
	// the service writing to an un-ensured collection.
	cfg := &Config{}
	cfg.Storage.Collections = []string{"posts"}
	ApplyDefaults(cfg)

	if cfg.Storage.Collection != "articles" {
		t.Errorf("Expected default collection 'articles', got %q", cfg.Storage.Collection)
	}
	if !slices.Contains(cfg.Storage.Collections, cfg.Storage.Collection) {
		t.Errorf("Expected collections %v to include the served collection %q",
			cfg.Storage.Collections, cfg.Storage.Collection)
	}
	if !slices.Contains(cfg.Storage.Collections, "posts") {
		t.Errorf("Expected configured collection 'posts' to survive, got %v", cfg.Storage.Collections)
	}

	// An explicit served collection seeds the ensured set when none is given.
	cfg = &Config{}
	cfg.Storage.Collection = "posts"
	ApplyDefaults(cfg)
	if len(cfg.Storage.Collections) != 1 || cfg.Storage.Collections[0] != "posts" {
		t.Errorf("Expected collections ['posts'], got %v", cfg.Storage.Collections)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	// This allows users to run the server without a config file for quick testing.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}

	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}
	if cfg.Storage.Target != "memory" {
		t.Errorf("Expected default storage target 'memory', got %q", cfg.Storage.Target)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected default API port 8080, got %d", cfg.API.Port)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "VERBOSE"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level, got nil")
	}
}

func TestLoad_DurationStrings(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
shutdown_timeout: "45s"

api:
  read_timeout: "5s"
  request_timeout: "1m"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ShutdownTimeout != 45*time.Second {
		t.Errorf("Expected shutdown_timeout 45s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read_timeout 5s, got %v", cfg.API.ReadTimeout)
	}
	if cfg.API.RequestTimeout != time.Minute {
		t.Errorf("Expected request_timeout 1m, got %v", cfg.API.RequestTimeout)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level 'INFO', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default log format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Storage.Target != "memory" {
		t.Errorf("Expected default storage target 'memory', got %q", cfg.Storage.Target)
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("Expected default telemetry endpoint 'localhost:4317', got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("Expected default sample rate 1.0, got %v", cfg.Telemetry.SampleRate)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()

	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected filename 'config.yaml', got %q", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "quill" {
		t.Errorf("Expected directory name 'quill', got %q", filepath.Base(filepath.Dir(path)))
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	original := GetDefaultConfig()
	original.Logging.Level = "DEBUG"
	original.Storage.Target = "badger:///tmp/quill-data"

	if err := SaveConfig(original, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// Saved file has restricted permissions
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to reload saved config: %v", err)
	}

	if loaded.Logging.Level != "DEBUG" {
		t.Errorf("Expected level 'DEBUG', got %q", loaded.Logging.Level)
	}
	if loaded.Storage.Target != "badger:///tmp/quill-data" {
		t.Errorf("Expected saved storage target, got %q", loaded.Storage.Target)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("QUILL_LOGGING_LEVEL", "ERROR")
	t.Setenv("QUILL_STORAGE_TARGET", "sqlite:///tmp/quill.db")

	// Create minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

storage:
  target: "memory"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify environment variables override config file
	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected level 'ERROR' from env var, got %q", cfg.Logging.Level)
	}
	if cfg.Storage.Target != "sqlite:///tmp/quill.db" {
		t.Errorf("Expected storage target from env var, got %q", cfg.Storage.Target)
	}
}

func TestValidate_EmptyCollectionName(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Collections = []string{"articles", "  "}

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for blank collection name, got nil")
	}
}
