package config

import (
	"testing"

	"github.com/quillhq/quill/pkg/lifecycle"
)

func TestInitializeRegistry_Memory(t *testing.T) {
	cfg := GetDefaultConfig()

	reg, ctrl, err := InitializeRegistry(t.Context(), cfg)
	if err != nil {
		t.Fatalf("Failed to initialize registry: %v", err)
	}
	defer func() { _ = ctrl.Shutdown() }()

	if ctrl.State() != lifecycle.StateReady {
		t.Errorf("Expected controller state ready, got %v", ctrl.State())
	}
	if !reg.IsBound(cfg.Storage.Cell) {
		t.Errorf("Expected cell %q to be bound after assembly", cfg.Storage.Cell)
	}
}

func TestInitializeRegistry_NilConfig(t *testing.T) {
	_, _, err := InitializeRegistry(t.Context(), nil)
	if err == nil {
		t.Fatal("Expected error for nil configuration, got nil")
	}
}

func TestInitializeRegistry_UnknownScheme(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Storage.Target = "cassandra://localhost"

	_, _, err := InitializeRegistry(t.Context(), cfg)
	if err == nil {
		t.Fatal("Expected error for unknown storage scheme, got nil")
	}
}
