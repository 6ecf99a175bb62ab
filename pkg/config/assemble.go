package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillhq/quill/internal/logger"
	"github.com/quillhq/quill/pkg/lifecycle"
	"github.com/quillhq/quill/pkg/registry"
)

// InitializeRegistry creates a registry and assembles storage from the
// provided configuration.
//
// This function orchestrates the complete initialization process:
//  1. Creates an empty registry
//  2. Opens the storage backend selected by cfg.Storage.Target
//  3. Ensures all configured collections exist
//  4. Binds the open store into the configured registry slot
//
// The returned controller owns the store handle; call its Shutdown during
// process teardown to close the backend.
//
// Example:
//
//	cfg, _ := config.Load("config.yaml")
//	reg, ctrl, err := config.InitializeRegistry(ctx, cfg)
//	if err != nil {
//	    log.Fatalf("Failed to initialize registry: %v", err)
//	}
//	defer ctrl.Shutdown()
func InitializeRegistry(ctx context.Context, cfg *Config) (*registry.Registry, *lifecycle.Controller, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("configuration is nil")
	}

	logger.Debug("Initializing registry from configuration",
		logger.KeyTarget, redactTarget(cfg.Storage.Target),
		logger.KeyCell, cfg.Storage.Cell)

	reg := registry.New()

	ctrl := lifecycle.New(reg, lifecycle.Config{
		Target:      cfg.Storage.Target,
		Cell:        cfg.Storage.Cell,
		Collections: cfg.Storage.Collections,
	})

	if err := ctrl.Assemble(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to assemble storage: %w", err)
	}

	logger.Info("Registry initialized",
		logger.KeyCell, cfg.Storage.Cell,
		logger.KeyCount, reg.Count())

	return reg, ctrl, nil
}

// redactTarget trims a connection target to its scheme; targets can embed
// credentials.
func redactTarget(target string) string {
	if i := strings.Index(target, "://"); i >= 0 {
		return target[:i] + "://..."
	}
	return target
}
