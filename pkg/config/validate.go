package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks the configuration against its struct validation tags and
// cross-field rules.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if err := validator.New().Struct(cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(errs))
			for _, fieldErr := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Namespace(), fieldErr.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return err
	}

	return validateStorage(&cfg.Storage)
}

// validateStorage applies storage rules that struct tags cannot express.
func validateStorage(cfg *StorageConfig) error {
	if cfg.Cell == "" {
		return fmt.Errorf("storage.cell cannot be empty")
	}
	for i, collection := range cfg.Collections {
		if strings.TrimSpace(collection) == "" {
			return fmt.Errorf("storage.collections[%d] cannot be empty", i)
		}
	}
	return nil
}
