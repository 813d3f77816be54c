package config

import (
	"errors"
	"fmt"

	"github.com/doeshing/animeprompt/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if len(cfg.Models) == 0 {
		return errors.New("at least one model must be configured")
	}
	if err := cfg.ValidateConsistency(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(cfg.Models))
	for _, model := range cfg.Models {
		if err := validateModel(model); err != nil {
			return err
		}
		if seen[model.Name] {
			return fmt.Errorf("model %s declared twice", model.Name)
		}
		seen[model.Name] = true
	}
	if err := validatePreferences(cfg.Preferences); err != nil {
		return err
	}
	return validateStorage(cfg.Storage)
}

func validateModel(model domain.ModelDefinition) error {
	if model.Name == "" {
		return errors.New("model name must be set")
	}
	if model.ModelID == "" {
		return fmt.Errorf("model %s: model_id must be set", model.Name)
	}
	switch model.Provider {
	case "", domain.ProviderKindGemini:
	case domain.ProviderKindHTTP:
		if model.Endpoint == "" {
			return fmt.Errorf("model %s: http provider requires an endpoint", model.Name)
		}
	default:
		return fmt.Errorf("model %s: provider must be %s|%s, got %s",
			model.Name, domain.ProviderKindGemini, domain.ProviderKindHTTP, model.Provider)
	}
	if model.Temperature != nil && (*model.Temperature < 0 || *model.Temperature > 2) {
		return fmt.Errorf("model %s: temperature must be within [0, 2]", model.Name)
	}
	return nil
}

func validatePreferences(prefs domain.Preferences) error {
	if prefs.HistoryWindow < 0 {
		return fmt.Errorf("preferences.history_window must be >= 0")
	}
	if prefs.TimeoutSeconds < 0 {
		return fmt.Errorf("preferences.timeout must be >= 0")
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	if storage.KeyFile != "" && storage.KeyFile == storage.HistoryFile {
		return fmt.Errorf("storage.key_file and storage.history_file must differ")
	}
	return nil
}
