package domain

import (
	"fmt"
	"strings"
	"time"
)

// GetDefaultModel retrieves the default model definition from configuration
// Returns an error if the default model is not found
func (c *Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}

	for _, model := range c.Models {
		if model.Name == c.Preferences.DefaultModel {
			return model, nil
		}
	}

	return ModelDefinition{}, fmt.Errorf("default model %s not found in configuration", c.Preferences.DefaultModel)
}

// PickModel returns the override model when given, otherwise the default.
// With neither set, the first configured model wins.
func (c *Config) PickModel(override string) (ModelDefinition, error) {
	name := override
	if name == "" {
		name = c.Preferences.DefaultModel
	}
	if name == "" {
		if len(c.Models) == 0 {
			return ModelDefinition{}, fmt.Errorf("no models configured")
		}
		return c.Models[0], nil
	}
	model, ok := c.FindModelByName(name)
	if !ok {
		return ModelDefinition{}, fmt.Errorf("model %s not configured", name)
	}
	return model, nil
}

// FindModelByName searches for a model by its name
func (c *Config) FindModelByName(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// SetDefaultModel selects name as the default model. The model must exist.
func (c *Config) SetDefaultModel(name string) error {
	if !c.HasModel(name) {
		return fmt.Errorf("model %s not found", name)
	}
	c.Preferences.DefaultModel = name
	return nil
}

// HasModel checks if a model with the given name exists in the configuration
func (c *Config) HasModel(name string) bool {
	_, exists := c.FindModelByName(name)
	return exists
}

// GetTimeout returns the provider request timeout.
func (c *Config) GetTimeout() time.Duration {
	if c.Preferences.TimeoutSeconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(c.Preferences.TimeoutSeconds) * time.Second
}

// GetHistoryWindow returns how many recent keywords are sent as context.
func (c *Config) GetHistoryWindow() int {
	if c.Preferences.HistoryWindow <= 0 {
		return DefaultHistoryWindow
	}
	return c.Preferences.HistoryWindow
}

// GetCredentialEnv returns the environment variable consulted for the API key.
func (c *Config) GetCredentialEnv() string {
	if c.Storage.CredentialEnv == "" {
		return DefaultCredentialEnv
	}
	return c.Storage.CredentialEnv
}

// GetHistoryBackend normalizes the configured history backend.
func (c *Config) GetHistoryBackend() string {
	backend := strings.ToLower(strings.TrimSpace(c.Storage.HistoryBackend))
	if backend == "" {
		return HistoryBackendFile
	}
	return backend
}

// UsesSQLiteHistory reports whether keywords are kept in SQLite.
func (c *Config) UsesSQLiteHistory() bool {
	return c.GetHistoryBackend() == HistoryBackendSQLite
}

// ValidateConsistency checks the internal consistency of the configuration
func (c *Config) ValidateConsistency() error {
	if c.Preferences.DefaultModel != "" && len(c.Models) == 0 {
		return fmt.Errorf("default model is set but no models are configured")
	}

	if c.Preferences.DefaultModel != "" && !c.HasModel(c.Preferences.DefaultModel) {
		return fmt.Errorf("default model %s does not exist in models list", c.Preferences.DefaultModel)
	}

	switch c.GetHistoryBackend() {
	case HistoryBackendFile, HistoryBackendSQLite:
	default:
		return fmt.Errorf("storage.history_backend must be %s|%s, got %s",
			HistoryBackendFile, HistoryBackendSQLite, c.Storage.HistoryBackend)
	}

	return nil
}
