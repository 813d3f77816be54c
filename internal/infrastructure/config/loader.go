package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/animeprompt/assets"
	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/pkg/filesystem"
	"github.com/doeshing/animeprompt/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "ANIMEPROMPT_CONFIG"

// FileLoader loads YAML configuration from ~/.animeprompt/config.yaml (overridable via ANIMEPROMPT_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return Default()
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg = hydrateDefaults(cfg)
	if err := cfg.ValidateConsistency(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg back to the config file.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Reset overwrites the config file with the embedded defaults.
func (l *FileLoader) Reset() error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

// Path returns the config file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".animeprompt", "config.yaml")
}

// Default returns the embedded default configuration with runtime paths filled in.
func Default() (domain.Config, error) {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse default config: %w", err)
	}
	return hydrateDefaults(cfg), nil
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if len(cfg.Models) == 0 {
		cfg.Models = []domain.ModelDefinition{{
			Name:     domain.DefaultModelName,
			Provider: domain.ProviderKindGemini,
			ModelID:  domain.DefaultModelID,
		}}
	}
	if cfg.Preferences.DefaultModel == "" {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultRequestTimeout.Seconds())
	}
	if cfg.Preferences.HistoryWindow == 0 {
		cfg.Preferences.HistoryWindow = domain.DefaultHistoryWindow
	}
	if cfg.Storage.CredentialEnv == "" {
		cfg.Storage.CredentialEnv = domain.DefaultCredentialEnv
	}
	if cfg.Storage.HistoryBackend == "" {
		cfg.Storage.HistoryBackend = domain.HistoryBackendFile
	}
	cfg.Storage.KeyFile = tempPath(cfg.Storage.KeyFile, domain.KeyFileName)
	cfg.Storage.HistoryFile = tempPath(cfg.Storage.HistoryFile, domain.HistoryFileName)
	cfg.Storage.HistoryDB = tempPath(cfg.Storage.HistoryDB, domain.HistoryDBName)
	return cfg
}

// tempPath expands a configured path, defaulting to name inside os.TempDir().
func tempPath(configured, name string) string {
	if configured == "" {
		return filepath.Join(os.TempDir(), name)
	}
	return filesystem.ExpandPath(configured)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
