// Package credential resolves the API key and caches it on disk so later
// runs work without --key or the environment variable.
package credential

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// Source yields a credential candidate. found is false when the source has
// nothing usable; err is reserved for storage failures.
type Source interface {
	Name() string
	Lookup() (value string, found bool, err error)
}

// CacheFileSource reads a previously cached key. A missing or blank file is not found.
type CacheFileSource struct {
	Path string
}

func (s CacheFileSource) Name() string { return "cache" }

func (s CacheFileSource) Lookup() (string, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, &domain.StorageError{Op: "read", Path: s.Path, Err: err}
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// ExplicitSource is the --key flag value.
type ExplicitSource struct {
	Value string
}

func (s ExplicitSource) Name() string { return "argument" }

func (s ExplicitSource) Lookup() (string, bool, error) {
	if strings.TrimSpace(s.Value) == "" {
		return "", false, nil
	}
	return s.Value, true, nil
}

// EnvSource reads a named environment variable.
type EnvSource struct {
	Variable string
}

func (s EnvSource) Name() string { return "env:" + s.Variable }

func (s EnvSource) Lookup() (string, bool, error) {
	if s.Variable == "" {
		return "", false, nil
	}
	value, ok := os.LookupEnv(s.Variable)
	if !ok || strings.TrimSpace(value) == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Resolve returns the cached key when the cache file holds one. Otherwise it
// takes the explicit value or the environment variable, writes it raw to
// cachePath and returns it.
func Resolve(explicit, envVar, cachePath string) (string, error) {
	value, _, err := resolveFrom(explicit, envVar, cachePath)
	return value, err
}

func resolveFrom(explicit, envVar, cachePath string) (string, string, error) {
	value, found, err := CacheFileSource{Path: cachePath}.Lookup()
	if err != nil {
		return "", "", err
	}
	if found {
		return value, "cache", nil
	}

	fresh := []Source{
		ExplicitSource{Value: explicit},
		EnvSource{Variable: envVar},
	}
	for _, source := range fresh {
		value, found, err := source.Lookup()
		if err != nil {
			return "", "", err
		}
		if !found {
			continue
		}
		if err := writeCache(cachePath, value); err != nil {
			return "", "", err
		}
		return value, source.Name(), nil
	}

	return "", "", fmt.Errorf("%w: provide it with --key or set %s", domain.ErrMissingCredential, envVar)
}

func writeCache(path, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return &domain.StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, []byte(value), domain.SecureFilePermissions); err != nil {
		return &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Store binds Resolve to a fixed cache path and environment variable.
type Store struct {
	path   string
	envVar string
	logger ports.Logger
}

// NewStore builds a Store. logger may be nil.
func NewStore(path, envVar string, logger ports.Logger) *Store {
	return &Store{path: path, envVar: envVar, logger: logger}
}

// Resolve implements ports.CredentialResolver.
func (s *Store) Resolve(explicit string) (string, error) {
	value, source, err := resolveFrom(explicit, s.envVar, s.path)
	if err != nil {
		return "", err
	}
	if s.logger != nil {
		s.logger.Debug("credential resolved", map[string]interface{}{
			"source": source,
			"cache":  s.path,
		})
	}
	return value, nil
}

// Cached reports whether the cache file currently holds a usable key.
func (s *Store) Cached() (bool, error) {
	_, found, err := CacheFileSource{Path: s.path}.Lookup()
	return found, err
}

// EnvVar returns the environment variable consulted on a cache miss.
func (s *Store) EnvVar() string {
	return s.envVar
}

// Path returns the cache file path.
func (s *Store) Path() string {
	return s.path
}

// Clear removes the cached key.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.StorageError{Op: "remove", Path: s.path, Err: err}
	}
	return nil
}

var _ ports.CredentialResolver = (*Store)(nil)
