package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential means no API key was found in the cache file,
	// the --key argument or the environment.
	ErrMissingCredential = errors.New("API key not found")
	// ErrEmptyInput means the keyword was absent or blank.
	ErrEmptyInput = errors.New("prompt must not be empty")
)

// StorageError reports a failed read or write on one of the local state files.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// RemoteCallError wraps any failure returned by the text-generation provider.
type RemoteCallError struct {
	Provider string
	Err      error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s generate: %v", e.Provider, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
