package history

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// FileStore keeps one keyword per line in a plain text file.
//
// Appends rewrite the whole file (read, append, write back). Two processes
// appending at once can lose an entry.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// AppendAndRecent implements ports.HistoryStore.
func (f *FileStore) AppendAndRecent(entry string, window int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.read()
	if err != nil {
		return nil, err
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"

	if err := f.write(content); err != nil {
		return nil, err
	}
	return tail(splitEntries(content), window), nil
}

// Entries returns the last limit keywords, oldest first.
func (f *FileStore) Entries(limit int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	content, err := f.read()
	if err != nil {
		return nil, err
	}
	return tail(splitEntries(content), limit), nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &domain.StorageError{Op: "remove", Path: f.path, Err: err}
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Close is a no-op; the file is opened per call.
func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", &domain.StorageError{Op: "read", Path: f.path, Err: err}
	}
	return string(data), nil
}

func (f *FileStore) write(content string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), domain.DirectoryPermissions); err != nil {
		return &domain.StorageError{Op: "mkdir", Path: filepath.Dir(f.path), Err: err}
	}
	if err := os.WriteFile(f.path, []byte(content), domain.FilePermissions); err != nil {
		return &domain.StorageError{Op: "write", Path: f.path, Err: err}
	}
	return nil
}

// splitEntries splits content into lines and drops blank ones, so a trailing
// newline or a hand-edited empty line never becomes an entry.
func splitEntries(content string) []string {
	var entries []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// tail returns the last n entries in their original order; n <= 0 keeps all.
func tail(entries []string, n int) []string {
	if n <= 0 || len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

var _ ports.HistoryStore = (*FileStore)(nil)
