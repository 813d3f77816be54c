package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// SQLiteStore persists keywords in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.StorageError{Op: "open", Path: path, Err: err}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, &domain.StorageError{Op: "init", Path: path, Err: err}
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS keywords (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			keyword TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS imports (
			source TEXT PRIMARY KEY,
			imported_at TEXT NOT NULL
		);`,
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AppendAndRecent implements ports.HistoryStore.
func (s *SQLiteStore) AppendAndRecent(entry string, window int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(entry) != "" {
		_, err := s.db.Exec(`INSERT INTO keywords (created_at, keyword) VALUES (?, ?)`,
			time.Now().UTC().Format(time.RFC3339Nano), entry)
		if err != nil {
			return nil, &domain.StorageError{Op: "insert", Path: s.path, Err: err}
		}
	}
	return s.recent(window)
}

// Entries returns the last limit keywords, oldest first.
func (s *SQLiteStore) Entries(limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent(limit)
}

func (s *SQLiteStore) recent(limit int) ([]string, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT keyword FROM keywords ORDER BY id DESC")
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, &domain.StorageError{Op: "query", Path: s.path, Err: err}
	}
	defer rows.Close()

	var newestFirst []string
	for rows.Next() {
		var keyword string
		if err := rows.Scan(&keyword); err != nil {
			return nil, &domain.StorageError{Op: "scan", Path: s.path, Err: err}
		}
		newestFirst = append(newestFirst, keyword)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "query", Path: s.path, Err: err}
	}

	entries := make([]string, 0, len(newestFirst))
	for i := len(newestFirst) - 1; i >= 0; i-- {
		entries = append(entries, newestFirst[i])
	}
	return entries, nil
}

// Clear deletes all keywords.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, table := range []string{"keywords", "imports"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return &domain.StorageError{Op: "delete", Path: s.path, Err: err}
		}
	}
	return nil
}

// ImportFile copies every keyword of a plain text history into the database.
// Imported keywords sort before the rows already stored, so the next window
// still ends with the most recent SQLite entries. A source that was already
// imported adds nothing.
func (s *SQLiteStore) ImportFile(source *FileStore) (int, error) {
	entries, err := source.Entries(0)
	if err != nil {
		return 0, err
	}
	key := source.Path()
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, &domain.StorageError{Op: "begin", Path: s.path, Err: err}
	}
	fail := func(op string, err error) (int, error) {
		_ = tx.Rollback()
		return 0, &domain.StorageError{Op: op, Path: s.path, Err: fmt.Errorf("import %s: %w", source.Path(), err)}
	}

	var seen int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM imports WHERE source = ?`, key).Scan(&seen); err != nil {
		return fail("query", err)
	}
	if seen > 0 {
		_ = tx.Rollback()
		return 0, nil
	}

	var first int64
	if err := tx.QueryRow(`SELECT COALESCE(MIN(id), 1) FROM keywords`).Scan(&first); err != nil {
		return fail("query", err)
	}
	start := first - int64(len(entries))
	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, entry := range entries {
		if _, err := tx.Exec(`INSERT INTO keywords (id, created_at, keyword) VALUES (?, ?, ?)`,
			start+int64(i), now, entry); err != nil {
			return fail("insert", err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO imports (source, imported_at) VALUES (?, ?)`, key, now); err != nil {
		return fail("insert", err)
	}
	if err := tx.Commit(); err != nil {
		return fail("commit", err)
	}
	return len(entries), nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
