package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// FilePermissions is the permission for plain data files (rw-r--r--)
	FilePermissions = 0o644
)

// Storage defaults. Files live in os.TempDir() unless configured otherwise.
const (
	KeyFileName          = "key"
	HistoryFileName      = "prompt_history"
	HistoryDBName        = "prompt_history.db"
	DefaultCredentialEnv = "GENAI_API_KEY"

	HistoryBackendFile   = "file"
	HistoryBackendSQLite = "sqlite"
)

// History constants
const (
	// DefaultHistoryWindow is how many recent keywords are sent to the model
	DefaultHistoryWindow = 5
	// DefaultHistoryLimit is the default number of history entries to display
	DefaultHistoryLimit = 20
)

// Model configuration constants
const (
	DefaultModelName = "gemini-flash"
	DefaultModelID   = "gemini-2.0-flash"
	// DefaultRequestTimeout bounds a single generation call
	DefaultRequestTimeout = 60 * time.Second
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 90 * time.Second
)
