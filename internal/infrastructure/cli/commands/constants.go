package commands

import "github.com/doeshing/animeprompt/internal/domain"

// CLI-specific constants
const (
	// DefaultHistoryLimit is how many keywords 'history list' prints.
	DefaultHistoryLimit = domain.DefaultHistoryLimit
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrCredentialStoreMissing   = "credential store unavailable"
	ErrImportNeedsSQLite        = "history import requires storage.history_backend: sqlite"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgHistoryCleared           = "History cleared."
	MsgKeyCleared               = "Cached API key removed."
	MsgCancelled                = "Cancelled."
	MsgNothingToImport          = "Nothing new to import from %s."
)
