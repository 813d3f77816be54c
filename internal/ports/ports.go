// Package ports defines the interfaces (ports) between the application core
// and its adapters.
//
// The application layer depends only on these abstractions; concrete
// implementations (YAML config, temp-file stores, Gemini and HTTP providers,
// the system clipboard) live under internal/infrastructure.
package ports

import (
	"context"

	"github.com/doeshing/animeprompt/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.animeprompt/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CredentialResolver returns the API key, preferring a cached value over
// the explicit one and the environment.
type CredentialResolver interface {
	Resolve(explicit string) (string, error)
	Path() string
	Clear() error
}

// HistoryStore is the append-only keyword log.
type HistoryStore interface {
	// AppendAndRecent appends entry and returns at most window entries,
	// oldest first, ending with entry.
	AppendAndRecent(entry string, window int) ([]string, error)
	// Entries returns the last limit entries (all when limit <= 0).
	Entries(limit int) ([]string, error)
	Clear() error
	Path() string
	Close() error
}

// ProviderFactory builds provider instances based on model definitions.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider is the external text-generation collaborator.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest carries the composed instruction and the user's keyword.
type ProviderRequest struct {
	APIKey            string
	SystemInstruction string
	UserMessage       string
}

// ProviderResponse contains the generated text.
type ProviderResponse struct {
	Text string
}

// Clipboard provides cross-platform clipboard integration.
type Clipboard interface {
	Copy(text string) error
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
