// Package ai provides the provider factory and the text-generation adapters.
//
//   - gemini: Google's Gemini API through google.golang.org/genai (default)
//   - http: any chat-completion style endpoint, shaped by the model's APIFormat
package ai

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// Factory creates provider instances based on model definitions.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new provider factory with a configured HTTP client.
func NewFactory() *Factory {
	return NewFactoryWithClient(&http.Client{Timeout: domain.DefaultHTTPClientTimeout})
}

// NewFactoryWithClient lets callers (and tests) supply the HTTP client.
func NewFactoryWithClient(client *http.Client) *Factory {
	return &Factory{httpClient: client}
}

func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	switch kind := inferProviderKind(model); kind {
	case domain.ProviderKindGemini:
		return newGeminiProvider(model, f.httpClient), nil
	case domain.ProviderKindHTTP:
		if model.Endpoint == "" {
			return nil, fmt.Errorf("model %s: http provider requires an endpoint", model.Name)
		}
		return newHTTPProvider(model, f.httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported provider kind: %s", kind)
	}
}

func inferProviderKind(model domain.ModelDefinition) domain.ProviderKind {
	if model.Provider != "" {
		return domain.ProviderKind(strings.ToLower(string(model.Provider)))
	}
	switch {
	case model.Endpoint == "", strings.Contains(model.Endpoint, "generativelanguage.googleapis.com"):
		return domain.ProviderKindGemini
	default:
		return domain.ProviderKindHTTP
	}
}

var _ ports.ProviderFactory = (*Factory)(nil)
