package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

type geminiProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newGeminiProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &geminiProvider{model: model, httpClient: client}
}

func (p *geminiProvider) Name() string {
	return string(domain.ProviderKindGemini)
}

func (p *geminiProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *geminiProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	if req.APIKey == "" {
		return ports.ProviderResponse{}, errors.New("missing API key")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.model.Endpoint != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: p.model.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("create client: %w", err)
	}

	resp, err := client.Models.GenerateContent(ctx, p.modelID(), genai.Text(req.UserMessage), p.generateConfig(req))
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return ports.ProviderResponse{}, errors.New("empty response")
	}
	return ports.ProviderResponse{Text: text}, nil
}

func (p *geminiProvider) generateConfig(req ports.ProviderRequest) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if p.model.MaxTokens > 0 {
		config.MaxOutputTokens = int32(p.model.MaxTokens)
	}
	if p.model.Temperature != nil {
		temperature := float32(*p.model.Temperature)
		config.Temperature = &temperature
	}
	return config
}

func (p *geminiProvider) modelID() string {
	if p.model.ModelID == "" {
		return domain.DefaultModelID
	}
	return p.model.ModelID
}
