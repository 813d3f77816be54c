package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// httpProvider is a configuration-driven chat-completion client.
// All provider-specific behavior is controlled through the model's APIFormat.
type httpProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
}

func newHTTPProvider(model domain.ModelDefinition, client *http.Client) ports.Provider {
	return &httpProvider{
		model:      model,
		httpClient: client,
	}
}

func (p *httpProvider) Name() string {
	return string(domain.ProviderKindHTTP)
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	requestBody, err := p.buildRequestBody(req)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	p.setAuthHeaders(httpReq, req.APIKey)
	p.setExtraHeaders(httpReq)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return ports.ProviderResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, errorMessage(body, resp.Status))
	}

	content, err := p.parseResponse(body)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("parse response: %w", err)
	}
	return ports.ProviderResponse{Text: content}, nil
}

// buildRequestBody constructs the JSON request body based on the model's APIFormat configuration.
func (p *httpProvider) buildRequestBody(req ports.ProviderRequest) ([]byte, error) {
	format := p.model.APIFormat

	request := map[string]interface{}{
		"model": p.model.ModelID,
	}
	if p.model.MaxTokens > 0 {
		request["max_tokens"] = p.model.MaxTokens
	}
	if p.model.Temperature != nil {
		request["temperature"] = *p.model.Temperature
	}

	user := map[string]string{"role": "user", "content": req.UserMessage}
	if format.IsSystemMessageSeparate() {
		if req.SystemInstruction != "" {
			request["system"] = req.SystemInstruction
		}
		request["messages"] = []map[string]string{user}
	} else {
		messages := make([]map[string]string, 0, 2)
		if req.SystemInstruction != "" {
			messages = append(messages, map[string]string{"role": "system", "content": req.SystemInstruction})
		}
		request["messages"] = append(messages, user)
	}

	return json.Marshal(request)
}

// parseResponse extracts the reply using the configured gjson path.
func (p *httpProvider) parseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", errors.New("response is not valid JSON")
	}
	path := p.model.APIFormat.GetResponseJSONPath()
	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return "", fmt.Errorf("no content at %q", path)
	}
	content := strings.TrimSpace(result.String())
	if content == "" {
		return "", errors.New("empty response")
	}
	return content, nil
}

func (p *httpProvider) setAuthHeaders(req *http.Request, apiKey string) {
	if apiKey == "" {
		return
	}
	format := p.model.APIFormat
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+apiKey)
}

func (p *httpProvider) setExtraHeaders(req *http.Request) {
	for key, value := range p.model.APIFormat.ExtraHeaders {
		req.Header.Set(key, value)
	}
}

// errorMessage prefers the API's own error text over the bare status line.
func errorMessage(body []byte, status string) string {
	for _, path := range []string{"error.message", "error", "message"} {
		if result := gjson.GetBytes(body, path); result.Exists() && result.Type == gjson.String {
			return result.String()
		}
	}
	return status
}
