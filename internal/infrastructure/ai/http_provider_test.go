package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

func TestHTTPProviderInlineSystemMessage(t *testing.T) {
	var captured map[string]interface{}
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"  1girl, cat ears  "}}]}`)
	}))
	defer server.Close()

	provider := newHTTPProvider(domain.ModelDefinition{
		Name:     "local",
		Provider: domain.ProviderKindHTTP,
		Endpoint: server.URL,
		ModelID:  "gpt-4o-mini",
	}, server.Client())

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{
		APIKey:            "sk-test",
		SystemInstruction: "be an artist",
		UserMessage:       "the cat girl",
	})
	require.NoError(t, err)
	assert.Equal(t, "1girl, cat ears", resp.Text)
	assert.Equal(t, "Bearer sk-test", authHeader)

	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "the cat girl", messages[1].(map[string]interface{})["content"])
	assert.NotContains(t, captured, "system")
}

func TestHTTPProviderSeparateSystemAndCustomPath(t *testing.T) {
	var captured map[string]interface{}
	var keyHeader, versionHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keyHeader = r.Header.Get("x-api-key")
		versionHeader = r.Header.Get("anthropic-version")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"dragon, scales"}]}`)
	}))
	defer server.Close()

	provider := newHTTPProvider(domain.ModelDefinition{
		Name:      "claude",
		Provider:  domain.ProviderKindHTTP,
		Endpoint:  server.URL,
		ModelID:   "claude-haiku",
		MaxTokens: 512,
		APIFormat: domain.APIFormat{
			AuthHeaderName:    "x-api-key",
			SystemMessageMode: domain.SystemMessageModeSeparate,
			ResponseJSONPath:  domain.AnthropicResponsePath,
			ExtraHeaders:      map[string]string{"anthropic-version": "2023-06-01"},
		},
	}, server.Client())

	resp, err := provider.Generate(context.Background(), ports.ProviderRequest{
		APIKey:            "secret",
		SystemInstruction: "be an artist",
		UserMessage:       "dragon",
	})
	require.NoError(t, err)
	assert.Equal(t, "dragon, scales", resp.Text)
	assert.Equal(t, "secret", keyHeader)
	assert.Equal(t, "2023-06-01", versionHeader)
	assert.Equal(t, "be an artist", captured["system"])
	assert.EqualValues(t, 512, captured["max_tokens"])
	assert.Len(t, captured["messages"], 1)
}

func TestHTTPProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "api error message", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, wantErr: "HTTP 401: bad key"},
		{name: "plain status", status: http.StatusBadGateway, body: `oops`, wantErr: "HTTP 502"},
		{name: "missing path", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no content"},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"   "}}]}`, wantErr: "empty response"},
		{name: "invalid json", status: http.StatusOK, body: `not json`, wantErr: "not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			provider := newHTTPProvider(domain.ModelDefinition{
				Name:     "local",
				Provider: domain.ProviderKindHTTP,
				Endpoint: server.URL,
				ModelID:  "m",
			}, server.Client())

			_, err := provider.Generate(context.Background(), ports.ProviderRequest{UserMessage: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
