// Package domain defines core business entities and value objects for animeprompt.
//
// This file contains text-generation model and provider definitions. The domain
// layer is independent of infrastructure concerns.
package domain

// ProviderKind selects the adapter used to reach a model.
type ProviderKind string

const (
	ProviderKindGemini ProviderKind = "gemini"
	ProviderKindHTTP   ProviderKind = "http"
)

// ModelDefinition describes a text-generation endpoint declared in the config file.
type ModelDefinition struct {
	Name        string       `yaml:"name"`
	Provider    ProviderKind `yaml:"provider,omitempty"`
	Endpoint    string       `yaml:"endpoint,omitempty"`
	ModelID     string       `yaml:"model_id"`
	MaxTokens   int          `yaml:"max_tokens,omitempty"`
	Temperature *float64     `yaml:"temperature,omitempty"`
	APIFormat   APIFormat    `yaml:"api_format,omitempty"`
}

// APIFormat defines how the generic HTTP provider builds requests and reads
// responses. All fields are optional; zero values mean an OpenAI-compatible
// chat completion endpoint.
type APIFormat struct {
	// AuthHeaderName defaults to "Authorization".
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix defaults to "Bearer " unless AuthHeaderName is customized.
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// SystemMessageMode is "inline" (messages array) or "separate" (top-level "system" field).
	SystemMessageMode string `yaml:"system_message_mode,omitempty"`

	// ResponseJSONPath is a gjson path to the generated text.
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

const (
	DefaultAuthHeaderName   = "Authorization"
	DefaultAuthHeaderPrefix = "Bearer "

	SystemMessageModeInline   = "inline"
	SystemMessageModeSeparate = "separate"

	DefaultResponsePath   = "choices.0.message.content"
	AnthropicResponsePath = "content.0.text"
)

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix.
// An empty prefix is intentional when the header name is customized (e.g. "x-api-key").
func (f APIFormat) GetAuthHeaderPrefix() string {
	if f.AuthHeaderName != "" && f.AuthHeaderPrefix == "" {
		return ""
	}
	if f.AuthHeaderPrefix == "" {
		return DefaultAuthHeaderPrefix
	}
	return f.AuthHeaderPrefix
}

// GetResponseJSONPath returns the gjson path used to extract the reply.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath == "" {
		return DefaultResponsePath
	}
	return f.ResponseJSONPath
}

// IsSystemMessageSeparate returns true if system messages go in a separate field.
func (f APIFormat) IsSystemMessageSeparate() bool {
	return f.SystemMessageMode == SystemMessageModeSeparate
}
