package domain

import (
	"strings"
	"time"
)

// GenerateRequest captures one CLI invocation.
type GenerateRequest struct {
	Prompt          string
	APIKey          string
	ModelOverride   string
	CopyToClipboard bool
	// Timeout overrides the configured request timeout when positive.
	Timeout time.Duration
	// OnStart, when set, runs after the key is resolved and the keyword is
	// recorded, right before the remote call.
	OnStart func(keyword string)
}

// GenerateResponse is the canonical response rendered by the CLI.
type GenerateResponse struct {
	Keyword        string
	Prompt         string
	NegativePrompt string
	RecentKeywords []string
	Model          string
	Copied         bool
	// CopyError explains why a requested clipboard copy did not happen.
	CopyError string
}

// NormalizeKeyword trims the keyword and rejects blank input.
func NormalizeKeyword(raw string) (string, error) {
	keyword := strings.TrimSpace(raw)
	if keyword == "" {
		return "", ErrEmptyInput
	}
	return keyword, nil
}
