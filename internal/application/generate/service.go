// Package generate runs one keyword through credential resolution, history,
// instruction composition and the text-generation provider.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// Service orchestrates the generation lifecycle end-to-end.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	Credentials     ports.CredentialResolver
	History         ports.HistoryStore
	ProviderFactory ports.ProviderFactory
	Clipboard       ports.Clipboard
	Logger          ports.Logger

	// Instruction is the static system instruction sent with every request.
	Instruction string
	// NegativePrompt is printed after the generated prompt.
	NegativePrompt string
}

// Run validates the keyword before touching any file, then resolves the
// API key, records the keyword and asks the provider for a prompt.
func (s *Service) Run(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResponse, error) {
	keyword, err := domain.NormalizeKeyword(req.Prompt)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	if s.ConfigProvider == nil || s.Credentials == nil || s.History == nil ||
		s.ProviderFactory == nil || s.Logger == nil {
		return domain.GenerateResponse{}, errors.New("generate.Service dependencies not satisfied")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.GenerateResponse{}, fmt.Errorf("load config: %w", err)
	}

	apiKey, err := s.Credentials.Resolve(req.APIKey)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	modelDef, err := cfg.PickModel(req.ModelOverride)
	if err != nil {
		return domain.GenerateResponse{}, err
	}

	provider, err := s.ProviderFactory.ForModel(modelDef)
	if err != nil {
		return domain.GenerateResponse{}, fmt.Errorf("provider init: %w", err)
	}

	window, err := s.History.AppendAndRecent(keyword, cfg.GetHistoryWindow())
	if err != nil {
		return domain.GenerateResponse{}, fmt.Errorf("record history: %w", err)
	}

	if req.OnStart != nil {
		req.OnStart(keyword)
	}

	s.Logger.Info("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    modelDef.ModelID,
		"window":   len(window),
	})

	timeout := cfg.GetTimeout()
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	aiResp, err := provider.Generate(ctx, ports.ProviderRequest{
		APIKey:            apiKey,
		SystemInstruction: ComposeInstruction(s.Instruction, window),
		UserMessage:       keyword,
	})
	if err != nil {
		return domain.GenerateResponse{}, &domain.RemoteCallError{Provider: provider.Name(), Err: err}
	}

	resp := domain.GenerateResponse{
		Keyword:        keyword,
		Prompt:         aiResp.Text,
		NegativePrompt: s.NegativePrompt,
		RecentKeywords: window,
		Model:          modelDef.Name,
	}

	if req.CopyToClipboard || cfg.Preferences.CopyToClipboard {
		s.copyPrompt(&resp)
	}

	return resp, nil
}

func (s *Service) copyPrompt(resp *domain.GenerateResponse) {
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		resp.CopyError = "clipboard is not available on this system"
		return
	}
	if err := s.Clipboard.Copy(resp.Prompt); err != nil {
		s.Logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		resp.CopyError = err.Error()
		return
	}
	resp.Copied = true
}
