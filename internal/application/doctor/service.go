package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	appconfig "github.com/doeshing/animeprompt/internal/application/config"
	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/ports"
)

// CredentialInspector exposes the read-only view of the key cache that
// diagnostics need.
type CredentialInspector interface {
	Cached() (bool, error)
	EnvVar() string
	Path() string
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider  ports.ConfigProvider
	Credentials     CredentialInspector
	History         ports.HistoryStore
	ProviderFactory ports.ProviderFactory
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format %s, %d model(s)", cfg.ConfigFormatVersion, len(cfg.Models))))
	}

	checks = append(checks, s.modelCheck(cfg))
	checks = append(checks, s.credentialCheck())
	checks = append(checks, s.historyCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) modelCheck(cfg domain.Config) domain.HealthCheck {
	model, err := cfg.GetDefaultModel()
	if err != nil {
		return fail("Model", err.Error())
	}
	if s.ProviderFactory == nil {
		return warn("Model", "provider factory not initialized")
	}
	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return fail("Model", err.Error())
	}
	return ok("Model", fmt.Sprintf("%s via %s (%s)", model.Name, provider.Name(), model.ModelID))
}

func (s *Service) credentialCheck() domain.HealthCheck {
	if s.Credentials == nil {
		return warn("API key", "credential store not initialized")
	}
	cached, err := s.Credentials.Cached()
	if err != nil {
		return fail("API key", err.Error())
	}
	if cached {
		return ok("API key", fmt.Sprintf("cached at %s", s.Credentials.Path()))
	}
	if envVar := s.Credentials.EnvVar(); strings.TrimSpace(os.Getenv(envVar)) != "" {
		return ok("API key", fmt.Sprintf("%s set, will be cached on first run", envVar))
	}
	return warn("API key", fmt.Sprintf("not cached; pass --key or set %s", s.Credentials.EnvVar()))
}

func (s *Service) historyCheck(cfg domain.Config) domain.HealthCheck {
	if s.History == nil {
		return warn("History", "history store not initialized")
	}
	entries, err := s.History.Entries(0)
	if err != nil {
		return fail("History", err.Error())
	}
	return ok("History", fmt.Sprintf("%s backend, %d keyword(s) at %s", cfg.GetHistoryBackend(), len(entries), s.History.Path()))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
