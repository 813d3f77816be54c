package app

import (
	"context"
	"fmt"

	"github.com/doeshing/animeprompt/assets"
	"github.com/doeshing/animeprompt/internal/application/doctor"
	"github.com/doeshing/animeprompt/internal/application/generate"
	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/infrastructure/ai"
	"github.com/doeshing/animeprompt/internal/infrastructure/clipboard"
	"github.com/doeshing/animeprompt/internal/infrastructure/config"
	"github.com/doeshing/animeprompt/internal/infrastructure/credential"
	"github.com/doeshing/animeprompt/internal/infrastructure/history"
	"github.com/doeshing/animeprompt/internal/pkg/logger"
	"github.com/doeshing/animeprompt/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config          domain.Config
	GenerateService *generate.Service
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	DoctorService   *doctor.Service
	Credentials     *credential.Store
	HistoryStore    ports.HistoryStore
	ProviderFactory ports.ProviderFactory
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	log.Debug("config loaded", map[string]interface{}{
		"path":    cfgLoader.Path(),
		"model":   cfg.Preferences.DefaultModel,
		"history": cfg.GetHistoryBackend(),
	})

	historyStore, err := OpenHistory(cfg)
	if err != nil {
		return nil, err
	}

	credentials := credential.NewStore(cfg.Storage.KeyFile, cfg.GetCredentialEnv(), log)
	factory := ai.NewFactory()

	generateService := &generate.Service{
		ConfigProvider:  cfgLoader,
		Credentials:     credentials,
		History:         historyStore,
		ProviderFactory: factory,
		Clipboard:       clipboard.New(),
		Logger:          log,
		Instruction:     assets.SystemInstruction(),
		NegativePrompt:  assets.NegativePrompt(),
	}

	doctorService := &doctor.Service{
		ConfigProvider:  cfgLoader,
		Credentials:     credentials,
		History:         historyStore,
		ProviderFactory: factory,
	}

	return &Container{
		Config:          cfg,
		GenerateService: generateService,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		DoctorService:   doctorService,
		Credentials:     credentials,
		HistoryStore:    historyStore,
		ProviderFactory: factory,
		Logger:          log,
	}, nil
}

// OpenHistory returns the history backend selected by cfg.
func OpenHistory(cfg domain.Config) (ports.HistoryStore, error) {
	if cfg.UsesSQLiteHistory() {
		store, err := history.NewSQLiteStore(cfg.Storage.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("open history database: %w", err)
		}
		return store, nil
	}
	return history.NewFileStore(cfg.Storage.HistoryFile), nil
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c == nil || c.HistoryStore == nil {
		return nil
	}
	return c.HistoryStore.Close()
}
