package commands

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/animeprompt/internal/app"
	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/infrastructure/ai"
	configinfra "github.com/doeshing/animeprompt/internal/infrastructure/config"
	"github.com/doeshing/animeprompt/internal/infrastructure/credential"
	"github.com/doeshing/animeprompt/internal/infrastructure/history"
)

type staticConfig struct {
	cfg domain.Config
}

func (s staticConfig) Load(context.Context) (domain.Config, error) {
	return s.cfg, nil
}

func testContainer(t *testing.T) *app.Container {
	t.Helper()
	dir := t.TempDir()
	cfg := domain.Config{
		ConfigFormatVersion: "1",
		Preferences:         domain.Preferences{DefaultModel: "flash", HistoryWindow: 5},
		Storage: domain.StorageSettings{
			KeyFile:        filepath.Join(dir, "key"),
			HistoryFile:    filepath.Join(dir, "prompt_history"),
			HistoryDB:      filepath.Join(dir, "prompt_history.db"),
			HistoryBackend: domain.HistoryBackendFile,
			CredentialEnv:  "ANIMEPROMPT_TEST_KEY",
		},
		Models: []domain.ModelDefinition{{Name: "flash", Provider: domain.ProviderKindGemini, ModelID: "gemini-2.0-flash"}},
	}
	return &app.Container{
		Config:         cfg,
		ConfigProvider: staticConfig{cfg: cfg},
		HistoryStore:   history.NewFileStore(cfg.Storage.HistoryFile),
		Credentials:    credential.NewStore(cfg.Storage.KeyFile, cfg.Storage.CredentialEnv, nil),
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestHistoryListAndClear(t *testing.T) {
	container := testContainer(t)
	for _, kw := range []string{"the cat girl", "space pirate", "dragon"} {
		_, err := container.HistoryStore.AppendAndRecent(kw, 5)
		require.NoError(t, err)
	}

	out, err := execute(t, NewHistoryCommand(app.Preloaded(container)), "list", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "space pirate\ndragon\n", out)

	out, err = execute(t, NewHistoryCommand(app.Preloaded(container)), "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, MsgHistoryCleared)

	out, err = execute(t, NewHistoryCommand(app.Preloaded(container)), "list")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoHistoryRecorded)
}

func TestHistoryPath(t *testing.T) {
	container := testContainer(t)
	out, err := execute(t, NewHistoryCommand(app.Preloaded(container)), "path")
	require.NoError(t, err)
	assert.Equal(t, container.Config.Storage.HistoryFile, strings.TrimSpace(out))
}

func TestHistoryImportRequiresSQLite(t *testing.T) {
	container := testContainer(t)
	_, err := execute(t, NewHistoryCommand(app.Preloaded(container)), "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrImportNeedsSQLite)
}

func TestHistoryImportIntoSQLite(t *testing.T) {
	container := testContainer(t)
	source := history.NewFileStore(container.Config.Storage.HistoryFile)
	_, err := source.AppendAndRecent("knight", 5)
	require.NoError(t, err)

	store, err := history.NewSQLiteStore(container.Config.Storage.HistoryDB)
	require.NoError(t, err)
	container.HistoryStore = store

	out, err := execute(t, NewHistoryCommand(app.Preloaded(container)), "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 keyword(s)")

	reopened, err := history.NewSQLiteStore(container.Config.Storage.HistoryDB)
	require.NoError(t, err)
	defer reopened.Close()
	entries, err := reopened.Entries(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"knight"}, entries)
}

func TestKeyPathAndClear(t *testing.T) {
	container := testContainer(t)
	keyPath := container.Config.Storage.KeyFile
	require.NoError(t, os.WriteFile(keyPath, []byte("cached"), 0o600))

	out, err := execute(t, NewKeyCommand(app.Preloaded(container)), "path")
	require.NoError(t, err)
	assert.Equal(t, keyPath, strings.TrimSpace(out))

	out, err = execute(t, NewKeyCommand(app.Preloaded(container)), "clear", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, MsgKeyCleared)
	assert.NoFileExists(t, keyPath)
}

func TestConfigGet(t *testing.T) {
	container := testContainer(t)

	out, err := execute(t, NewConfigCommand(app.Preloaded(container)), "get", "preferences.default_model")
	require.NoError(t, err)
	assert.Equal(t, "flash", strings.TrimSpace(out))

	_, err = execute(t, NewConfigCommand(app.Preloaded(container)), "get", "preferences.nope")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	container := testContainer(t)
	out, err := execute(t, NewConfigCommand(app.Preloaded(container)), "validate")
	require.NoError(t, err)
	assert.Contains(t, out, MsgConfigurationValid)
}

func TestDisplayDoctorReport(t *testing.T) {
	var out bytes.Buffer
	report := domain.HealthReport{Checks: []domain.HealthCheck{
		{Name: "Config file", Status: domain.HealthOK, Details: "format 1"},
		{Name: "API key", Status: domain.HealthWarn, Details: "not cached"},
	}}
	displayDoctorReport(&out, report)
	assert.Equal(t, "[OK] Config file - format 1\n[WARN] API key - not cached\n", out.String())
	assert.Zero(t, report.Failures())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Contains(t, out, "animeprompt version")
}

func TestHistoryClearDeclined(t *testing.T) {
	container := testContainer(t)
	_, err := container.HistoryStore.AppendAndRecent("dragon", 5)
	require.NoError(t, err)

	cmd := NewHistoryCommand(app.Preloaded(container))
	cmd.SetIn(strings.NewReader("n\n"))
	out, err := execute(t, cmd, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Clear all recorded keywords? [y/N]: ")
	assert.Contains(t, out, MsgCancelled)

	entries, err := container.HistoryStore.Entries(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"dragon"}, entries)
}

func TestPrompterConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "no\n", want: false},
		{input: "", want: false},
		{input: "yes", want: true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := NewPrompter(strings.NewReader(tt.input), &out).Confirm("Proceed?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Proceed? [y/N]: ", out.String())
	}
}

func TestModelsListAndUse(t *testing.T) {
	loader := configinfra.NewFileLoader(filepath.Join(t.TempDir(), "config.yaml"))
	container := testContainer(t)
	container.ConfigProvider = loader
	container.ConfigLoader = loader

	out, err := execute(t, NewModelsCommand(app.Preloaded(container)), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "gemini-flash")
	assert.Contains(t, out, "ollama")

	out, err = execute(t, NewModelsCommand(app.Preloaded(container)), "use", "ollama")
	require.NoError(t, err)
	assert.Contains(t, out, "Default model set to ollama")

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Preferences.DefaultModel)

	_, err = execute(t, NewModelsCommand(app.Preloaded(container)), "use", "missing")
	assert.Error(t, err)
}

func TestModelsTest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"choices":[{"message":{"content":"pong"}}]}`)
	}))
	defer server.Close()

	container := testContainer(t)
	container.Config.Models = append(container.Config.Models, domain.ModelDefinition{
		Name:     "local",
		Provider: domain.ProviderKindHTTP,
		Endpoint: server.URL,
		ModelID:  "m",
	})
	container.ConfigProvider = staticConfig{cfg: container.Config}
	container.ProviderFactory = ai.NewFactoryWithClient(server.Client())
	require.NoError(t, os.WriteFile(container.Config.Storage.KeyFile, []byte("cached"), 0o600))

	out, err := execute(t, NewModelsCommand(app.Preloaded(container)), "test", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "Model local responded")
}

func TestHistoryImportFromPathOnce(t *testing.T) {
	container := testContainer(t)
	other := filepath.Join(t.TempDir(), "old_history")
	require.NoError(t, os.WriteFile(other, []byte("samurai\nmecha\n"), 0o644))

	dbPath := container.Config.Storage.HistoryDB
	open := func() {
		store, err := history.NewSQLiteStore(dbPath)
		require.NoError(t, err)
		container.HistoryStore = store
	}

	open()
	out, err := execute(t, NewHistoryCommand(app.Preloaded(container)), "import", "--from", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 keyword(s) from "+other)

	open()
	out, err = execute(t, NewHistoryCommand(app.Preloaded(container)), "import", "--from", other)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing new to import from "+other)

	reopened, err := history.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()
	entries, err := reopened.Entries(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"samurai", "mecha"}, entries)
}
