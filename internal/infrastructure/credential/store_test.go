package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doeshing/animeprompt/internal/domain"
)

const testEnv = "ANIMEPROMPT_TEST_API_KEY"

func TestResolveWritesExplicitValueToCache(t *testing.T) {
	t.Setenv(testEnv, "")
	for _, key := range []string{"abc123", " padded-key\n", "k"} {
		path := filepath.Join(t.TempDir(), "key")

		got, err := Resolve(key, testEnv, path)
		require.NoError(t, err)
		require.Equal(t, key, got)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, key, string(data), "cache must hold the raw value")
	}
}

func TestResolveFallsBackToEnvironment(t *testing.T) {
	t.Setenv(testEnv, "from-env")
	path := filepath.Join(t.TempDir(), "key")

	got, err := Resolve("", testEnv, path)
	require.NoError(t, err)
	require.Equal(t, "from-env", got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", string(data))
}

func TestResolveExplicitBeatsEnvironment(t *testing.T) {
	t.Setenv(testEnv, "from-env")
	path := filepath.Join(t.TempDir(), "key")

	got, err := Resolve("from-flag", testEnv, path)
	require.NoError(t, err)
	require.Equal(t, "from-flag", got)
}

func TestResolveCacheWinsOverArgumentAndEnvironment(t *testing.T) {
	t.Setenv(testEnv, "from-env")
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  cached-key\n"), 0o600))

	got, err := Resolve("from-flag", testEnv, path)
	require.NoError(t, err)
	require.Equal(t, "cached-key", got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "  cached-key\n", string(data), "cache file must be untouched")
}

func TestResolveTreatsBlankCacheAsAbsent(t *testing.T) {
	for _, contents := range []string{"", "   ", "\n\t \n"} {
		t.Run(fmt.Sprintf("%q", contents), func(t *testing.T) {
			t.Setenv(testEnv, "")
			path := filepath.Join(t.TempDir(), "key")
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

			got, err := Resolve("fresh", testEnv, path)
			require.NoError(t, err)
			require.Equal(t, "fresh", got)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			require.Equal(t, "fresh", string(data))

			_, err = Resolve("", testEnv, filepath.Join(t.TempDir(), "missing"))
			require.ErrorIs(t, err, domain.ErrMissingCredential)
		})
	}
}

func TestResolveIsIdempotentWithCachedValue(t *testing.T) {
	t.Setenv(testEnv, "")
	path := filepath.Join(t.TempDir(), "key")

	first, err := Resolve("stable", testEnv, path)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	second, err := Resolve("", testEnv, path)
	require.NoError(t, err)
	after, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, before, after)
}

func TestResolveMissingCredential(t *testing.T) {
	t.Setenv(testEnv, "   ")
	path := filepath.Join(t.TempDir(), "key")

	_, err := Resolve("", testEnv, path)
	require.ErrorIs(t, err, domain.ErrMissingCredential)
	require.Contains(t, err.Error(), testEnv)

	_, statErr := os.Stat(path)
	require.True(t, errors.Is(statErr, os.ErrNotExist), "no cache file expected on failure")
}

func TestResolveReportsStorageError(t *testing.T) {
	t.Setenv(testEnv, "")
	// A directory in place of the cache file cannot be read as a file.
	path := t.TempDir()

	_, err := Resolve("value", testEnv, path)
	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, path, storageErr.Path)
}

func TestStoreClear(t *testing.T) {
	t.Setenv(testEnv, "")
	path := filepath.Join(t.TempDir(), "nested", "key")
	store := NewStore(path, testEnv, nil)

	got, err := store.Resolve("secret")
	require.NoError(t, err)
	require.Equal(t, "secret", got)

	cached, err := store.Cached()
	require.NoError(t, err)
	require.True(t, cached)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear(), "clearing twice is not an error")

	cached, err = store.Cached()
	require.NoError(t, err)
	require.False(t, cached)
}
