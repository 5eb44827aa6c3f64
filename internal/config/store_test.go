package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MissingFileWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)

	cfg := store.Load()
	assert.Equal(t, Default(), cfg)

	// The defaults landed on disk.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "model: llama3.2")
}

func TestStore_CorruptFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))

	cfg := NewStore(path).Load()
	assert.Equal(t, Default(), cfg)
}

func TestStore_SparseFileIsNormalized(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: mistral\n"), 0o644))

	cfg := NewStore(path).Load()
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, Default().Rules, cfg.Rules)
	assert.Equal(t, Default().MaxSearchAttempts, cfg.MaxSearchAttempts)
	assert.Equal(t, Default().HistoryCap, cfg.HistoryCap)
}

func TestStore_ExternalEditReloads(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)

	first := store.Load()
	require.Equal(t, "llama3.2", first.Model)

	require.NoError(t, os.WriteFile(path, []byte("model: mistral\n"), 0o644))
	// Force a visibly newer modification time; some filesystems have
	// coarse mtime resolution.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	second := store.Load()
	assert.Equal(t, "mistral", second.Model)
}

func TestStore_UnchangedFileServedFromCache(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)
	first := store.Load()

	// Same mtime, so the second load must not re-read the file. Corrupt
	// the file in place to prove the cache was used.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime(), info.ModTime()))

	second := store.Load()
	assert.Equal(t, first, second)
}

func TestStore_SaveRoundtrip(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "nested", "config.yaml"))

	cfg := Default()
	cfg.Model = "qwen2.5"
	cfg.MaxSearchAttempts = 4
	require.NoError(t, store.Save(cfg))

	loaded := store.Load()
	assert.Equal(t, "qwen2.5", loaded.Model)
	assert.Equal(t, 4, loaded.MaxSearchAttempts)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	cfg := Config{Temperature: 5, MaxTokens: -1, HistoryCap: 2}
	cfg.Normalize()

	defaults := Default()
	assert.Equal(t, defaults.Model, cfg.Model)
	assert.Equal(t, defaults.Temperature, cfg.Temperature)
	assert.Equal(t, defaults.MaxTokens, cfg.MaxTokens)
	assert.Equal(t, defaults.HistoryCap, cfg.HistoryCap)
}

func TestNewRuntimeFromEnv(t *testing.T) {
	t.Setenv("JARVIS_DATA_DIR", "/tmp/jarvis-test")
	t.Setenv("LLM_TIMEOUT", "30")
	t.Setenv("SEARCH_MAX_RETRIES", "not-a-number")
	t.Setenv("LISTEN_ADDR", ":8099")

	runtime := NewRuntimeFromEnv()
	assert.Equal(t, "/tmp/jarvis-test", runtime.DataDir)
	assert.Equal(t, 30, runtime.LLMTimeout)
	assert.Equal(t, 3, runtime.SearchMaxRetries)
	assert.Equal(t, ":8099", runtime.ListenAddr)
	assert.Equal(t, "http://localhost:11434/v1", runtime.LLMAPIURL)
}
