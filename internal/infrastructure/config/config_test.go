package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3.1:8b", cfg.Ollama.Model)
	assert.Equal(t, 120*time.Second, cfg.Ollama.Timeout)
	assert.Equal(t, "./recipes.db", cfg.Database.Path)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Second, cfg.DedupWindow)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("OLLAMA_MODEL", "mistral:7b")
	t.Setenv("OLLAMA_BASE_URL", "http://ollama.internal:11434")
	t.Setenv("DB_PATH", "/var/data/recipes.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mistral:7b", cfg.Ollama.Model)
	assert.Equal(t, "http://ollama.internal:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "/var/data/recipes.db", cfg.Database.Path)
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server:   ServerConfig{Port: 3001},
		Ollama:   OllamaConfig{BaseURL: "http://localhost:11434", Model: "llama3.1:8b", Timeout: time.Minute},
		Database: DatabaseConfig{Path: "./recipes.db"},
	}
	assert.NoError(t, validateConfig(valid))

	noModel := *valid
	noModel.Ollama.Model = ""
	assert.Error(t, validateConfig(&noModel))

	noDB := *valid
	noDB.Database.Path = ""
	assert.Error(t, validateConfig(&noDB))

	badCache := *valid
	badCache.Cache = CacheConfig{Enabled: true}
	assert.Error(t, validateConfig(&badCache))
}
