package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "", cfg.DataDir)
	assert.Equal(t, "", cfg.DBURL)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "pretty", cfg.LogFormat)
	assert.Equal(t, 3, cfg.SearchLimit)
	assert.Equal(t, 8000, cfg.EmbeddingTextBudget)

	// Nested struct defaults
	assert.Equal(t, 60.0, cfg.Completion.Timeout)
	assert.Equal(t, 3, cfg.Completion.MaxRetries)
	assert.Equal(t, 2.0, cfg.Completion.InitialDelay)
	assert.Equal(t, 1500, cfg.Completion.MaxTokens)
	assert.Equal(t, 60.0, cfg.Embedding.Timeout)
}

func TestEnvDefaults_MatchConfigDefaults(t *testing.T) {
	// Struct tag defaults must be literals, so this test ensures they stay
	// in sync with the constants in config.go.
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultSearchLimit, cfg.SearchLimit)
	assert.Equal(t, DefaultEmbeddingTextBudget, cfg.EmbeddingTextBudget)
	assert.Equal(t, DefaultEndpointTimeout.Seconds(), cfg.Completion.Timeout)
	assert.Equal(t, DefaultEmbeddingMaxRetries, cfg.Completion.MaxRetries)
	assert.Equal(t, DefaultEmbeddingDelay.Seconds(), cfg.Completion.InitialDelay)
	assert.Equal(t, DefaultCompletionMaxTokens, cfg.Completion.MaxTokens)
}

func TestLoadFromEnv_OverrideValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", "/custom/data")
	t.Setenv("DB_URL", "postgres://localhost/codevault")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SEARCH_LIMIT", "5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/custom/data", cfg.DataDir)
	assert.Equal(t, "postgres://localhost/codevault", cfg.DBURL)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 5, cfg.SearchLimit)
}

func TestLoadFromEnv_Endpoints(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("OPENAI_COMPLETION_BASE_URL", "https://api.openai.com/v1")
	t.Setenv("OPENAI_COMPLETION_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_COMPLETION_API_KEY", "sk-completion")
	t.Setenv("OPENAI_COMPLETION_MAX_TOKENS", "2000")
	t.Setenv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	t.Setenv("OPENAI_EMBEDDING_API_KEY", "sk-embedding")
	t.Setenv("OPENAI_EMBEDDING_TIMEOUT", "120")
	t.Setenv("OPENAI_EMBEDDING_MAX_RETRIES", "5")
	t.Setenv("OPENAI_EMBEDDING_INITIAL_DELAY", "1.5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com/v1", cfg.Completion.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Completion.Model)
	assert.Equal(t, "sk-completion", cfg.Completion.APIKey)
	assert.Equal(t, 2000, cfg.Completion.MaxTokens)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "sk-embedding", cfg.Embedding.APIKey)
	assert.Equal(t, 120.0, cfg.Embedding.Timeout)
	assert.Equal(t, 5, cfg.Embedding.MaxRetries)
	assert.Equal(t, 1.5, cfg.Embedding.InitialDelay)
}

func TestNormalize_DerivedDefaults(t *testing.T) {
	clearEnvVars(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	norm := cfg.Normalize()

	assert.NotEmpty(t, norm.DataDir)
	assert.True(t, strings.HasPrefix(norm.DBURL, "sqlite:///"))
	assert.True(t, strings.HasSuffix(norm.DBURL, "codevault.db"))
	assert.Equal(t, DefaultCompletionModel, norm.Completion.Model)
	assert.Equal(t, DefaultEmbeddingModel, norm.Embedding.Model)
}

func TestNormalize_SharedAPIKey(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("OPENAI_API_KEY", "sk-shared")
	t.Setenv("OPENAI_EMBEDDING_API_KEY", "sk-embedding")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	norm := cfg.Normalize()

	// Shared key fills unset endpoint keys only.
	assert.Equal(t, "sk-shared", norm.Completion.APIKey)
	assert.Equal(t, "sk-embedding", norm.Embedding.APIKey)
}

func TestToAppConfig(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("HOST", "localhost")
	t.Setenv("PORT", "3000")
	t.Setenv("DATA_DIR", "/data/codevault")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_EMBEDDING_INITIAL_DELAY", "0.5")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	app := cfg.Normalize().ToAppConfig()

	assert.Equal(t, "localhost:3000", app.Addr())
	assert.Equal(t, "/data/codevault", app.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join("/data/codevault", "codevault.db"), app.DBURL())
	assert.Equal(t, LogFormatJSON, app.LogFormat())
	assert.Equal(t, "sk-test", app.CompletionEndpoint().APIKey())
	assert.True(t, app.CompletionEndpoint().Configured())
	assert.Equal(t, 500*time.Millisecond, app.EmbeddingEndpoint().InitialDelay())
	assert.Equal(t, DefaultSearchLimit, app.SearchLimit())
	assert.Equal(t, DefaultEmbeddingTextBudget, app.EmbeddingBudget())
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `DATA_DIR=/from/dotenv
LOG_LEVEL=DEBUG
OPENAI_API_KEY=sk-dotenv
`
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	clearEnvVars(t)

	err = LoadDotEnv(envFile)
	require.NoError(t, err)

	assert.Equal(t, "/from/dotenv", os.Getenv("DATA_DIR"))
	assert.Equal(t, "DEBUG", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "sk-dotenv", os.Getenv("OPENAI_API_KEY"))
}

func TestLoadDotEnv_NonExistent(t *testing.T) {
	clearEnvVars(t)

	err := LoadDotEnv("/nonexistent/.env")
	assert.NoError(t, err)
}

func TestMustLoadDotEnv_NonExistent(t *testing.T) {
	clearEnvVars(t)

	err := MustLoadDotEnv("/nonexistent/.env")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	envFile := filepath.Join(tmpDir, ".env")
	content := `DATA_DIR=/config/data
LOG_LEVEL=WARN
OPENAI_EMBEDDING_MODEL=test-embedding
`
	err := os.WriteFile(envFile, []byte(content), 0o644)
	require.NoError(t, err)

	clearEnvVars(t)

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)

	assert.Equal(t, "/config/data", cfg.DataDir())
	assert.Equal(t, "WARN", cfg.LogLevel())
	assert.Equal(t, "test-embedding", cfg.EmbeddingEndpoint().Model())
}

func clearEnvVars(t *testing.T) {
	t.Helper()

	vars := []string{
		"HOST",
		"PORT",
		"DATA_DIR",
		"DB_URL",
		"LOG_LEVEL",
		"LOG_FORMAT",
		"SEARCH_LIMIT",
		"EMBEDDING_TEXT_BUDGET",
		"OPENAI_API_KEY",
		"OPENAI_COMPLETION_BASE_URL",
		"OPENAI_COMPLETION_MODEL",
		"OPENAI_COMPLETION_API_KEY",
		"OPENAI_COMPLETION_TIMEOUT",
		"OPENAI_COMPLETION_MAX_RETRIES",
		"OPENAI_COMPLETION_INITIAL_DELAY",
		"OPENAI_COMPLETION_MAX_TOKENS",
		"OPENAI_EMBEDDING_BASE_URL",
		"OPENAI_EMBEDDING_MODEL",
		"OPENAI_EMBEDDING_API_KEY",
		"OPENAI_EMBEDDING_TIMEOUT",
		"OPENAI_EMBEDDING_MAX_RETRIES",
		"OPENAI_EMBEDDING_INITIAL_DELAY",
		"OPENAI_EMBEDDING_MAX_TOKENS",
	}

	for _, v := range vars {
		_ = os.Unsetenv(v)
	}
}
