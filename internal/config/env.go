package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables; nested endpoint structs use an underscore delimiter
// (e.g. OPENAI_COMPLETION_MODEL).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.codevault
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/codevault.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Completion configures the chat completion endpoint.
	Completion EndpointEnv `envconfig:"OPENAI_COMPLETION"`

	// Embedding configures the embedding endpoint.
	Embedding EndpointEnv `envconfig:"OPENAI_EMBEDDING"`

	// APIKey is a shared API key applied to both endpoints when the
	// per-endpoint keys are unset.
	// Env: OPENAI_API_KEY
	APIKey string `envconfig:"OPENAI_API_KEY"`

	// SearchLimit is the number of snippets retrieved for chat context.
	// Env: SEARCH_LIMIT (default: 3)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"3"`

	// EmbeddingTextBudget caps the snippet content characters sent for
	// embedding generation.
	// Env: EMBEDDING_TEXT_BUDGET (default: 8000)
	EmbeddingTextBudget int `envconfig:"EMBEDDING_TEXT_BUDGET" default:"8000"`
}

// EndpointEnv holds environment configuration for one AI endpoint.
type EndpointEnv struct {
	// BaseURL is the API base URL (e.g. https://api.openai.com/v1).
	// Env: *_BASE_URL
	BaseURL string `envconfig:"BASE_URL"`

	// Model is the model identifier.
	// Env: *_MODEL
	Model string `envconfig:"MODEL"`

	// APIKey is the API key for authentication.
	// Env: *_API_KEY
	APIKey string `envconfig:"API_KEY"`

	// Timeout is the request timeout in seconds.
	// Env: *_TIMEOUT (default: 60)
	Timeout float64 `envconfig:"TIMEOUT" default:"60"`

	// MaxRetries is the maximum number of retries.
	// Env: *_MAX_RETRIES (default: 3)
	MaxRetries int `envconfig:"MAX_RETRIES" default:"3"`

	// InitialDelay is the base retry delay in seconds.
	// Env: *_INITIAL_DELAY (default: 2.0)
	InitialDelay float64 `envconfig:"INITIAL_DELAY" default:"2.0"`

	// MaxTokens is the maximum output token bound for completions.
	// Env: *_MAX_TOKENS (default: 1500)
	MaxTokens int `envconfig:"MAX_TOKENS" default:"1500"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize fills derived defaults that envconfig cannot express.
func (e EnvConfig) Normalize() EnvConfig {
	if e.DataDir == "" {
		e.DataDir = defaultDataDir()
	}
	if e.DBURL == "" {
		e.DBURL = "sqlite:///" + filepath.Join(e.DataDir, "codevault.db")
	}
	if e.Completion.Model == "" {
		e.Completion.Model = DefaultCompletionModel
	}
	if e.Embedding.Model == "" {
		e.Embedding.Model = DefaultEmbeddingModel
	}
	if e.Completion.APIKey == "" {
		e.Completion.APIKey = e.APIKey
	}
	if e.Embedding.APIKey == "" {
		e.Embedding.APIKey = e.APIKey
	}
	return e
}

// ToAppConfig converts environment configuration to the resolved AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	format := LogFormatPretty
	if strings.EqualFold(e.LogFormat, string(LogFormatJSON)) {
		format = LogFormatJSON
	}

	return AppConfig{
		host:               e.Host,
		port:               e.Port,
		dataDir:            e.DataDir,
		dbURL:              e.DBURL,
		logLevel:           e.LogLevel,
		logFormat:          format,
		completionEndpoint: e.Completion.toEndpoint(),
		embeddingEndpoint:  e.Embedding.toEndpoint(),
		searchLimit:        e.SearchLimit,
		embeddingBudget:    e.EmbeddingTextBudget,
	}
}

func (ee EndpointEnv) toEndpoint() Endpoint {
	ep := NewEndpoint(ee.BaseURL, ee.Model, ee.APIKey)
	if ee.Timeout > 0 {
		ep = ep.WithTimeout(time.Duration(ee.Timeout * float64(time.Second)))
	}
	if ee.MaxRetries > 0 || ee.InitialDelay > 0 {
		delay := ep.initialDelay
		if ee.InitialDelay > 0 {
			delay = time.Duration(ee.InitialDelay * float64(time.Second))
		}
		retries := ep.maxRetries
		if ee.MaxRetries > 0 {
			retries = ee.MaxRetries
		}
		ep = ep.WithRetry(retries, delay)
	}
	if ee.MaxTokens > 0 {
		ep = ep.WithMaxTokens(ee.MaxTokens)
	}
	return ep
}
