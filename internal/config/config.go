// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost                 = "0.0.0.0"
	DefaultPort                 = 8080
	DefaultLogLevel             = "INFO"
	DefaultSearchLimit          = 3
	DefaultCompletionModel      = "gpt-4o"
	DefaultEmbeddingModel       = "text-embedding-ada-002"
	DefaultCompletionMaxTokens  = 1500
	DefaultEmbeddingMaxRetries  = 3
	DefaultEmbeddingDelay       = 2 * time.Second
	DefaultEndpointTimeout      = 60 * time.Second
	DefaultEmbeddingTextBudget  = 8000
	DefaultCodeTemperature      = 0.2
	DefaultGeneralTemperature   = 0.7
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Endpoint configures an AI service endpoint.
type Endpoint struct {
	baseURL      string
	model        string
	apiKey       string
	timeout      time.Duration
	maxRetries   int
	initialDelay time.Duration
	maxTokens    int
}

// NewEndpoint creates an Endpoint with defaults applied for zero values.
func NewEndpoint(baseURL, model, apiKey string) Endpoint {
	return Endpoint{
		baseURL:      baseURL,
		model:        model,
		apiKey:       apiKey,
		timeout:      DefaultEndpointTimeout,
		maxRetries:   DefaultEmbeddingMaxRetries,
		initialDelay: DefaultEmbeddingDelay,
		maxTokens:    DefaultCompletionMaxTokens,
	}
}

// BaseURL returns the endpoint base URL.
func (e Endpoint) BaseURL() string { return e.baseURL }

// Model returns the model identifier.
func (e Endpoint) Model() string { return e.model }

// APIKey returns the API key.
func (e Endpoint) APIKey() string { return e.apiKey }

// Timeout returns the request timeout.
func (e Endpoint) Timeout() time.Duration { return e.timeout }

// MaxRetries returns the maximum retry count.
func (e Endpoint) MaxRetries() int { return e.maxRetries }

// InitialDelay returns the initial retry delay.
func (e Endpoint) InitialDelay() time.Duration { return e.initialDelay }

// MaxTokens returns the maximum output token bound.
func (e Endpoint) MaxTokens() int { return e.maxTokens }

// WithTimeout returns a copy with the given timeout.
func (e Endpoint) WithTimeout(d time.Duration) Endpoint {
	e.timeout = d
	return e
}

// WithRetry returns a copy with the given retry parameters.
func (e Endpoint) WithRetry(maxRetries int, initialDelay time.Duration) Endpoint {
	e.maxRetries = maxRetries
	e.initialDelay = initialDelay
	return e
}

// WithMaxTokens returns a copy with the given max token bound.
func (e Endpoint) WithMaxTokens(n int) Endpoint {
	e.maxTokens = n
	return e
}

// Configured reports whether the endpoint has enough configuration to be used.
func (e Endpoint) Configured() bool {
	return e.apiKey != "" || e.baseURL != ""
}

// AppConfig is the resolved application configuration.
type AppConfig struct {
	host               string
	port               int
	dataDir            string
	dbURL              string
	logLevel           string
	logFormat          LogFormat
	completionEndpoint Endpoint
	embeddingEndpoint  Endpoint
	searchLimit        int
	embeddingBudget    int
}

// Host returns the server host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port listen address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// CompletionEndpoint returns the completion service endpoint.
func (c AppConfig) CompletionEndpoint() Endpoint { return c.completionEndpoint }

// EmbeddingEndpoint returns the embedding service endpoint.
func (c AppConfig) EmbeddingEndpoint() Endpoint { return c.embeddingEndpoint }

// SearchLimit returns the default retrieval limit for context building.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// EmbeddingBudget returns the maximum number of content characters sent to
// the embedding service.
func (c AppConfig) EmbeddingBudget() int { return c.embeddingBudget }

// NewAppConfig creates an AppConfig with default values.
func NewAppConfig() AppConfig {
	dataDir := defaultDataDir()
	return AppConfig{
		host:               DefaultHost,
		port:               DefaultPort,
		dataDir:            dataDir,
		dbURL:              "sqlite:///" + filepath.Join(dataDir, "codevault.db"),
		logLevel:           DefaultLogLevel,
		logFormat:          LogFormatPretty,
		completionEndpoint: NewEndpoint("", DefaultCompletionModel, ""),
		embeddingEndpoint:  NewEndpoint("", DefaultEmbeddingModel, ""),
		searchLimit:        DefaultSearchLimit,
		embeddingBudget:    DefaultEmbeddingTextBudget,
	}
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Keep the default DB path in step with the data dir.
		if c.dbURL == "" || strings.Contains(c.dbURL, "codevault.db") {
			c.dbURL = "sqlite:///" + filepath.Join(dir, "codevault.db")
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithCompletionEndpoint sets the completion endpoint.
func WithCompletionEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.completionEndpoint = e }
}

// WithEmbeddingEndpoint sets the embedding endpoint.
func WithEmbeddingEndpoint(e Endpoint) AppConfigOption {
	return func(c *AppConfig) { c.embeddingEndpoint = e }
}

// WithSearchLimit sets the default retrieval limit.
func WithSearchLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// WithEmbeddingBudget sets the embedding content character budget.
func WithEmbeddingBudget(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.embeddingBudget = n
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a copy of the config with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// defaultDataDir returns ~/.codevault, falling back to a relative directory
// when the home directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codevault"
	}
	return filepath.Join(home, ".codevault")
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}
