package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Form    FormConfig
	Stream  StreamConfig
	Submit  SubmitConfig
	Server  ServerConfig
	Logging LogConfig
	Metrics MetricsConfig
}

// FormConfig holds the initial values of the six job form fields.
type FormConfig struct {
	URL            string `envconfig:"TARGETURL"`
	TargetTime     string `envconfig:"TARGETTIME"`
	ButtonKeywords string `envconfig:"KEYWORDS"`
	ChromePath     string `envconfig:"CHROMEPATH"`
	UserDataDir    string `envconfig:"DATADIR"`
	ProfileName    string `envconfig:"PROFILENAME"`
}

// StreamConfig holds log stream connection settings.
type StreamConfig struct {
	URL              string        `envconfig:"STREAM_URL" default:"ws://127.0.0.1:8000/ws"`
	MaxRetries       int           `envconfig:"STREAM_MAX_RETRIES" default:"10"`
	RetryDelay       time.Duration `envconfig:"STREAM_RETRY_DELAY" default:"1s"`
	HandshakeTimeout time.Duration `envconfig:"STREAM_HANDSHAKE_TIMEOUT" default:"10s"`
}

// SubmitConfig holds job submission settings. A zero timeout means the
// request is never cut short; a zero RPS means no rate limit.
type SubmitConfig struct {
	URL               string        `envconfig:"SUBMIT_URL" default:"http://127.0.0.1:8000/run"`
	Timeout           time.Duration `envconfig:"SUBMIT_TIMEOUT" default:"0s"`
	RequestsPerSecond float64       `envconfig:"SUBMIT_RPS" default:"0"`
}

// ServerConfig holds the dev backend server configuration. A zero RunRPS
// leaves /run unlimited.
type ServerConfig struct {
	Host        string   `envconfig:"HOST" default:"127.0.0.1"`
	Port        string   `envconfig:"PORT" default:"8000"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://127.0.0.1:5173"`
	RunRPS      float64  `envconfig:"RUN_RPS" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// MetricsConfig holds the optional metrics listener. Empty disables it.
type MetricsConfig struct {
	Addr string `envconfig:"METRICS_ADDR"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Stream: StreamConfig{
			URL:              "ws://127.0.0.1:8000/ws",
			MaxRetries:       10,
			RetryDelay:       time.Second,
			HandshakeTimeout: 10 * time.Second,
		},
		Submit: SubmitConfig{
			URL: "http://127.0.0.1:8000/run",
		},
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        "8000",
			CORSOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks the settings the stream client cannot work around.
func (c *Config) Validate() error {
	if c.Stream.RetryDelay <= 0 {
		return errors.New("STREAM_RETRY_DELAY must be positive")
	}
	if c.Stream.MaxRetries < 0 {
		return errors.New("STREAM_MAX_RETRIES must not be negative")
	}
	if c.Submit.RequestsPerSecond < 0 {
		return errors.New("SUBMIT_RPS must not be negative")
	}
	return nil
}

// ServerAddr returns the host:port the dev server listens on.
func (c *Config) ServerAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
