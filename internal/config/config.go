package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/ryferguson/cornwand/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "wand.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "WAND_"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultDir is the default document directory.
	DefaultDir = "site"

	// DefaultPollInterval is how often the preview server checks documents
	// for changes.
	DefaultPollInterval = "500ms"

	// DefaultMetricsPath is where the preview server exposes Prometheus metrics.
	DefaultMetricsPath = "/metrics"

	// DefaultContentType is the content type of published documents.
	DefaultContentType = "text/html; charset=utf-8"
)

// Config represents the complete wand.json configuration.
type Config struct {
	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview" envPrefix:"PREVIEW_"`

	// Publish contains S3 publishing configuration.
	Publish PublishConfig `json:"publish" envPrefix:"PUBLISH_"`

	// Log contains logging configuration.
	Log LogConfig `json:"log" envPrefix:"LOG_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" env:"HOST"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" env:"PORT"`

	// Dir is the directory holding *.json documents.
	Dir string `json:"dir,omitempty" env:"DIR"`

	// LiveReload injects a reload script and pushes reloads over WebSocket.
	LiveReload bool `json:"liveReload" env:"LIVE_RELOAD"`

	// PollInterval is a Go duration string (e.g., "500ms").
	PollInterval string `json:"pollInterval,omitempty" env:"POLL_INTERVAL"`

	// MetricsPath is the route for Prometheus metrics. "-" disables it.
	MetricsPath string `json:"metricsPath,omitempty" env:"METRICS_PATH"`
}

// PublishConfig contains S3 publishing settings.
type PublishConfig struct {
	// Bucket is the destination bucket.
	Bucket string `json:"bucket,omitempty" env:"BUCKET"`

	// Prefix is prepended to every object key.
	Prefix string `json:"prefix,omitempty" env:"PREFIX"`

	// Region is the bucket's AWS region.
	Region string `json:"region,omitempty" env:"REGION"`

	// Endpoint overrides the S3 endpoint (for S3-compatible stores).
	Endpoint string `json:"endpoint,omitempty" env:"ENDPOINT"`

	// PathStyle addresses buckets by path instead of virtual host.
	PathStyle bool `json:"pathStyle,omitempty" env:"PATH_STYLE"`

	// CacheControl is sent as the Cache-Control of uploaded objects.
	CacheControl string `json:"cacheControl,omitempty" env:"CACHE_CONTROL"`

	// Credentials are never read from or written to wand.json.
	AccessKeyID     string `json:"-" env:"ACCESS_KEY_ID"`
	SecretAccessKey string `json:"-" env:"SECRET_ACCESS_KEY"`
	SessionToken    string `json:"-" env:"SESSION_TOKEN"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level,omitempty" env:"LEVEL"`

	// JSON switches the log handler to JSON output.
	JSON bool `json:"json,omitempty" env:"JSON"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Preview: PreviewConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			Dir:          DefaultDir,
			LiveReload:   true,
			PollInterval: DefaultPollInterval,
			MetricsPath:  DefaultMetricsPath,
		},
		Publish: PublishConfig{
			Region: "us-east-1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads wand.json from dir, then applies environment overrides.
// A missing file is not an error: the defaults are used.
func Load(dir string) (*Config, error) {
	return LoadWithEnv(dir, nil)
}

// LoadWithEnv is Load with an explicit environment. A nil environ reads the
// process environment.
func LoadWithEnv(dir string, environ map[string]string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)

	cfg := New()
	cfg.configPath = path
	if _, err := os.Stat(path); err == nil {
		if cfg, err = LoadFile(path); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.New("W101").WithLocation(path, "").Wrap(err)
	}

	if err := cfg.ApplyEnv(environ); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W101").
			WithLocation(path, "").
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("W101").
			WithLocation(path, "").
			WithSuggestion("Check that wand.json is valid JSON").
			Wrap(err)
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// ApplyEnv overrides fields from WAND_* variables in environ. A nil environ
// reads the process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return errors.New("W102").Wrap(err)
	}
	c.applyDefaults()
	return nil
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("W101").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("W101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Dir == "" {
		c.Preview.Dir = DefaultDir
	}
	if c.Preview.PollInterval == "" {
		c.Preview.PollInterval = DefaultPollInterval
	}
	if c.Preview.MetricsPath == "" {
		c.Preview.MetricsPath = DefaultMetricsPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("W103").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Preview.Port))
	}
	if d, err := time.ParseDuration(c.Preview.PollInterval); err != nil || d <= 0 {
		return errors.New("W104").
			WithSuggestion(`Use a value such as "250ms" or "1s"`)
	}
	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("W105")
	}
	return nil
}

// PreviewAddress returns the listen address of the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the base URL of the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// DocumentDir returns the document directory, resolved against the config
// file's directory when relative.
func (c *Config) DocumentDir() string {
	if filepath.IsAbs(c.Preview.Dir) || c.Dir() == "" {
		return c.Preview.Dir
	}
	return filepath.Join(c.Dir(), c.Preview.Dir)
}

// PollDuration returns the parsed poll interval, falling back to the
// default when the configured value is invalid.
func (c *Config) PollDuration() time.Duration {
	if d, err := time.ParseDuration(c.Preview.PollInterval); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultPollInterval)
	return d
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
