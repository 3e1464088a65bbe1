package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"weather-notifier/pkg/resource"
)

// DefaultPath is used when PROPERTIES_FILE_PATH is not set.
const DefaultPath = "configs/application.yml"

// Dispatch modes of the notification job.
const (
	ModeSegment = "segment"
	ModeList    = "list"
)

// Config is loaded once at startup and handed to every component that needs it.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Push     PushConfig     `mapstructure:"push"`
	Job      JobConfig      `mapstructure:"job"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cloud    CloudConfig    `mapstructure:"cloud"`
}

type AppConfig struct {
	Name   string       `mapstructure:"name"`
	Server ServerConfig `mapstructure:"server"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	ContextPath string `mapstructure:"context-path"`
}

// WeatherConfig configures the OpenWeatherMap current-weather lookup.
type WeatherConfig struct {
	BaseURL string        `mapstructure:"base-url"`
	APIKey  string        `mapstructure:"api-key"`
	Units   string        `mapstructure:"units"`
	Country string        `mapstructure:"country"`
	Timeout time.Duration `mapstructure:"timeout"`
	// CircuitFailures is the number of consecutive provider failures of one city that opens its breaker
	CircuitFailures uint32 `mapstructure:"circuit-failures"`
}

// PushConfig configures the OneSignal REST API.
type PushConfig struct {
	BaseURL   string        `mapstructure:"base-url"`
	AppID     string        `mapstructure:"app-id"`
	APIKey    string        `mapstructure:"api-key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate-limit"`
	RateBurst int           `mapstructure:"rate-burst"`
}

type JobConfig struct {
	Mode        string        `mapstructure:"mode"`
	Concurrency int           `mapstructure:"concurrency"`
	Cron        string        `mapstructure:"cron"`
	LockTTL     time.Duration `mapstructure:"lock-ttl"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	Schema   string `mapstructure:"schema"`
	SSLMode  string `mapstructure:"ssl-mode"`
}

// DSN renders the libpq keyword/value connection string shared by gorm and lib/pq.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Username, c.Password, c.Database, c.SSLMode, c.Schema)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

type CloudConfig struct {
	AWSRegion          string `mapstructure:"aws-region"`
	AWSEndpoint        string `mapstructure:"aws-endpoint"`
	AWSAccessKeyID     string `mapstructure:"aws-access-key-id"`
	AWSSecretAccessKey string `mapstructure:"aws-secret-access-key"`
	RegistrationQueue  string `mapstructure:"registration-queue"`
}

// ConfigurationError is fatal: the run stops before touching any external system.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required properties: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid properties: "+strings.Join(e.Invalid, ", "))
	}
	return "configuration error: " + strings.Join(parts, "; ")
}

// Path returns PROPERTIES_FILE_PATH or DefaultPath.
func Path() string {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok && value != "" {
		return value
	}
	return DefaultPath
}

// Load reads the properties file and applies defaults. It does not validate.
func Load(path string) (*Config, error) {
	v, err := resource.Load(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("fail to decode properties %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Weather.Units == "" {
		c.Weather.Units = "metric"
	}
	if c.Weather.Timeout <= 0 {
		c.Weather.Timeout = 10 * time.Second
	}
	if c.Weather.CircuitFailures == 0 {
		c.Weather.CircuitFailures = 5
	}
	if c.Push.Timeout <= 0 {
		c.Push.Timeout = 10 * time.Second
	}
	if c.Push.RateBurst < 1 {
		c.Push.RateBurst = 1
	}
	if c.Job.Mode == "" {
		c.Job.Mode = ModeSegment
	}
	c.Job.Mode = strings.ToLower(strings.TrimSpace(c.Job.Mode))
	if c.Job.Concurrency < 1 {
		c.Job.Concurrency = 1
	}
	if c.Job.LockTTL <= 0 {
		c.Job.LockTTL = 10 * time.Minute
	}
}

// Validate checks the credentials and options the notification job cannot run without.
func (c *Config) Validate() error {
	cfgErr := &ConfigurationError{}

	if strings.TrimSpace(c.Weather.APIKey) == "" {
		cfgErr.Missing = append(cfgErr.Missing, "weather.api-key")
	}
	if strings.TrimSpace(c.Push.AppID) == "" {
		cfgErr.Missing = append(cfgErr.Missing, "push.app-id")
	}
	if strings.TrimSpace(c.Push.APIKey) == "" {
		cfgErr.Missing = append(cfgErr.Missing, "push.api-key")
	}
	if c.Job.Mode != ModeSegment && c.Job.Mode != ModeList {
		cfgErr.Invalid = append(cfgErr.Invalid, fmt.Sprintf("job.mode=%q", c.Job.Mode))
	}

	if len(cfgErr.Missing) > 0 || len(cfgErr.Invalid) > 0 {
		return cfgErr
	}
	return nil
}
