package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	applogger "MarketDash/pkg/logger"
)

type Config struct {
	Environment string           `yaml:"environment" default:"development"`
	Server      ServerConfig     `yaml:"server"`
	Metrics     MetricsConfig    `yaml:"metrics"`
	API         APIConfig        `yaml:"api"`
	Dashboard   DashboardConfig  `yaml:"dashboard"`
	Lock        LockConfig       `yaml:"lock"`
	Log         applogger.Config `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8090" validate:"gt=0,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	SlowThreshold   time.Duration `yaml:"slow_threshold" default:"1s"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" default:"true"`
	Path    string `yaml:"path" default:"/metrics"`
}

// APIConfig points at the local market data service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" default:"http://127.0.0.1:8080" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
}

type DashboardConfig struct {
	Locale       string        `yaml:"locale" default:"pt-BR" validate:"required"`
	PingInterval time.Duration `yaml:"ping_interval" default:"30s" validate:"gt=0"`
	// StreamBuffer is how many frames a slow websocket client may lag behind.
	StreamBuffer int `yaml:"stream_buffer" default:"16" validate:"gt=0"`
}

// LockConfig selects where the single-flight action guard lives.
type LockConfig struct {
	Backend       string        `yaml:"backend" default:"memory" validate:"oneof=memory redis"`
	TTL           time.Duration `yaml:"ttl" default:"2m" validate:"gt=0"`
	RedisAddr     string        `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	Prefix        string        `yaml:"prefix" default:"marketdash"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	c, err := newDefault()
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func newDefault() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. Missing keys take their
// `default` tag values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes over the defaults and validates.
func Parse(b []byte) (*Config, error) {
	c, err := decode(b)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// decode starts from the `default` tags so keys absent from the file keep
// their defaults while explicit zero values such as `enabled: false` win.
func decode(b []byte) (*Config, error) {
	c, err := newDefault()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML (or defaults when path is empty) and
// overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	var b []byte
	if path != "" {
		var err error
		if b, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	c, err := decode(b)
	if err != nil {
		return nil, err
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("MARKET_API_URL"); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup("HTTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup("LOCK_BACKEND"); ok && v != "" {
		c.Lock.Backend = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok && v != "" {
		c.Lock.RedisAddr = v
	}
	return nil
}

// chainCalls is the longest sequence of market API calls one action makes
// (refresh, then market data and VIX).
const chainCalls = 3

// Validate checks `validate` tags and that the action lock outlives the
// slowest possible action.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if minTTL := chainCalls * c.API.Timeout; c.Lock.TTL <= minTTL {
		return fmt.Errorf("lock.ttl %s must exceed %d x api.timeout (%s)", c.Lock.TTL, chainCalls, minTTL)
	}
	return nil
}
