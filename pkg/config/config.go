package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"NextWorth/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"5000"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"120s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"15s"`
		RequestTimeout  time.Duration `yaml:"request_timeout" default:"90s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Model struct {
		Name    string `yaml:"name" default:"amazon/chronos-t5-small"`
		Version string `yaml:"version" default:"1.0.0"`
	} `yaml:"model"`
	Forecaster struct {
		Type           string        `yaml:"type" default:"http"` // http | drift
		URL            string        `yaml:"url" default:"http://localhost:8000"`
		Timeout        time.Duration `yaml:"timeout" default:"60s"`
		SampleCount    int           `yaml:"sample_count" default:"10"`
		MaxConcurrency int           `yaml:"max_concurrency" default:"1"`
		Seed           int64         `yaml:"seed"`
		Breaker        struct {
			Enabled     bool          `yaml:"enabled" default:"true"`
			MaxRequests uint32        `yaml:"max_requests" default:"1"`
			Interval    time.Duration `yaml:"interval" default:"60s"`
			Timeout     time.Duration `yaml:"timeout" default:"30s"`
			ReadyToTrip uint32        `yaml:"ready_to_trip" default:"5"`
		} `yaml:"breaker"`
	} `yaml:"forecaster"`
	RateLimit struct {
		Enabled bool          `yaml:"enabled"`
		Backend string        `yaml:"backend" default:"memory"` // memory | redis
		RPS     float64       `yaml:"rps" default:"2"`
		Burst   int           `yaml:"burst" default:"5"`
		Window  time.Duration `yaml:"window" default:"1m"`
		Limit   int64         `yaml:"limit" default:"60"`
	} `yaml:"ratelimit"`
	Redis struct {
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"nextworth"`
	} `yaml:"redis"`
	Kafka struct {
		Brokers      []string      `yaml:"brokers"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		Compression  string        `yaml:"compression" default:"gzip"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
	Logging struct {
		Level     string `yaml:"level" default:"info"`
		Format    string `yaml:"format" default:"console"`
		Output    string `yaml:"output" default:"stdout"`
		Collector struct {
			Enabled        bool          `yaml:"enabled"`
			Topic          string        `yaml:"topic" default:"nextworth.logs"`
			Interval       time.Duration `yaml:"interval" default:"30s"`
			CountThreshold int           `yaml:"count_threshold" default:"100"`
		} `yaml:"collector"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
}

// Load reads and parses a YAML configuration file. A missing file is not an
// error: the service can run on defaults and environment variables alone.
func Load(path string) (*Config, error) {
	c, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	return &c, nil
}

// LoadWithEnv loads .env (if present), the YAML file, and then overrides with
// environment variables.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := load(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("MODEL_NAME"); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("FORECASTER_TYPE"); v != "" {
		c.Forecaster.Type = v
	}
	if v := os.Getenv("FORECASTER_URL"); v != "" {
		c.Forecaster.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = util.SplitList(v)
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Forecaster.Type {
	case "http":
		if c.Forecaster.URL == "" {
			return fmt.Errorf("forecaster.url is required for forecaster.type 'http'")
		}
	case "drift":
	default:
		return fmt.Errorf("forecaster.type must be 'http' or 'drift', got '%s'", c.Forecaster.Type)
	}
	if c.Forecaster.SampleCount <= 0 {
		return fmt.Errorf("forecaster.sample_count must be positive")
	}
	if c.Forecaster.MaxConcurrency < 1 {
		return fmt.Errorf("forecaster.max_concurrency must be at least 1")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Backend != "memory" && c.RateLimit.Backend != "redis" {
			return fmt.Errorf("ratelimit.backend must be 'memory' or 'redis', got '%s'", c.RateLimit.Backend)
		}
	}
	if c.Logging.Collector.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("logging.collector requires kafka.brokers")
	}
	return nil
}
