package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode         string        `mapstructure:"mode"`
	Port         int           `mapstructure:"port"`
	LogLevel     string        `mapstructure:"log_level"`
	StaticPath   string        `mapstructure:"static_path"`
	ReadLimit    int64         `mapstructure:"read_limit"`
	PingPeriod   time.Duration `mapstructure:"ping_period"`
	SendBuffer   int           `mapstructure:"send_buffer"`
	Secret       string        `mapstructure:"secret"`
	JoinPolicy   string        `mapstructure:"join_policy"`
	Backpressure string        `mapstructure:"backpressure"`
	Rate         RateConfig    `mapstructure:"rate"`
	Capture      CaptureConfig `mapstructure:"capture"`
}

// RateConfig throttles inbound frames per connection. Limit 0 disables it.
type RateConfig struct {
	Limit float64 `mapstructure:"limit"`
	Burst int     `mapstructure:"burst"`
}

type CaptureConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
	S3      S3Config      `mapstructure:"s3"`
}

type S3Config struct {
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	Prefix   string `mapstructure:"prefix"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 10<<20)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("secret", "relay-dev-secret")
	v.SetDefault("join_policy", "strict")
	v.SetDefault("backpressure", "drop")
	v.SetDefault("rate.limit", 50)
	v.SetDefault("rate.burst", 100)
	v.SetDefault("capture.enabled", false)
	v.SetDefault("capture.backend", "fs")
	v.SetDefault("capture.dir", "./captures")
	v.SetDefault("capture.timeout", "10s")
	v.SetDefault("capture.s3.region", "us-east-1")
}

// Load reads config/config.<CONFIG_ENV>.yaml if present, then defaults,
// then the environment: PORT and RELAY_<KEY> (dots become underscores).
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	setDefaults(v)
	v.SetEnvPrefix("relay")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT", "RELAY_PORT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("static", cfg.StaticPath).
		Str("join_policy", cfg.JoinPolicy).
		Bool("capture", cfg.Capture.Enabled).
		Msg("config ready")
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	switch c.Mode {
	case "release", "debug", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	switch c.JoinPolicy {
	case "strict", "lenient":
	default:
		errs = append(errs, fmt.Errorf("unknown join_policy %q", c.JoinPolicy))
	}
	switch c.Backpressure {
	case "drop", "kick":
	default:
		errs = append(errs, fmt.Errorf("unknown backpressure %q", c.Backpressure))
	}
	if c.SendBuffer < 1 {
		errs = append(errs, fmt.Errorf("send_buffer must be positive"))
	}
	if c.Rate.Limit < 0 || (c.Rate.Limit > 0 && c.Rate.Burst < 1) {
		errs = append(errs, fmt.Errorf("rate limit %v with burst %d", c.Rate.Limit, c.Rate.Burst))
	}
	if c.Capture.Enabled {
		switch c.Capture.Backend {
		case "fs":
			if c.Capture.Dir == "" {
				errs = append(errs, fmt.Errorf("capture.dir required for fs backend"))
			}
		case "s3":
			if c.Capture.S3.Bucket == "" {
				errs = append(errs, fmt.Errorf("capture.s3.bucket required for s3 backend"))
			}
		default:
			errs = append(errs, fmt.Errorf("unknown capture.backend %q", c.Capture.Backend))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
