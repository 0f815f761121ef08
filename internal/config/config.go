// Package config loads the process configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	envconfig "gowhere/pkg/config"
)

// Config is the root configuration.
// Sources are applied in order: the explicit path given to Load, then the
// CONFIG_PATH environment variable, then environment variables alone.
// Environment variables always override values read from the file.
type Config struct {
	Env      string         `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Log      LogConfig      `yaml:"log"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Breaker  BreakerConfig  `yaml:"breaker"`
	CORS     CORSConfig     `yaml:"cors"`
}

// HTTPConfig holds the API listener settings.
type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
}

// Addr returns host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// MongoConfig holds the document store connection settings.
type MongoConfig struct {
	URI            string        `yaml:"uri" env:"MONGO_URI" env-required:"true"`
	Database       string        `yaml:"database" env:"MONGO_DATABASE" env-default:"gowhere"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
	MaxPoolSize    uint64        `yaml:"max_pool_size" env:"MONGO_MAX_POOL_SIZE" env-default:"100"`
	EnsureIndexes  bool          `yaml:"ensure_indexes" env:"MONGO_ENSURE_INDEXES" env-default:"true"`
}

// LogConfig selects the log level (debug, info, warn, error) and format (json, text).
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ThrottleConfig is the token bucket applied to mutating requests.
type ThrottleConfig struct {
	Enabled bool    `yaml:"enabled" env:"THROTTLE_ENABLED" env-default:"true"`
	RPS     float64 `yaml:"rps" env:"THROTTLE_RPS" env-default:"20"`
	Burst   int     `yaml:"burst" env:"THROTTLE_BURST" env-default:"40"`
	// TrustedProxies lists the proxy addresses or CIDR ranges whose
	// X-Forwarded-For and X-Real-IP headers name the client. Empty trusts none.
	TrustedProxies []string `yaml:"trusted_proxies" env:"THROTTLE_TRUSTED_PROXIES"`
}

// TrustedPrefixes parses TrustedProxies.
func (c ThrottleConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	return envconfig.ParsePrefixes(c.TrustedProxies)
}

// BreakerConfig tunes the circuit breaker guarding store calls.
type BreakerConfig struct {
	Enabled     bool          `yaml:"enabled" env:"BREAKER_ENABLED" env-default:"true"`
	Timeout     time.Duration `yaml:"timeout" env:"BREAKER_TIMEOUT" env-default:"30s"`
	MinRequests uint32        `yaml:"min_requests" env:"BREAKER_MIN_REQUESTS" env-default:"5"`
}

// CORSConfig is the cross-origin policy. "*" allows any origin.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods []string `yaml:"allowed_methods" env:"CORS_ALLOWED_METHODS" env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders []string `yaml:"allowed_headers" env:"CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-Request-ID"`
	MaxAge         int      `yaml:"max_age" env:"CORS_MAX_AGE" env-default:"86400"`
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads the configuration. An empty path falls back to CONFIG_PATH and
// then to environment variables only.
func Load(path string) (*Config, error) {
	if path == "" {
		path = envconfig.GetEnvString("CONFIG_PATH", "")
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		// ReadConfig overlays the environment after parsing the file
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide -config, CONFIG_PATH or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("http.max_body_bytes must be > 0")
	}
	if c.Throttle.Enabled && (c.Throttle.RPS <= 0 || c.Throttle.Burst <= 0) {
		return fmt.Errorf("throttle.rps and throttle.burst must be > 0 when throttling is enabled")
	}
	if _, err := c.Throttle.TrustedPrefixes(); err != nil {
		return fmt.Errorf("throttle.trusted_proxies: %w", err)
	}
	if err := envconfig.ValidateNonNegativeDuration(c.HTTP.RequestTimeout); err != nil {
		return fmt.Errorf("http.request_timeout: %w", err)
	}
	if err := envconfig.ValidatePositiveDuration(c.HTTP.ShutdownTimeout); err != nil {
		return fmt.Errorf("http.shutdown_timeout: %w", err)
	}
	if c.Breaker.Enabled {
		if err := envconfig.ValidateDurationRange(c.Breaker.Timeout, time.Second, 10*time.Minute); err != nil {
			return fmt.Errorf("breaker.timeout: %w", err)
		}
	}
	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must be >= 0")
	}
	return nil
}
