package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application-wide configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Web      WebConfig      `mapstructure:"web"`
}

// ServerConfig configures the API HTTP server.
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	Mode      string     `mapstructure:"mode"` // development | production
	BodyLimit int64      `mapstructure:"body_limit"`
	CORS      CORSConfig `mapstructure:"cors"`
}

// IsDevelopment reports whether error bodies may expose internal messages.
func (c *ServerConfig) IsDevelopment() bool { return c.Mode != "production" }

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig selects and configures the relational store.
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"` // sqlite | postgres
	Path            string `mapstructure:"path"`   // sqlite file
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
}

// DSN builds the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "postgres" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
		)
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
}

// RedisConfig configures the optional Redis backend.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig configures sessions and login protection.
type AuthConfig struct {
	SessionSecret  string          `mapstructure:"session_secret"`
	SessionTTL     time.Duration   `mapstructure:"session_ttl"`
	SessionBackend string          `mapstructure:"session_backend"` // memory | redis
	RequireSession bool            `mapstructure:"require_session"`
	Cookie         CookieConfig    `mapstructure:"cookie"`
	LoginRateLimit RateLimitConfig `mapstructure:"login_rate_limit"`
}

// CookieConfig controls the session cookie attributes.
type CookieConfig struct {
	Name     string `mapstructure:"name"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
	Domain   string `mapstructure:"domain"`
}

// RateLimitConfig is a sliding-window limit; zero Limit disables it.
type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// LogConfig configures zap.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SeedConfig toggles sample data on startup.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// WebConfig configures the client application.
type WebConfig struct {
	Port           int           `mapstructure:"port"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	CurrentYear    int           `mapstructure:"current_year"`
}

// Load reads configuration from defaults, an optional config file, a .env
// file and the environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	// a missing .env is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.body_limit", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:4200"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "fwfps.db")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "fwfps")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.session_ttl", "24h")
	v.SetDefault("auth.session_backend", "memory")
	v.SetDefault("auth.require_session", true)
	v.SetDefault("auth.cookie.name", "fwfps_session")
	v.SetDefault("auth.cookie.secure", false)
	v.SetDefault("auth.cookie.same_site", "Lax")
	v.SetDefault("auth.login_rate_limit.limit", 10)
	v.SetDefault("auth.login_rate_limit.window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("seed.enabled", true)

	v.SetDefault("web.port", 4200)
	v.SetDefault("web.api_base_url", "http://localhost:8090/api")
	v.SetDefault("web.request_timeout", "10s")
	v.SetDefault("web.current_year", 2025)

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("FWFPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if len(c.Auth.SessionSecret) < 16 {
		return fmt.Errorf("invalid config: auth.session_secret must be at least 16 characters")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("invalid config: auth.session_ttl must be positive")
	}
	switch c.Auth.SessionBackend {
	case "memory":
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("invalid config: auth.session_backend=redis requires redis.enabled")
		}
	default:
		return fmt.Errorf("invalid config: unknown auth.session_backend %q", c.Auth.SessionBackend)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if c.Server.Mode != "development" && c.Server.Mode != "production" {
		return fmt.Errorf("invalid config: server.mode must be development or production")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("invalid config: db.path is required for sqlite")
		}
	case "postgres":
	default:
		return fmt.Errorf("invalid config: unknown db.driver %q", c.Database.Driver)
	}
	return nil
}
