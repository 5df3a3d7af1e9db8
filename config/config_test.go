package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  session_secret: 0123456789abcdef\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8090 {
		t.Errorf("expected port 8090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %s", cfg.Auth.SessionTTL)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "fwfps.db" {
		t.Errorf("unexpected db defaults: %+v", cfg.Database)
	}
	if !cfg.Auth.RequireSession {
		t.Error("expected require_session to default to true")
	}
	if len(cfg.Server.CORS.AllowOrigins) != 1 || cfg.Server.CORS.AllowOrigins[0] != "http://localhost:4200" {
		t.Errorf("unexpected cors origins: %v", cfg.Server.CORS.AllowOrigins)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\nauth:\n  session_secret: 0123456789abcdef\n")
	t.Setenv("FWFPS_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected env port 9100, got %d", cfg.Server.Port)
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	path := writeConfig(t, "auth:\n  session_secret: short\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8090, Mode: "development"},
			Database: DatabaseConfig{Driver: "sqlite", Path: "x.db"},
			Auth:     AuthConfig{SessionSecret: "0123456789abcdef", SessionTTL: time.Hour, SessionBackend: "memory"},
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"bad mode", func(c *Config) { c.Server.Mode = "staging" }, true},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"redis backend without redis", func(c *Config) { c.Auth.SessionBackend = "redis" }, true},
		{"redis backend with redis", func(c *Config) {
			c.Auth.SessionBackend = "redis"
			c.Redis.Enabled = true
		}, false},
		{"postgres", func(c *Config) { c.Database.Driver = "postgres" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Path: "data.db"}
	if got := sqlite.DSN(); got != "file:data.db?_foreign_keys=on&_busy_timeout=5000" {
		t.Errorf("unexpected sqlite dsn %q", got)
	}

	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "fwfps", SSLMode: "disable", Timezone: "UTC"}
	want := "host=db port=5432 user=u password=p dbname=fwfps sslmode=disable TimeZone=UTC"
	if got := pg.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
