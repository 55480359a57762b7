package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "8080",
		DBDriver:          "sqlite",
		DatabaseURL:       "file:test.db",
		JWTSecret:         "secret",
		SessionTTL:        time.Hour,
		BcryptCost:        10,
		OAuthRedirectBase: "http://localhost:8080",
		AllowEmailLinking: true,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// clearEnv blanks every variable Load reads; viper treats empty as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GIN_MODE", "DB_DRIVER", "DATABASE_URL", "POSTGRES_URL", "JWT_SECRET",
		"SESSION_TTL", "COOKIE_SECURE", "BCRYPT_COST", "GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
		"GITHUB_CLIENT_ID", "GITHUB_CLIENT_SECRET", "OAUTH_REDIRECT_BASE", "OAUTH_ALLOW_EMAIL_LINKING",
		"SEED_ENABLED", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTGRES_URL", "postgres://localhost/fin")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/fin", cfg.DatabaseURL)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.True(t, cfg.AllowEmailLinking)
	assert.False(t, cfg.SeedEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:fin.db")
	t.Setenv("POSTGRES_URL", "postgres://ignored")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SEED_ENABLED", "true")
	t.Setenv("OAUTH_REDIRECT_BASE", "https://fin.example.com/")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file:fin.db", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.SeedEnabled)
	assert.Equal(t, "https://fin.example.com", cfg.OAuthRedirectBase)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\njwt_secret: fromfile\nlog_level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "fromfile", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"driver", func(c *Config) { c.DBDriver = "mysql" }, "DB_DRIVER"},
		{"dsn", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL"},
		{"secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET"},
		{"ttl", func(c *Config) { c.SessionTTL = 0 }, "SESSION_TTL"},
		{"cost", func(c *Config) { c.BcryptCost = 99 }, "BCRYPT_COST"},
		{"half oauth client", func(c *Config) { c.GitHub.ClientID = "id" }, "GITHUB_CLIENT_SECRET"},
		{"redirect base", func(c *Config) {
			c.Google = OAuthClient{ClientID: "id", ClientSecret: "secret"}
			c.OAuthRedirectBase = "not a url"
		}, "OAUTH_REDIRECT_BASE"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	cfg.DatabaseURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
