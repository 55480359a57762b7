package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type OAuthClient struct {
	ClientID     string
	ClientSecret string
}

// Enabled reports whether both halves of the client credentials are set.
func (c OAuthClient) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type Config struct {
	Port    string
	GinMode string

	DBDriver    string
	DatabaseURL string

	JWTSecret    string
	SessionTTL   time.Duration
	CookieSecure bool
	BcryptCost   int

	Google            OAuthClient
	GitHub            OAuthClient
	OAuthRedirectBase string
	// AllowEmailLinking links a first-time provider login to an existing
	// account with the same email.
	AllowEmailLinking bool

	SeedEnabled bool

	LogLevel  string
	LogFormat string
}

var defaults = map[string]any{
	"PORT":                      "8080",
	"GIN_MODE":                  "release",
	"DB_DRIVER":                 "postgres",
	"SESSION_TTL":               "720h",
	"COOKIE_SECURE":             false,
	"BCRYPT_COST":               10,
	"OAUTH_REDIRECT_BASE":       "http://localhost:8080",
	"OAUTH_ALLOW_EMAIL_LINKING": true,
	"SEED_ENABLED":              false,
	"LOG_LEVEL":                 "info",
	"LOG_FORMAT":                "text",
}

// Load reads .env (if present), then the optional config file at path, then
// the environment. Environment variables win.
func Load(path string) (*Config, error) {
	// A missing .env is fine: production passes real environment variables.
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	databaseURL := v.GetString("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = v.GetString("POSTGRES_URL")
	}

	cfg := &Config{
		Port:    v.GetString("PORT"),
		GinMode: v.GetString("GIN_MODE"),

		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL: databaseURL,

		JWTSecret:    v.GetString("JWT_SECRET"),
		SessionTTL:   v.GetDuration("SESSION_TTL"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		BcryptCost:   v.GetInt("BCRYPT_COST"),

		Google: OAuthClient{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		},
		GitHub: OAuthClient{
			ClientID:     v.GetString("GITHUB_CLIENT_ID"),
			ClientSecret: v.GetString("GITHUB_CLIENT_SECRET"),
		},
		OAuthRedirectBase: strings.TrimRight(v.GetString("OAUTH_REDIRECT_BASE"), "/"),
		AllowEmailLinking: v.GetBool("OAUTH_ALLOW_EMAIL_LINKING"),

		SeedEnabled: v.GetBool("SEED_ENABLED"),

		LogLevel:  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Port == "" {
		problems = append(problems, "PORT is required")
	}

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("invalid DB_DRIVER %q: must be postgres or sqlite", c.DBDriver))
	}
	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASE_URL (or POSTGRES_URL) is required")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSION_TTL must be positive")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		problems = append(problems, fmt.Sprintf("invalid BCRYPT_COST %d: must be between 4 and 31", c.BcryptCost))
	}

	clients := []struct {
		name   string
		client OAuthClient
	}{{"GOOGLE", c.Google}, {"GITHUB", c.GitHub}}
	for _, oc := range clients {
		if (oc.client.ClientID == "") != (oc.client.ClientSecret == "") {
			problems = append(problems, fmt.Sprintf("%s_CLIENT_ID and %s_CLIENT_SECRET must be set together", oc.name, oc.name))
		}
	}
	if c.Google.Enabled() || c.GitHub.Enabled() {
		if u, err := url.Parse(c.OAuthRedirectBase); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid OAUTH_REDIRECT_BASE %q", c.OAuthRedirectBase))
		}
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_LEVEL %q", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT %q", c.LogFormat))
	}

	if len(problems) > 0 {
		return errors.New("configuration errors: " + strings.Join(problems, "; "))
	}
	return nil
}
