package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const envPrefix = "FAQHUB_"

// Config is the process configuration read from the environment.
type Config struct {
	Addr string

	// Token signing. Access and refresh tokens use independent secrets so a
	// leaked access secret does not extend session lifetime.
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Browser origin allowed to send credentialed cross-site requests.
	FrontendOrigin string

	// File-backed storage root for admins.json, faqs.json and the chat logs.
	DataDir string

	// Optional Postgres DSN; when set the credential store moves off the
	// JSON file.
	PostgresDSN string

	// Optional language-model fallback for unanswered chat messages.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
}

// FromEnv loads configuration, applying defaults for everything except the
// token secrets, which have no safe default.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:           getenv("ADDR", ":8080"),
		AccessSecret:   strings.TrimSpace(os.Getenv(envPrefix + "ACCESS_SECRET")),
		RefreshSecret:  strings.TrimSpace(os.Getenv(envPrefix + "REFRESH_SECRET")),
		FrontendOrigin: getenv("FRONTEND_ORIGIN", "http://localhost:5000"),
		DataDir:        getenv("DATA_DIR", "."),
		PostgresDSN:    strings.TrimSpace(os.Getenv(envPrefix + "PG_DSN")),
		OpenAIKey:      strings.TrimSpace(os.Getenv(envPrefix + "OPENAI_KEY")),
		OpenAIModel:    getenv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:  getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
	}

	var err error
	if cfg.AccessTTL, err = getduration("ACCESS_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTTL, err = getduration("REFRESH_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports misconfiguration that must abort startup.
func (c Config) Validate() error {
	if c.AccessSecret == "" {
		return errors.New("config: " + envPrefix + "ACCESS_SECRET is required")
	}
	if c.RefreshSecret == "" {
		return errors.New("config: " + envPrefix + "REFRESH_SECRET is required")
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("config: token TTLs must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envPrefix + key)); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s%s: %w", envPrefix, key, err)
	}
	return d, nil
}
