package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hostelworks/hostel-console/internal/utils"
)

const (
	AppName       = "hostel-console"
	DefaultAPIURL = "http://localhost:5001/api"
)

type Config struct {
	AppName           string
	APIURL            string
	SessionDBPath     string
	SessionKey        []byte
	SessionPassphrase string
	HTTPTimeout       time.Duration
}

// LoadConfig reads an optional .env file (HOSTEL_ENV_FILE, or ./.env) and then the environment.
func LoadConfig() (*Config, error) {
	envFile := getEnv("HOSTEL_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
		utils.Logger.Debugf("No %s file found, using environment variables", envFile)
	}

	cfg := &Config{
		AppName:           AppName,
		SessionPassphrase: os.Getenv("HOSTEL_SESSION_PASSPHRASE"),
	}

	apiURL, err := normalizeAPIURL(getEnv("HOSTEL_API_URL", DefaultAPIURL))
	if err != nil {
		return nil, err
	}
	cfg.APIURL = apiURL

	cfg.SessionDBPath = os.Getenv("HOSTEL_SESSION_DB")
	if cfg.SessionDBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory for session db: %w", err)
		}
		cfg.SessionDBPath = filepath.Join(home, "."+AppName, "session.db")
	}

	if raw := os.Getenv("HOSTEL_SESSION_KEY"); raw != "" {
		key, err := utils.DecodeKey(raw)
		if err != nil {
			return nil, fmt.Errorf("HOSTEL_SESSION_KEY: %w", err)
		}
		cfg.SessionKey = key
	}

	if raw := os.Getenv("HOSTEL_HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid HOSTEL_HTTP_TIMEOUT '%s' (want a non-negative Go duration)", raw)
		}
		cfg.HTTPTimeout = d
	}

	utils.Logger.Debugf("Config loaded: api=%s session_db=%s", cfg.APIURL, cfg.SessionDBPath)
	return cfg, nil
}

// WithServer overrides the API URL, e.g. from a --server flag.
func (c *Config) WithServer(raw string) error {
	if raw == "" {
		return nil
	}
	apiURL, err := normalizeAPIURL(raw)
	if err != nil {
		return err
	}
	c.APIURL = apiURL
	return nil
}

// EncryptsSession reports whether session tokens are encrypted at rest.
func (c *Config) EncryptsSession() bool {
	return len(c.SessionKey) > 0 || c.SessionPassphrase != ""
}

func normalizeAPIURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid API URL '%s': %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid API URL '%s' (must be http or https)", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid API URL '%s' (missing host)", raw)
	}
	return raw, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
