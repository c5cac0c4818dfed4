package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"landmark-lens/api/internal/i18n"
)

// ErrMissingCredential means the model API key is not configured. No
// component can work without it, so mains treat it as fatal.
var ErrMissingCredential = errors.New("missing GEMINI_API_KEY (or API_KEY)")

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string
	GeminiSDK    string

	DefaultLanguage i18n.Language

	TelegramToken string
	WebhookURL    string
	DatabaseURL   string

	LogLevel       string
	Workers        int
	RequestTimeout time.Duration
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) (int, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", k, v)
	}
	return n, nil
}

func getDuration(k string, def time.Duration) (time.Duration, error) {
	v := getEnv(k, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: want a positive duration, got %q", k, v)
	}
	return d, nil
}

// Load reads the environment. Only the model key is mandatory here;
// binaries check their own extras (see RequireTelegram).
func Load() (*Config, error) {
	key := getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))
	if key == "" {
		return nil, ErrMissingCredential
	}

	lang, err := i18n.Parse(getEnv("DEFAULT_LANGUAGE", string(i18n.EN)))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_LANGUAGE: %w", err)
	}
	workers, err := getInt("WORKERS", 8)
	if err != nil {
		return nil, err
	}
	timeout, err := getDuration("REQUEST_TIMEOUT", 90*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		GeminiAPIKey: key,
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiSDK:    strings.ToLower(getEnv("GEMINI_SDK", "gemini")),

		DefaultLanguage: lang,

		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:    getEnv("WEBHOOK_URL", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Workers:        workers,
		RequestTimeout: timeout,
	}, nil
}

func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return errors.New("missing TELEGRAM_BOT_TOKEN")
	}
	return nil
}
