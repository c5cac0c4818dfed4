package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landmark-lens/api/internal/i18n"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "GEMINI_SDK", "DEFAULT_LANGUAGE",
		"PORT", "TELEGRAM_BOT_TOKEN", "WEBHOOK_URL", "DATABASE_URL",
		"LOG_LEVEL", "WORKERS", "REQUEST_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingKey(t *testing.T) {
	clearEnv(t)
	_, err := Load()
	require.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "k-fallback")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "k-fallback", c.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", c.GeminiModel)
	assert.Equal(t, "gemini", c.GeminiSDK)
	assert.Equal(t, i18n.EN, c.DefaultLanguage)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 8, c.Workers)
	assert.Equal(t, 90*time.Second, c.RequestTimeout)
	assert.Error(t, c.RequireTelegram())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("API_KEY", "ignored")
	t.Setenv("GEMINI_SDK", "GenerativeAI")
	t.Setenv("DEFAULT_LANGUAGE", " ID ")
	t.Setenv("WORKERS", "3")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "primary", c.GeminiAPIKey)
	assert.Equal(t, "generativeai", c.GeminiSDK)
	assert.Equal(t, i18n.ID, c.DefaultLanguage)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.NoError(t, c.RequireTelegram())
}

func TestLoadRejectsBadValues(t *testing.T) {
	for k, v := range map[string]string{
		"DEFAULT_LANGUAGE": "fr",
		"WORKERS":          "zero",
		"REQUEST_TIMEOUT":  "-1s",
	} {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("GEMINI_API_KEY", "k")
			t.Setenv(k, v)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
