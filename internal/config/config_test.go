package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("ARCHIVE_ENABLED", "true")
	os.Setenv("MAX_FILE_SIZE_MB", "4")
	os.Setenv("MAX_PDF_PAGES", "12")
	os.Setenv("PDF_SCALE", "2.5")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("ARCHIVE_ENABLED")
		os.Unsetenv("MAX_FILE_SIZE_MB")
		os.Unsetenv("MAX_PDF_PAGES")
		os.Unsetenv("PDF_SCALE")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, 4, cfg.Limits.MaxFileSizeMB)
	assert.Equal(t, int64(4<<20), cfg.Limits.MaxFileSizeBytes())
	assert.Equal(t, 12, cfg.Limits.MaxPDFPages)
	assert.Equal(t, 2.5, cfg.Limits.PDFScale)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "MAX_FILE_SIZE_MB", "MAX_PDF_PAGES", "PDF_SCALE", "ARCHIVE_ENABLED"} {
		orig := os.Getenv(key)
		os.Unsetenv(key)
		defer os.Setenv(key, orig)
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.Limits.MaxFileSizeMB)
	assert.Equal(t, 25, cfg.Limits.MaxPDFPages)
	assert.Equal(t, 1.5, cfg.Limits.PDFScale)
	assert.False(t, cfg.Archive.Enabled)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_FLOAT_VAR"

	os.Setenv(key, "1.25")
	assert.Equal(t, 1.25, getEnvFloat(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 1.5, getEnvFloat(key, 1.5))

	os.Unsetenv(key)
	assert.Equal(t, 1.5, getEnvFloat(key, 1.5))
}
