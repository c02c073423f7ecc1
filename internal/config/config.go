package config

import (
	"os"
	"strconv"

	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// ArchiveConfig holds S3-compatible object storage settings for the raw
// source-file archive. The archive is optional; when disabled, uploads keep
// only the rendered html.
type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LimitsConfig bounds resource usage of the conversion pipeline. The 500KB
// ceiling on stored html is a schema-level invariant, not configuration.
type LimitsConfig struct {
	MaxFileSizeMB int
	MaxPDFPages   int
	PDFScale      float64
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (l LimitsConfig) MaxFileSizeBytes() int64 {
	return int64(l.MaxFileSizeMB) << 20
}

// AppConfig is the centralized configuration struct for the application,
// populated from environment variables. Sensitive values are never hardcoded.
type AppConfig struct {
	Port           string
	AllowedOrigins string
	Database       DatabaseConfig
	Archive        ArchiveConfig
	Limits         LimitsConfig
}

// Load reads configuration from environment variables. A .env file can be
// auto-loaded by importing joho/godotenv/autoload; real environment variables
// take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Archive: ArchiveConfig{
			Enabled:   getEnvBool("ARCHIVE_ENABLED", false),
			Endpoint:  getEnv("ARCHIVE_ENDPOINT", ""),
			AccessKey: getEnv("ARCHIVE_ACCESS_KEY", ""),
			SecretKey: getEnv("ARCHIVE_SECRET_KEY", ""),
			Bucket:    getEnv("ARCHIVE_BUCKET", ""),
			UseSSL:    getEnvBool("ARCHIVE_USE_SSL", false),
		},
		Limits: LimitsConfig{
			MaxFileSizeMB: getEnvInt("MAX_FILE_SIZE_MB", 10),
			MaxPDFPages:   getEnvInt("MAX_PDF_PAGES", convert.DefaultMaxPDFPages),
			PDFScale:      getEnvFloat("PDF_SCALE", convert.DefaultPDFScale),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
