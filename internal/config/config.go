package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	// Platform credentials shared with the commerce platform app listing.
	PlatformClientID     string
	PlatformClientSecret string
	// Public base URI of this service, used for OAuth redirects and
	// webhook callback addresses. Always carries a trailing slash.
	PlatformBaseURI string

	LogLevel string

	OTLPEndpoint string
	OTLPProtocol string
	OTLPInsecure bool

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	// SyncInterval enables the background abandoned-checkout sync when
	// positive. Zero leaves syncing to the HTTP trigger endpoint only.
	SyncInterval time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:              getenv("APP_SERVICE", "shoplink"),
		AppVersion:           getenv("APP_VERSION", "0.1.0"),
		Environment:          getenv("ENVIRONMENT", "development"),
		HTTPAddr:             getenv("HTTP_ADDR", ":8080"),
		PlatformClientID:     strings.TrimSpace(getenv("SHOPIFY_CLIENT_ID", "")),
		PlatformClientSecret: strings.TrimSpace(getenv("SHOPIFY_CLIENT_SECRET", "")),
		PlatformBaseURI:      normalizeBaseURI(getenv("SHOPIFY_BASE_URI", "")),
		LogLevel:             getenv("LOG_LEVEL", "info"),
		OTLPEndpoint:         getenv("OTLP_ENDPOINT", ""),
		OTLPProtocol:         getenv("OTLP_PROTOCOL", "grpc"),
		OTLPInsecure:         getenvBool("OTLP_INSECURE", true),
		DBType:               getenv("DATABASE_TYPE", "postgres"),
		DBHost:               getenv("DATABASE_HOST", "localhost"),
		DBPort:               getenv("DATABASE_PORT", "5432"),
		DBName:               getenv("DATABASE_NAME", "shoplink"),
		DBUser:               getenv("DATABASE_USER", "postgres"),
		DBPassword:           getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:            getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:        getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:        getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime:    getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),
		DBConnMaxIdleTime:    getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 600),
		SyncInterval:         getenvDuration("SYNC_INTERVAL", 0),
	}

	return cfg
}

func normalizeBaseURI(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
