package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		ENV    string
		Domain string // public base URL used for media links
	}

	Log struct {
		Level     string
		Format    string
		Component string
		Source    bool
	}

	DB struct {
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	HTTP struct {
		Host string
		Port string
	}

	Auth struct {
		JWTSecret    string
		TokenTTLMins int
	}

	Codec struct {
		// Key is the AES key for opaque id tokens, hex-encoded.
		// Must decode to 16, 24 or 32 bytes.
		Key string
	}

	S3 struct {
		Enabled   bool
		Region    string
		Bucket    string
		Endpoint  string
		AccessKey string
		SecretKey string
	}
}

func New() *Config {
	// best effort: local dev keeps settings in .env
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.ENV = getEnvDefault("APP_ENV", "development")
	cfg.App.Domain = getEnvDefault("APP_DOMAIN", "http://localhost:8080")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "http_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.DSN = os.Getenv("MYSQL_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
		cfg.DB.User = getEnvDefault("DB_USER", "root")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "root")
		cfg.DB.Name = getEnvDefault("DB_NAME", "amity")

		cfg.DB.DSN = fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
		)
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// HTTP
	cfg.HTTP.Host = getEnvDefault("HTTP_HOST", "127.0.0.1")
	cfg.HTTP.Port = getEnvDefault("HTTP_PORT", "8080")

	// Auth
	cfg.Auth.JWTSecret = getEnvDefault("JWT_SECRET", "dev-secret-change-me")
	cfg.Auth.TokenTTLMins = 60
	if ttl := os.Getenv("JWT_TTL_MINUTES"); ttl != "" {
		if n, err := strconv.Atoi(ttl); err == nil && n > 0 {
			cfg.Auth.TokenTTLMins = n
		}
	}

	// Id codec. The default is a dev-only key (AES-128).
	cfg.Codec.Key = getEnvDefault("ID_CODEC_KEY", "000102030405060708090a0b0c0d0e0f")

	// S3 (optional, presigned verification picture URLs)
	cfg.S3.Enabled = isTruthy(os.Getenv("S3_ENABLED"))
	cfg.S3.Region = getEnvDefault("S3_REGION", "us-east-1")
	cfg.S3.Bucket = getEnvDefault("S3_BUCKET", "amity-media")
	cfg.S3.Endpoint = getEnvDefault("S3_ENDPOINT", "")
	cfg.S3.AccessKey = getEnvDefault("S3_ACCESS_KEY", "")
	cfg.S3.SecretKey = getEnvDefault("S3_SECRET_KEY", "")

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
