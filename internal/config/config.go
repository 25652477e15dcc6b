package config

import (
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Session    SessionConfig
	API        APIConfig
	Log        LogConfig
	Drafts     DraftsConfig
	Upload     UploadConfig
	Credential CredentialConfig
}

type ServerConfig struct {
	Port     string
	Host     string
	Env      string
	Timezone string
}

type SessionConfig struct {
	Secret string
	Secure bool
}

// APIConfig points at the remote ticketing REST API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
}

// DraftsConfig configures where open event drafts are kept between requests.
// An empty RedisURL keeps them in process memory.
type DraftsConfig struct {
	RedisURL string
	TTL      time.Duration
}

type UploadConfig struct {
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
}

// CredentialConfig applies to bearer tokens that carry no expiry of their own
type CredentialConfig struct {
	TTL time.Duration
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			Host:     getEnv("HOST", "localhost"),
			Env:      getEnv("ENV", "development"),
			Timezone: getEnv("APP_TIMEZONE", "Asia/Taipei"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
			Secure: getEnvAsBool("SESSION_SECURE", false),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_BASE_URL", "https://tickets-go-server-dev.onrender.com/api/v1"), "/") + "/",
			Timeout: getEnvAsDuration("API_TIMEOUT", 20*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Drafts: DraftsConfig{
			RedisURL: getEnv("REDIS_URL", ""),
			TTL:      getEnvAsDuration("DRAFT_TTL", 2*time.Hour),
		},
		Upload: UploadConfig{
			MaxBytes:  int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			MaxWidth:  getEnvAsInt("IMAGE_MAX_WIDTH", 1920),
			MaxHeight: getEnvAsInt("IMAGE_MAX_HEIGHT", 1080),
		},
		Credential: CredentialConfig{
			TTL: getEnvAsDuration("CREDENTIAL_TTL", 24*time.Hour),
		},
	}

	return config, nil
}

// IsDevelopment reports whether the console runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Location resolves the configured timezone, falling back to time.Local
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
