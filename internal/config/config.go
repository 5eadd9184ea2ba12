package config

import (
	"os"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig
	Directory DirectoryConfig
	Identity  IdentityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration. URL is a full connection
// string for an external database; when empty the embedded SQLite file at
// SQLitePath is used instead.
type DatabaseConfig struct {
	URL        string
	SQLitePath string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// SessionConfig holds session cookie and store configuration
type SessionConfig struct {
	EncryptionKey string
	TTL           time.Duration
}

// DirectoryConfig holds the profile directory service configuration
type DirectoryConfig struct {
	URL string
}

// IdentityConfig holds the external identity-assertion verifier configuration
type IdentityConfig struct {
	VerifierURL string
	Audience    string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:        getEnv("DATABASE_URL", ""),
			SQLitePath: getEnv("SQLITE_PATH", "captn.db"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Session: SessionConfig{
			EncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			TTL:           getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
		},
		Directory: DirectoryConfig{
			URL: getEnv("DIRECTORY_URL", "http://who.theskiff.org"),
		},
		Identity: IdentityConfig{
			VerifierURL: getEnv("IDENTITY_VERIFIER_URL", "https://verifier.login.persona.org/verify"),
			Audience:    getEnv("IDENTITY_AUDIENCE", "http://localhost:8080"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
