package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret string

	// Path to SQL migration files
	MigrationsDir string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets and finally to development defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:    lookup("SERVER_PORT", "server_port", "8080"),
		ServerHost:    lookup("SERVER_HOST", "server_host", "0.0.0.0"),
		DBHost:        lookup("DB_HOST", "db_host", "localhost"),
		DBPort:        lookup("DB_PORT", "db_port", "5432"),
		DBUser:        lookup("DB_USER", "db_user", "postgres"),
		DBPassword:    lookup("DB_PASSWORD", "db_password", ""),
		DBName:        lookup("DB_NAME", "db_name", "platefeed"),
		DBSSLMode:     lookup("DB_SSL_MODE", "db_ssl_mode", "disable"),
		RedisHost:     lookup("REDIS_HOST", "redis_host", "localhost"),
		RedisPort:     lookup("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: lookup("REDIS_PASSWORD", "redis_password", ""),
		RedisDB:       0,
		JWTSecret:     lookup("JWT_SECRET", "jwt_secret", ""),
		MigrationsDir: lookup("MIGRATIONS_DIR", "migrations_dir", "migrations"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// lookup resolves a setting from the environment, then from a Docker
// secret, then from the fallback value.
func lookup(envName, secretName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
