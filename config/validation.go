package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the loaded configuration is usable. The JWT
// secret and database password may only be empty outside production.
func ValidateConfig(cfg *Config) error {
	var missing []string

	required := map[string]string{
		"SERVER_PORT": cfg.ServerPort,
		"DB_HOST":     cfg.DBHost,
		"DB_PORT":     cfg.DBPort,
		"DB_USER":     cfg.DBUser,
		"DB_NAME":     cfg.DBName,
	}
	for name, value := range required {
		if value == "" {
			missing = append(missing, name)
		}
	}

	if IsProduction() {
		if cfg.JWTSecret == "" {
			missing = append(missing, "JWT_SECRET")
		}
		if cfg.DBPassword == "" {
			missing = append(missing, "DB_PASSWORD")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
