package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultDatabasePath  = "presence.db"
	DefaultLogSubDir     = "logs"
	DefaultTemplatesPath = "templates"
)

type Config struct {
	// database path (SQLite file)
	DatabasePath string

	// directory holding the append-only audit logs
	LogDirectory string

	// directory holding the admin/view HTML pages and their assets
	TemplatesPath string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig() (Config, error) {
	dbPath := getEnvOrDefault("DATABASE_PATH", DefaultDatabasePath)

	logDir := getEnvOrDefault("LOG_DIRECTORY", filepath.Join(".", DefaultLogSubDir))
	absLogDir, err := filepath.Abs(logDir)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for log directory '%s': %w", logDir, err)
	}

	templates := getEnvOrDefault("TEMPLATES_PATH", DefaultTemplatesPath)
	absTemplates, err := filepath.Abs(templates)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for templates directory '%s': %w", templates, err)
	}

	cfg := Config{
		DatabasePath:  dbPath,
		LogDirectory:  absLogDir,
		TemplatesPath: absTemplates,
	}

	return cfg, nil
}
