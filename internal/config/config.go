package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	BlobDir     string // root directory for the filesystem blob store
	CORSOrigins string
	TablePrefix string
	SeedFile    string // YAML fixture consumed by cmd/seed
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		BlobDir:     getEnv("BLOB_DIR", "data/blobs"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		SeedFile:    getEnv("SEED_FILE", "seed/users.yaml"),
	}
}

// getTablePrefix returns the table prefix based on environment.
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
