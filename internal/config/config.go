package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort     string
	DatabaseDSN  string
	CORSOrigins  string
	DataDir      string // seed CSV exports live here
	ToolPhotoDir string // uploaded tool photos
	MaxUploadMB  int    // upload size cap for CSV files and photos
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=rocdashboard port=5432 sslmode=disable"

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] .env not loaded: %v", err)
	}

	cfg := &Config{
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:  getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins:  getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		ToolPhotoDir: getEnv("TOOL_PHOTO_DIR", "./uploads/tools"),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 16),
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own dashboard origin for production.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] %s=%q is not a positive number, using %d", key, v, def)
		return def
	}
	return n
}
