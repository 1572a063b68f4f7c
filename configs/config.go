package configs

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once in main and passed into every component that needs
// it; nothing reads the environment after startup.
type Config struct {
	Port      string
	DBDriver  string // sqlite | mysql | bolt
	DBSource  string
	JWTSecret string
	JWTTTL    time.Duration

	LegacyDataFile string
	BackupDir      string

	AdminEmail    string
	AdminPassword string

	// Base URL encoded into order QR codes.
	PublicBaseURL string
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8000"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBSource:       getEnv("DB_SOURCE", "jerktracker.db"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         24 * time.Hour,
		LegacyDataFile: getEnv("LEGACY_DATA_FILE", "jerk-tracker-orders.json"),
		BackupDir:      getEnv("BACKUP_DIR", "backups"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:8000"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
