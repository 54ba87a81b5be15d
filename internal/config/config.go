package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Admin bootstrap: registrations with these emails get the admin role.
	AdminEmails []string

	// Server
	Port        string
	CORSOrigins string
	BodyLimitMB int

	// Uploads
	GCSBucket          string
	GCSProjectID       string
	GCSCredentialsJSON string
	UploadDir          string
	PublicBaseURL      string

	// Jobs
	SweepSchedule string
	LogRetention  time.Duration

	SentryDSN string
	AppEnv    string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	port := getEnv("PORT", "4000")
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "foro"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		AdminEmails: parseCSV(getEnv("ADMIN_EMAILS", "")),

		Port:        port,
		CORSOrigins: getEnv("CORS_ORIGINS", "https://foro-discusion.vercel.app"),
		BodyLimitMB: parseInt(getEnv("BODY_LIMIT_MB", "10"), 10),

		GCSBucket:          getEnv("GCS_BUCKET", ""),
		GCSProjectID:       getEnv("GCS_PROJECT_ID", ""),
		GCSCredentialsJSON: getEnv("GCS_CREDENTIALS_JSON", ""),
		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:      getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),

		SweepSchedule: getEnv("SWEEP_SCHEDULE", "0 0 * * *"),
		LogRetention:  parseDuration(getEnv("LOG_RETENTION", "720h"), 30*24*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		AppEnv:    getEnv("APP_ENV", "development"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// IsAdminEmail reports whether email is in the ADMIN_EMAILS list.
func (c *Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
