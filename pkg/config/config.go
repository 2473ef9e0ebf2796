package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	DBMaxConns    int
	RedisURL      string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
	// BcryptCost is the work factor used when hashing passwords.
	BcryptCost      int
	DraftTTLMinutes int
	CORSOrigins     string

	LogLevel  string
	LogPretty bool

	Export ExportConfig
}

// ExportConfig describes the page geometry of exported CVs (millimetres).
type ExportConfig struct {
	PageWidth     float64
	PageHeight    float64
	MarginTop     float64
	MarginBottom  float64
	Scale         float64
	ViewportWidth int
	Filename      string
	Timeout       time.Duration
	ChromePath    string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBMaxConns:      getEnvInt("DB_MAX_CONNS", 10),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:       getEnv("JWT_ISSUER", "cvbuilder"),
		JWTTTLMinutes:   getEnvInt("JWT_TTL_MINUTES", 60),
		BcryptCost:      getEnvInt("BCRYPT_COST", getEnvInt("SALT", 10)),
		DraftTTLMinutes: getEnvInt("DRAFT_TTL_MINUTES", 120),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       getEnvBool("LOG_PRETTY", false),
		Export: ExportConfig{
			PageWidth:     getEnvFloat("EXPORT_PAGE_WIDTH_MM", 210),
			PageHeight:    getEnvFloat("EXPORT_PAGE_HEIGHT_MM", 297),
			MarginTop:     getEnvFloat("EXPORT_MARGIN_TOP_MM", 10),
			MarginBottom:  getEnvFloat("EXPORT_MARGIN_BOTTOM_MM", 10),
			Scale:         getEnvFloat("EXPORT_SCALE", 2),
			ViewportWidth: getEnvInt("EXPORT_VIEWPORT_WIDTH", 794),
			Filename:      getEnv("EXPORT_FILENAME", "CV.pdf"),
			Timeout:       getEnvDuration("EXPORT_TIMEOUT", 60*time.Second),
			ChromePath:    os.Getenv("CHROME_PATH"),
		},
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
