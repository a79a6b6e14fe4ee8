// Package config reads the process configuration from the environment. main
// loads a .env file first (godotenv), so a local file and real environment
// variables behave the same.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env           string
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	FrontURL      string

	SMTPHost string
	SMTPPort int
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	RateLimitMax    int
	RateLimitWindow time.Duration
	ResetTokenTTL   time.Duration
}

func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "production"),
		Port:          getenv("API_PORT", "8080"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "mym"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        getduration("JWT_TTL", 2*time.Hour),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		FrontURL:      getenv("FRONT_URL", "http://localhost:3000"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getint("SMTP_PORT", 587),
		SMTPFrom: getenv("SMTP_FROM", "no-reply@mym.local"),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		RateLimitMax:    getint("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getduration("RATE_LIMIT_WINDOW", 15*time.Minute),
		ResetTokenTTL:   getduration("RESET_TOKEN_TTL", 15*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
