package config

import (
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	RunAddress   string
	DatabaseURI  string
	DatabaseName string

	JWTSecret string
	TokenTTL  time.Duration
	AdminName string
	AdminPIN  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string
}

func New() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "server address and port")
	flag.StringVar(&cfg.DatabaseURI, "d", "mongodb://localhost:27017", "database URI (mongodb:// or postgres://)")
	flag.StringVar(&cfg.DatabaseName, "n", "elstore", "database name")
	flag.Parse()

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.DatabaseName = getEnv("DATABASE_NAME", cfg.DatabaseName)

	cfg.JWTSecret = getEnv("JWT_SECRET", "dev_secret_change_me")
	cfg.TokenTTL = time.Duration(getEnvInt("JWT_TTL_MINUTES", 120)) * time.Minute
	cfg.AdminName = getEnv("ADMIN_NAME", "Admin, M.Sadri")
	cfg.AdminPIN = getEnv("ADMIN_PIN", "200112")

	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort = getEnvInt("SMTP_PORT", 587)
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPass = getEnv("SMTP_PASS", "")
	cfg.SMTPFrom = getEnv("SMTP_FROM", cfg.SMTPUser)

	return cfg
}

// SMTPConfigured reports whether outbound email is enabled. Missing settings
// silently disable notifications; this is a configuration state, not an
// error.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
