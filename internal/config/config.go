package config

import (
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// Config is built once at process start and handed to the components that
// need it. Nothing below this package reads the environment directly.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Gemini GeminiConfig
	SMTP   SMTPConfig
	IMAP   IMAPConfig
}

type ServerConfig struct {
	Port int
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type IMAPConfig struct {
	Host     string
	Username string
	Password string
	Mailbox  string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 8080),
		},
		DB: DBConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Database: os.Getenv("DB_DATABASE"),
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("EMAIL_HOST_USER"),
			Password: os.Getenv("EMAIL_HOST_PASSWORD"),
			From:     getEnv("DEFAULT_FROM_EMAIL", os.Getenv("EMAIL_HOST_USER")),
		},
		IMAP: IMAPConfig{
			Host:     getEnv("EMAIL_HOST", "imap.gmail.com"),
			Username: os.Getenv("EMAIL_HOST_USER"),
			Password: os.Getenv("EMAIL_HOST_PASSWORD"),
			Mailbox:  getEnv("EMAIL_MAILBOX", "INBOX"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
