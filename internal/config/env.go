package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	_ = godotenv.Load()
}

// applyEnvOverrides lets credentials come from the environment instead of the
// config file, so the file can be committed without secrets.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")); v != "" {
		cfg.Telegram.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("TELEGRAM_GROUP_ID")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.GroupID = id
		}
	}
	if v := strings.TrimSpace(os.Getenv("GMAIL_USER")); v != "" {
		cfg.Email.Username = v
	}
	if v := strings.TrimSpace(os.Getenv("GMAIL_APP_PASSWORD")); v != "" {
		cfg.Email.Password = v
	}
	if v := strings.TrimSpace(os.Getenv("ADMIN_USERNAME")); v != "" {
		cfg.Admin.Username = v
	}
	if v := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")); v != "" {
		cfg.Admin.Password = v
	}
}
