package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramToken string
	DBPath        string
	AdminID       int64 // operator allowed to run /stats and /report
	LogLevel      string
}

func Load() Config {
	return Config{
		TelegramToken: getBotToken(),
		DBPath:        getEnv("BOT_DB_PATH", "bot.db"),
		AdminID:       getEnvInt64("BOT_ADMIN_ID", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// getBotToken prefers the Docker secret, then the environment.
func getBotToken() string {
	if data, err := os.ReadFile("/run/secrets/telegram_bot_token"); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	return strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN"))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
