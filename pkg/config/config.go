package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	StorageBucket   string
	Environment     string

	ResendAPIKey string
	EmailFrom    string

	// Chat/notification loop tuning. The settle delay after a bulk clear is
	// best-effort debouncing of change-feed redelivery, not a hard bound.
	MessageSyncInterval time.Duration
	UnreadPollInterval  time.Duration
	ClearSettleDelay    time.Duration
	NotifyCacheSize     int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "noreply@complidesk.app"),

		MessageSyncInterval: getEnvAsDuration("MESSAGE_SYNC_INTERVAL", 3*time.Second),
		UnreadPollInterval:  getEnvAsDuration("UNREAD_POLL_INTERVAL", 5*time.Second),
		ClearSettleDelay:    getEnvAsDuration("CLEAR_SETTLE_DELAY", 10*time.Second),
		NotifyCacheSize:     getEnvAsInt("NOTIFY_CACHE_SIZE", 500),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
