package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	// ServiceKey authenticates internal callers of the dispatch endpoint
	// (the event publisher and administrative scripts).
	ServiceKey string

	FirebaseCredentials string

	// DispatchURL is where the event publisher posts resolved audiences.
	// Defaults to the local dispatch endpoint.
	DispatchURL     string
	DispatchTimeout time.Duration

	SweepInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	return &Config{
		Port:                port,
		DatabaseURL:         getEnv("DB_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTAccessExpiry:     getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		ServiceKey:          getEnv("NOTIFY_SERVICE_KEY", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		DispatchURL:         getEnv("DISPATCH_URL", "http://localhost:"+port+"/api/notifications/dispatch"),
		DispatchTimeout:     getDuration("DISPATCH_TIMEOUT", 10*time.Second),
		SweepInterval:       getDuration("TOKEN_SWEEP_INTERVAL", time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
