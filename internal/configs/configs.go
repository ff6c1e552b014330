package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                  string
	DatabaseDSN             string
	RedisAddr               string
	RedisEventKey           string
	GuaranteeWindowHours    int
	DispatchIntervalSeconds int
	RateLimit               int
	ShutdownTimeoutSeconds  int
	JWTSecret               string
	TokenTTLHours           int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                  fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:             getEnv("DATABASE_DSN", "ustabul.db"),
		RedisAddr:               fmt.Sprintf("%s:%s", redisHost, redisPort),
		RedisEventKey:           getEnv("REDIS_EVENT_KEY", "lifecycle_events"),
		GuaranteeWindowHours:    getEnvAsInt("GUARANTEE_WINDOW_HOURS", 48),
		DispatchIntervalSeconds: getEnvAsInt("DISPATCH_INTERVAL_SECONDS", 2),
		RateLimit:               getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		ShutdownTimeoutSeconds:  getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		JWTSecret:               getEnv("JWT_SECRET_KEY", "ustabul-secret-key-change-in-production"),
		TokenTTLHours:           getEnvAsInt("TOKEN_TTL_HOURS", 24*7),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.GuaranteeWindowHours <= 0 {
		log.Fatal("GUARANTEE_WINDOW_HOURS must be greater than 0")
	}
	if cfg.DispatchIntervalSeconds <= 0 {
		log.Fatal("DISPATCH_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET_KEY must not be empty")
	}
	if cfg.TokenTTLHours <= 0 {
		log.Fatal("TOKEN_TTL_HOURS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
