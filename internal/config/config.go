package config

import (
	"os"
	"strconv"

	"teamtasks/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	LogLevel string
	LogJSON  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Rate limits (requests per window, window in seconds)
	APIRateLimit    int
	APIRateWindow   int
	AuthRateLimit   int
	AuthRateWindow  int
	WriteRateLimit  int
	WriteRateWindow int
}

// Load reads configuration from the environment, falling back to .env.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		LogLevel: envOr("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		APIRateLimit:    envIntOr("API_RATE_LIMIT", 100),
		APIRateWindow:   envIntOr("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:   envIntOr("AUTH_RATE_LIMIT", 10),
		AuthRateWindow:  envIntOr("AUTH_RATE_WINDOW_SECONDS", 60),
		WriteRateLimit:  envIntOr("WRITE_RATE_LIMIT", 60),
		WriteRateWindow: envIntOr("WRITE_RATE_WINDOW_SECONDS", 60),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
