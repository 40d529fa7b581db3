package server

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings
type Config struct {
	Addr            string
	DBPath          string
	JWTSecret       string // пустой секрет отключает проверку токенов
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64 // запросов в секунду на клиента; 0 отключает
	RateBurst       int
}

// LoadConfig returns settings from FIELDSYNC_* environment variables, seeded
// from a .env file in the working directory if present
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Addr:            getEnv("FIELDSYNC_ADDR", ":8080"),
		DBPath:          getEnv("FIELDSYNC_SERVER_DB", "fieldsync-server.db"),
		JWTSecret:       getEnv("FIELDSYNC_JWT_SECRET", ""),
		TokenTTL:        getDuration("FIELDSYNC_TOKEN_TTL", 30*24*time.Hour),
		ShutdownTimeout: getDuration("FIELDSYNC_SHUTDOWN_TIMEOUT", 10*time.Second),
		RateLimit:       getFloat("FIELDSYNC_RATE_LIMIT", 20),
		RateBurst:       getInt("FIELDSYNC_RATE_BURST", 40),
	}
}

// Validate checks that the settings are usable
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is required")
	}
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return errors.New("rate limit cannot be negative")
	}
	if c.RateLimit > 0 && c.RateBurst == 0 {
		return errors.New("rate burst must be positive when rate limiting is enabled")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Некорректные значения заменяются значением по умолчанию

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return defaultValue
}
