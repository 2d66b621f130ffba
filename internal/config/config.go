package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env             string
	HTTPPort        string
	APIBaseURL      string
	APIWSURL        string
	RequestTimeout  time.Duration
	SessionFile     string
	MaxUploadSizeMB int64
	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
	MutationLimit   int64
	MutationPeriod  time.Duration
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:         env,
		HTTPPort:    getEnv("HTTP_PORT", "3000"),
		APIBaseURL:  strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:8000/api"), "/"),
		APIWSURL:    getEnv("API_WS_URL", ""),
		SessionFile: getEnv("SESSION_FILE", "./session.json"),
	}

	if env == "production" && getEnv("API_BASE_URL", "") == "" {
		return nil, fmt.Errorf("config: API_BASE_URL обязателен в production")
	}

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		cfg.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.AllowedOrigins {
			cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}

	// Каждый сетевой вызов к удалённому API обязан иметь ограниченный таймаут.
	cfg.RequestTimeout = mustParseDuration(getEnv("REQUEST_TIMEOUT", "15s"))
	cfg.MaxUploadSizeMB = mustParseInt64(getEnv("MAX_UPLOAD_MB", "10"))

	// Rate limiting: входящие запросы UI и исходящие мутации к удалённому API.
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "60"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))
	cfg.MutationLimit = mustParseInt64(getEnv("MUTATION_RATE_LIMIT", "30"))
	cfg.MutationPeriod = mustParseDuration(getEnv("MUTATION_RATE_PERIOD", "1m"))

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// mustParseDuration безопасно парсит строку в duration.
func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: не удалось распарсить длительность %q: %v", v, err)
	}
	return dur
}

// mustParseInt64 безопасно парсит строку в int64.
func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: не удалось распарсить число %q: %v", v, err)
	}
	return num
}
