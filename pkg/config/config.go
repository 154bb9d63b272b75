package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisAddr        string
	SecretKey        string
	WebAppURL        string
	APIAddr          string
	LogLevel         string

	TonAPIURL       string
	TonAPIKey       string
	CollageURL      string
	NftFetchLimit   int
	NftFetchTimeout time.Duration
	NftCacheTTL     time.Duration
	UserNftCacheTTL time.Duration
	InitDataMaxAge  time.Duration
	RateLimitRPS    int
	RateLimitBurst  int
}

// Load reads the environment, after a .env file when one exists.
func Load() (*Config, error) {
	// .env is only present for local development.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      getEnv("DATABASE_URL", "showcase.db"),
		RedisAddr:        os.Getenv("REDIS_HOST"),
		SecretKey:        os.Getenv("SECRET_KEY"),
		WebAppURL:        os.Getenv("WEBAPP_URL"),
		APIAddr:          getEnv("API_ADDR", ":8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		TonAPIURL:        getEnv("TONAPI_URL", "https://tonapi.io"),
		TonAPIKey:        os.Getenv("TONAPI_KEY"),
		CollageURL:       getEnv("COLLAGE_SERVICE_URL", "http://localhost:8081"),
	}

	var err error
	if cfg.NftFetchLimit, err = getEnvInt("NFT_FETCH_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitRPS, err = getEnvInt("RATE_LIMIT_RPS", 10); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", 20); err != nil {
		return nil, err
	}
	if cfg.NftFetchTimeout, err = getEnvDuration("NFT_FETCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.NftCacheTTL, err = getEnvDuration("NFT_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.UserNftCacheTTL, err = getEnvDuration("USER_NFT_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.InitDataMaxAge, err = getEnvDuration("INIT_DATA_MAX_AGE", 0); err != nil {
		return nil, err
	}

	if cfg.TelegramBotToken != "" && cfg.SecretKey == "" {
		return nil, fmt.Errorf("environment variable SECRET_KEY is required when TELEGRAM_BOT_TOKEN is set")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("environment variable %s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("environment variable %s must be a duration like 5m, got %q", key, v)
	}
	return d, nil
}
