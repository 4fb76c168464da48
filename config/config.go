package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort = "8080"
	defaultCacheTTL   = time.Minute
)

type Config struct {
	AppMode    string
	ServerPort string
	MongoURL   string
	MongoDB    string
	RedisURL   string
	CacheTTL   time.Duration
	JWTSecret  []byte
}

// Load reads configuration from the environment, with an optional .env
// file for local development. Required variables fail startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppMode:    os.Getenv("APP_MODE"),
		ServerPort: os.Getenv("SERVER_PORT"),
		MongoURL:   os.Getenv("MONGO_URL"),
		MongoDB:    os.Getenv("MONGO_DBNAME"),
		RedisURL:   os.Getenv("REDIS_URL"),
		CacheTTL:   defaultCacheTTL,
		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = defaultServerPort
	}
	if rawTTL := os.Getenv("CACHE_TTL"); rawTTL != "" {
		ttl, err := time.ParseDuration(rawTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL: %s", err.Error())
		}
		cfg.CacheTTL = ttl
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("empty mongo url")
	}
	if cfg.MongoDB == "" {
		return nil, fmt.Errorf("empty mongo dbname")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("empty broker url")
	}
	if len(cfg.JWTSecret) == 0 {
		return nil, fmt.Errorf("empty jwt secret")
	}

	return cfg, nil
}
