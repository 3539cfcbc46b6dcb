package main

import (
	"log"

	"photobook-backend/internal/shared/utils"
)

// Config holds the worker's own settings; everything else comes from
// the container.
type Config struct {
	RedisAddr string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr: utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)

	return cfg
}
