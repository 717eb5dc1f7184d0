// Package config loads server settings from the environment, with an optional
// .env file layered underneath.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the server.
type Config struct {
	Port        string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	TurnDuration   time.Duration
	BotDelay       time.Duration
	ResolveDelay   time.Duration
	SwapBotDelay   time.Duration
	RematchDelay   time.Duration
	ShutdownGrace  time.Duration
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

// Load reads .env files (if any) and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", f, err)
			}
		}
	}

	c := Config{
		Port:          getenv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogFormat:     getenv("LOG_FORMAT", "text"),
	}
	for _, o := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			c.AllowedOrigins = append(c.AllowedOrigins, o)
		}
	}

	var err error
	if c.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	durations := []struct {
		key  string
		unit time.Duration
		def  int
		dst  *time.Duration
	}{
		{"TURN_SECONDS", time.Second, 15, &c.TurnDuration},
		{"BOT_DELAY_MS", time.Millisecond, 1200, &c.BotDelay},
		{"RESOLVE_DELAY_MS", time.Millisecond, 1500, &c.ResolveDelay},
		{"SWAP_BOT_DELAY_MS", time.Millisecond, 1000, &c.SwapBotDelay},
		{"REMATCH_DELAY_MS", time.Millisecond, 3000, &c.RematchDelay},
		{"SHUTDOWN_GRACE_SECONDS", time.Second, 10, &c.ShutdownGrace},
		{"TOKEN_TTL_HOURS", time.Hour, 24 * 7, &c.TokenTTL},
	}
	for _, d := range durations {
		n, err := getInt(d.key, d.def)
		if err != nil {
			return Config{}, err
		}
		if n < 0 {
			return Config{}, fmt.Errorf("%s must not be negative", d.key)
		}
		*d.dst = time.Duration(n) * d.unit
	}

	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return c, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
