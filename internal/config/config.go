package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the judge API service.
type Config struct {
	AppName            string
	AppEnv             string
	AppPort            string
	DatabaseURL        string
	RedisURL           string
	NATSURL            string
	EventSubjectBase   string
	JWTSecret          string
	ScoreboardCacheTTL time.Duration
	ScoreboardRateMax  int
	ScoreboardRateWin  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional
// .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("JUDGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Judge API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("events.subject", "judge.events")
	v.SetDefault("scoreboard.cache_ttl", "30s")
	v.SetDefault("scoreboard.rate_max", 10)
	v.SetDefault("scoreboard.rate_window", "1m")

	ttl, err := time.ParseDuration(v.GetString("scoreboard.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid scoreboard cache ttl: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("scoreboard.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid scoreboard rate window: %w", err)
	}

	cfg := Config{
		AppName:            v.GetString("app.name"),
		AppEnv:             v.GetString("app.env"),
		AppPort:            v.GetString("app.port"),
		DatabaseURL:        v.GetString("database.url"),
		RedisURL:           v.GetString("redis.url"),
		NATSURL:            v.GetString("nats.url"),
		EventSubjectBase:   v.GetString("events.subject"),
		JWTSecret:          v.GetString("jwt.secret"),
		ScoreboardCacheTTL: ttl,
		ScoreboardRateMax:  v.GetInt("scoreboard.rate_max"),
		ScoreboardRateWin:  rateWindow,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}
