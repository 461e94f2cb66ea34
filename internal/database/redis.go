package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ConnectRedis opens the client backing the scoreboard cache. The cache is
// best-effort, so the dial gets a short deadline instead of the client
// default; a cache that cannot answer quickly is worth less than no cache.
func ConnectRedis(url string, logger zerolog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	options.DialTimeout = 2 * time.Second
	options.ReadTimeout = time.Second

	client := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info().Str("addr", options.Addr).Msg("scoreboard cache connected")
	return client, nil
}
