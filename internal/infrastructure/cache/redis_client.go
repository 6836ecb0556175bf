package cache

import (
	"context"
	"log"
	"time"

	"repair_quotes/internal/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// ConnectRedis returns nil when no address is configured or the server does
// not answer; the service then reads the catalog straight from DynamoDB.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Printf("[redis] REDIS_ADDR not set; catalog cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] ping failed; catalog cache disabled addr=%s err=%v", cfg.RedisAddr, err)
		_ = rdb.Close()
		return nil
	}
	log.Printf("[redis] connected addr=%s", cfg.RedisAddr)
	return rdb
}
