package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratePrefix = "rate:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// CountRequest bumps the fixed-window request counter for key and reports
// the window total. The first hit in a window sets the expiry.
func CountRequest(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, error) {
	n, err := rdb.Incr(ctx, ratePrefix+key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		rdb.Expire(ctx, ratePrefix+key, window)
	}
	return n, nil
}
