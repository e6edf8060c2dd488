package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var RedisClient *redis.Client

// ExportCacheTTL matches the Cache-Control max-age advertised on bulk export.
const ExportCacheTTL = 300 * time.Second

const exportCacheKeyPrefix = "export:page:"

func InitRedis() {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, export page cache will be disabled")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - export page cache disabled", err)
		return
	}

	RedisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - export page cache disabled", err)
		RedisClient = nil
		return
	}

	log.Println("Connected to Redis")
}

// GetCachedExport returns a previously rendered export page, or "" on miss
// or when Redis is unavailable.
func GetCachedExport(page, limit int, role string) string {
	if RedisClient == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("%s%d:%d:%s", exportCacheKeyPrefix, page, limit, role)
	val, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetCachedExport stores a rendered export page for ExportCacheTTL.
func SetCachedExport(page, limit int, role, body string) error {
	if RedisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := fmt.Sprintf("%s%d:%d:%s", exportCacheKeyPrefix, page, limit, role)
	return RedisClient.Set(ctx, key, body, ExportCacheTTL).Err()
}

// InvalidateExportCache drops all cached export pages. Called after any
// mutation that changes the published set.
func InvalidateExportCache() {
	if RedisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	iter := RedisClient.Scan(ctx, 0, exportCacheKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		RedisClient.Del(ctx, iter.Val())
	}
}
