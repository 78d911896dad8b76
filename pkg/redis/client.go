package redis

import (
	"github.com/redis/go-redis/v9"

	"habittracker/pkg/config"
)

// NewRedisClient 按配置创建 Redis 客户端，不做连通性检查
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
