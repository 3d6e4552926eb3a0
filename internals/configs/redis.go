// file: internals/configs/redis.go
package configs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ConnectRedis returns nil when REDIS_ADDR is empty or unreachable;
// callers then run without the cross-request cache.
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		zap.L().Warn("REDIS_ADDR not set, group cache disabled")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zap.L().Error("redis unreachable, group cache disabled", zap.String("addr", addr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	zap.L().Info("redis connected", zap.String("addr", addr))
	return rdb
}
