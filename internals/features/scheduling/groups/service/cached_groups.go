// file: internals/features/scheduling/groups/service/cached_groups.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type GroupLookup interface {
	TeacherIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error)
	SubjectIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error)
}

const DefaultGroupCacheTTL = 5 * time.Minute

// CachedGroups keeps teacher/subject of a group in Redis across requests.
// Redis is best effort: any Redis failure falls through to Next.
// A nil RDB disables caching.
type CachedGroups struct {
	Next GroupLookup
	RDB  *redis.Client
	TTL  time.Duration
}

func NewCachedGroups(next GroupLookup, rdb *redis.Client, ttl time.Duration) *CachedGroups {
	if ttl <= 0 {
		ttl = DefaultGroupCacheTTL
	}
	return &CachedGroups{Next: next, RDB: rdb, TTL: ttl}
}

func cacheKey(groupID uuid.UUID, field string) string {
	return fmt.Sprintf("scheduling:group:%s:%s", groupID, field)
}

func (c *CachedGroups) TeacherIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error) {
	return c.lookup(ctx, groupID, "teacher", c.Next.TeacherIDOf)
}

func (c *CachedGroups) SubjectIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error) {
	return c.lookup(ctx, groupID, "subject", c.Next.SubjectIDOf)
}

func (c *CachedGroups) lookup(
	ctx context.Context,
	groupID uuid.UUID,
	field string,
	load func(context.Context, uuid.UUID) (uuid.UUID, error),
) (uuid.UUID, error) {
	if c.RDB == nil {
		return load(ctx, groupID)
	}
	key := cacheKey(groupID, field)

	raw, err := c.RDB.Get(ctx, key).Result()
	switch {
	case err == nil:
		if id, perr := uuid.Parse(raw); perr == nil {
			return id, nil
		}
		zap.L().Warn("group cache: bad value", zap.String("key", key), zap.String("value", raw))
	case errors.Is(err, redis.Nil):
		// miss
	default:
		zap.L().Warn("group cache: get failed", zap.String("key", key), zap.Error(err))
	}

	id, err := load(ctx, groupID)
	if err != nil {
		return uuid.Nil, err
	}
	if serr := c.RDB.Set(ctx, key, id.String(), c.TTL).Err(); serr != nil {
		zap.L().Warn("group cache: set failed", zap.String("key", key), zap.Error(serr))
	}
	return id, nil
}
