package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	postKeyPrefix = "post:%d"
	userKeyPrefix = "user:%d"
)

const (
	// PostTTL bounds staleness of cached post detail reads.
	PostTTL = 30 * time.Minute
	// UserTTL bounds staleness of cached user lookups.
	UserTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// Aside tries Redis first; on miss it calls fetch (which must write into
// dest) and then stores the result with ttl, best-effort. With no Redis
// client it degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client != nil {
		s, err := client.Get(ctx, key).Result()
		if err == nil {
			if jsonErr := json.Unmarshal([]byte(s), dest); jsonErr == nil {
				return nil
			}
			// Corrupt entry: drop it and fall through to the source.
			client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			// Redis trouble must not take reads down; serve from the source.
			middleware.RedisErrors.WithLabelValues("get").Inc()
		}
	}

	if err := fetch(); err != nil {
		return err
	}

	if client != nil {
		if b, err := json.Marshal(dest); err == nil {
			client.Set(ctx, key, b, ttl)
		}
	}
	return nil
}

// Invalidate removes a cached entry.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost removes the cached detail view for a post.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
