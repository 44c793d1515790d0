package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	memberCachePrefix = "chat:members:"
	memberCacheTTL    = 5 * time.Minute
)

// MemberCache keeps each chat's member set in Redis so membership
// checks on the hot message path skip the primary store.
type MemberCache struct {
	client *Client
}

// NewMemberCache creates a new chat member cache
func NewMemberCache(client *Client) *MemberCache {
	return &MemberCache{client: client}
}

func memberKey(chatID int64) string {
	return fmt.Sprintf("%s%d", memberCachePrefix, chatID)
}

// Contains reports whether userID is in the cached member set.
// The second return value is false on a cache miss.
func (c *MemberCache) Contains(ctx context.Context, chatID, userID int64) (bool, bool, error) {
	key := memberKey(chatID)

	exists, err := c.client.rdb.Exists(ctx, key).Result()
	if err != nil || exists == 0 {
		return false, false, nil // Cache miss
	}

	member, err := c.client.rdb.SIsMember(ctx, key, strconv.FormatInt(userID, 10)).Result()
	if err != nil {
		return false, false, nil
	}
	return member, true, nil
}

// Set replaces the cached member set for a chat
func (c *MemberCache) Set(ctx context.Context, chatID int64, members []int64) error {
	key := memberKey(chatID)

	values := make([]any, 0, len(members))
	for _, id := range members {
		values = append(values, strconv.FormatInt(id, 10))
	}

	_, err := c.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(values) > 0 {
			pipe.SAdd(ctx, key, values...)
		}
		pipe.Expire(ctx, key, memberCacheTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache chat members: %w", err)
	}
	return nil
}

// Invalidate removes the cached member set for a chat
func (c *MemberCache) Invalidate(ctx context.Context, chatID int64) error {
	return c.client.rdb.Del(ctx, memberKey(chatID)).Err()
}
