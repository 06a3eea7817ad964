package bookmarks

import (
	"context"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the set key used when none is configured.
const DefaultRedisKey = "bookshelf:saved_books"

// RedisRepository implements Repository over a Redis set.
type RedisRepository struct {
	client *redis.Client
	key    string
}

func NewRedisRepository(client *redis.Client, key string) *RedisRepository {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisRepository{client: client, key: key}
}

// ConnectRedis opens a client and checks the server answers a ping.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (r *RedisRepository) SaveBookID(ctx context.Context, bookID string) error {
	if err := r.client.SAdd(ctx, r.key, bookID).Err(); err != nil {
		return fmt.Errorf("failed to save book id %s: %w", bookID, err)
	}
	return nil
}

func (r *RedisRepository) RemoveBookID(ctx context.Context, bookID string) error {
	if err := r.client.SRem(ctx, r.key, bookID).Err(); err != nil {
		return fmt.Errorf("failed to remove book id %s: %w", bookID, err)
	}
	return nil
}

func (r *RedisRepository) SavedBookIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list book ids: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *RedisRepository) Replace(ctx context.Context, ids []string) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.key)
		if len(ids) > 0 {
			members := make([]any, len(ids))
			for i, id := range ids {
				members[i] = id
			}
			p.SAdd(ctx, r.key, members...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace book ids: %w", err)
	}
	return nil
}
