package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingCache caches per-movie rating averages. A cached nil average means
// the movie has no ratings yet.
type RatingCache interface {
	Get(ctx context.Context, movieID string) (avg *float64, hit bool, err error)
	Set(ctx context.Context, movieID string, avg *float64) error
	Invalidate(ctx context.Context, movieID string) error
}

type redisRatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache builds a cache-aside store on top of the given client.
func NewRatingCache(client *redis.Client, ttl time.Duration) RatingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisRatingCache{client: client, ttl: ttl}
}

func ratingKey(movieID string) string { return fmt.Sprintf("rating:avg:%s", movieID) }

func (c *redisRatingCache) Get(ctx context.Context, movieID string) (*float64, bool, error) {
	data, err := c.client.Get(ctx, ratingKey(movieID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var avg *float64
	if err := json.Unmarshal(data, &avg); err != nil {
		// corrupt entry, treat as a miss
		return nil, false, nil
	}
	return avg, true, nil
}

func (c *redisRatingCache) Set(ctx context.Context, movieID string, avg *float64) error {
	payload, err := json.Marshal(avg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, ratingKey(movieID), payload, c.ttl).Err()
}

func (c *redisRatingCache) Invalidate(ctx context.Context, movieID string) error {
	return c.client.Del(ctx, ratingKey(movieID)).Err()
}
