package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratingTTL = 10 * time.Minute

// RatingCache keeps computed title ratings in Redis so detail pages do
// not re-aggregate on every request. A nil client disables caching and
// every method degrades to a no-op miss.
type RatingCache struct {
	client *redis.Client
}

func NewRatingCache(client *redis.Client) *RatingCache {
	return &RatingCache{client: client}
}

func ratingKey(titleID int64) string {
	return fmt.Sprintf("title_rating:%d", titleID)
}

// Get returns (rating, true) on a hit. A cached empty string means the
// title has no reviews and maps to (nil, true).
func (c *RatingCache) Get(ctx context.Context, titleID int64) (*float64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err != nil {
		return nil, false
	}
	if val == "" {
		return nil, true
	}
	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

func (c *RatingCache) Set(ctx context.Context, titleID int64, rating *float64) {
	if c == nil || c.client == nil {
		return
	}
	val := ""
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	c.client.Set(ctx, ratingKey(titleID), val, ratingTTL)
}

func (c *RatingCache) Invalidate(ctx context.Context, titleID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, ratingKey(titleID))
}
