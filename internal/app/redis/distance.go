package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

func (c *Client) GetDistance(ctx context.Context, key string) (float64, bool, error) {
	val, err := c.client.Get(ctx, servicePrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	miles, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, err
	}
	return miles, true, nil
}

func (c *Client) SetDistance(ctx context.Context, key string, miles float64, ttl time.Duration) error {
	return c.client.Set(ctx, servicePrefix+key, strconv.FormatFloat(miles, 'f', -1, 64), ttl).Err()
}
