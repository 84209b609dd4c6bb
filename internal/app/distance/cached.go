package distance

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache хранит найденные расстояния, реализуется клиентом redis
type Cache interface {
	GetDistance(ctx context.Context, key string) (float64, bool, error)
	SetDistance(ctx context.Context, key string, miles float64, ttl time.Duration) error
}

// Cached отдает повторные запросы из кэша и обращается к next только при промахе
type Cached struct {
	next  Resolver
	cache Cache
	ttl   time.Duration
}

func NewCached(next Resolver, cache Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl}
}

func (c *Cached) Resolve(ctx context.Context, origin, destination string) (float64, error) {
	key := CacheKey(origin, destination)

	miles, ok, err := c.cache.GetDistance(ctx, key)
	if err != nil {
		logrus.WithError(err).Warn("distance cache read failed")
	} else if ok {
		return miles, nil
	}

	miles, err = c.next.Resolve(ctx, origin, destination)
	if err != nil {
		return 0, err
	}

	if err := c.cache.SetDistance(ctx, key, miles, c.ttl); err != nil {
		logrus.WithError(err).Warn("distance cache write failed")
	}
	return miles, nil
}

func CacheKey(origin, destination string) string {
	sum := sha1.Sum([]byte(NormalizeAddress(origin) + "|" + NormalizeAddress(destination)))
	return "distance:" + hex.EncodeToString(sum[:])
}
