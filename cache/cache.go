package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is the byte-level cache shared by the Redis and in-memory backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Take returns the value and removes it in one step.
	Take(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, keys ...string) error
}

func SellerKey(sellerID string) string {
	return fmt.Sprintf("seller:%s", sellerID)
}

func InboxKey(userID string) string {
	return fmt.Sprintf("inbox:%s:conversations", userID)
}

// Fetch reads key from store, falling back to load on a miss. Concurrent
// misses for the same key share one load through group. The cache is written
// before any caller returns, so a Delete issued after Fetch always sticks. A
// failed write is logged and does not fail the read.
//
// The shared load outlives a cancelled caller: other callers wait on it too.
func Fetch[T any](ctx context.Context, store Store, group *singleflight.Group, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var zero T

	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		log.Printf("⚠️ Dropping undecodable cache entry %s", key)
	} else if err != nil {
		log.Printf("⚠️ Cache read failed for %s: %v", key, err)
	}

	shared := context.WithoutCancel(ctx)
	res, err, _ := group.Do(key, func() (interface{}, error) {
		v, err := load(shared)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(v)
		if err != nil {
			log.Printf("⚠️ Not caching %s: %v", key, err)
			return v, nil
		}
		fillCtx, cancel := context.WithTimeout(shared, 2*time.Second)
		defer cancel()
		if err := store.Set(fillCtx, key, data, ttl); err != nil {
			log.Printf("⚠️ Failed to cache %s: %v", key, err)
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	return res.(T), nil
}
