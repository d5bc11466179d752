package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// InboxChannelPrefix is followed by the user id on the channel the messaging
// backend publishes to whenever that user's conversations change.
const InboxChannelPrefix = "inbox:"

type RedisStore struct {
	client *redis.Client
}

// Connect accepts either a redis:// URL or a bare host:port.
func Connect(ctx context.Context, addr, username, password string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr, Username: username, Password: password}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	log.Println("✅ Redis connected successfully")
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// SubscribeInbox streams the user ids whose conversations changed until ctx
// is done.
func (s *RedisStore) SubscribeInbox(ctx context.Context) <-chan string {
	out := make(chan string, 64)
	sub := s.client.PSubscribe(ctx, InboxChannelPrefix+"*")

	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				userID := strings.TrimPrefix(msg.Channel, InboxChannelPrefix)
				if userID == "" {
					continue
				}
				select {
				case out <- userID:
				default:
					log.Printf("⚠️ Inbox notification dropped for %s, subscriber is behind", userID)
				}
			}
		}
	}()
	return out
}

// PublishInboxChange is what the messaging backend calls; the seed tool uses it too.
func (s *RedisStore) PublishInboxChange(ctx context.Context, userID string) error {
	return s.client.Publish(ctx, InboxChannelPrefix+userID, "changed").Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
