package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/singleflight"
)

func TestMemoryExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := c.Get(ctx, "k"); !ok || string(v) != "v" {
		t.Fatalf("expected hit, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestMemoryTakeIsSingleUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewMemory()
	_ = c.Set(ctx, "token", []byte("abc"), time.Minute)

	if v, ok, _ := c.Take(ctx, "token"); !ok || string(v) != "abc" {
		t.Fatalf("first take = %q %v", v, ok)
	}
	if _, ok, _ := c.Take(ctx, "token"); ok {
		t.Fatalf("second take should miss")
	}
}

type seller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFetchLoadsOnceAndCaches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory()
	var group singleflight.Group
	var loads int32

	load := func(context.Context) (*seller, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(50 * time.Millisecond)
		return &seller{ID: "s1", Name: "Book Nook"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Fetch(ctx, store, &group, SellerKey("s1"), time.Minute, load)
			if err != nil || got.Name != "Book Nook" {
				t.Errorf("Fetch = %+v, %v", got, err)
			}
		}()
	}
	wg.Wait()

	if n := atomic.LoadInt32(&loads); n != 1 {
		t.Fatalf("expected one load for concurrent misses, got %d", n)
	}

	if _, ok, _ := store.Get(ctx, SellerKey("s1")); !ok {
		t.Fatalf("cache should be filled once Fetch returns")
	}

	got, err := Fetch(ctx, store, &group, SellerKey("s1"), time.Minute, func(context.Context) (*seller, error) {
		return nil, errors.New("should not load")
	})
	if err != nil || got.ID != "s1" {
		t.Fatalf("expected cache hit, got %+v %v", got, err)
	}
}

func TestFetchPropagatesLoadError(t *testing.T) {
	t.Parallel()

	var group singleflight.Group
	boom := errors.New("boom")
	_, err := Fetch(context.Background(), NewMemory(), &group, "k", time.Minute, func(context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
}

// slowSetStore delays every Set so a fill that outlives Fetch would land
// after the caller's Delete.
type slowSetStore struct {
	*Memory
	delay time.Duration
}

func (s slowSetStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	time.Sleep(s.delay)
	return s.Memory.Set(ctx, key, value, ttl)
}

func TestFetchInvalidationSticks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := slowSetStore{Memory: NewMemory(), delay: 20 * time.Millisecond}
	var group singleflight.Group
	key := InboxKey("u1")

	got, err := Fetch(ctx, store, &group, key, time.Minute, func(context.Context) (string, error) {
		return "old-list", nil
	})
	if err != nil || got != "old-list" {
		t.Fatalf("Fetch = %q, %v", got, err)
	}
	if err := store.Delete(ctx, key); err != nil {
		t.Fatal(err)
	}

	time.Sleep(50 * time.Millisecond)
	if v, ok, _ := store.Get(ctx, key); ok {
		t.Fatalf("cache holds %q after Delete", v)
	}

	got, err = Fetch(ctx, store, &group, key, time.Minute, func(context.Context) (string, error) {
		return "new-list", nil
	})
	if err != nil || got != "new-list" {
		t.Fatalf("Fetch after Delete = %q, %v", got, err)
	}
}

func TestFetchSharedLoadIgnoresCallerCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var group singleflight.Group
	got, err := Fetch(ctx, NewMemory(), &group, "k", time.Minute, func(ctx context.Context) (int, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("Fetch = %d, %v", got, err)
	}
}
