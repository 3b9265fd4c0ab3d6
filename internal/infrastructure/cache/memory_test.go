package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stylerag/backend/internal/domain"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value []byte
		ttl   time.Duration
	}{
		{
			name:  "store and retrieve bytes",
			key:   "test-key-1",
			value: []byte("test-value"),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store and retrieve catalog snapshot",
			key:   "catalog:/tmp/catalog.csv:1:2",
			value: []byte(`[{"name":"CASUAL SHIRT","price":1999}]`),
			ttl:   1 * time.Minute,
		},
		{
			name:  "store empty value",
			key:   "test-key-3",
			value: []byte{},
			ttl:   1 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := cache.Set(ctx, tt.key, tt.value, tt.ttl); err != nil {
				t.Fatalf("Set() error = %v", err)
			}

			got, err := cache.Get(ctx, tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != string(tt.value) {
				t.Errorf("Get() = %q, want %q", got, tt.value)
			}
		})
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	value := []byte("denim")
	if err := cache.Set(ctx, "key", value, time.Minute); err != nil {
		t.Fatal(err)
	}
	value[0] = 'D'

	got, _ := cache.Get(ctx, "key")
	if string(got) != "denim" {
		t.Errorf("stored value changed through caller slice: %q", got)
	}

	got[0] = 'X'
	again, _ := cache.Get(ctx, "key")
	if string(again) != "denim" {
		t.Errorf("stored value changed through returned slice: %q", again)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	key := "expiring-key"
	if err := cache.Set(ctx, key, []byte("value"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if _, err := cache.Get(ctx, key); err != nil {
		t.Errorf("Get() before expiration error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	_, err := cache.Get(ctx, key)
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() after expiration error = %v, want ErrCacheMiss", err)
	}

	exists, _ := cache.Exists(ctx, key)
	if exists {
		t.Error("Exists() after expiration = true, want false")
	}
}

func TestMemoryCache_GetNonExistent(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()

	_, err := cache.Get(context.Background(), "non-existent-key")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	key := "delete-test"
	_ = cache.Set(ctx, key, []byte("value"), 1*time.Minute)

	if exists, _ := cache.Exists(ctx, key); !exists {
		t.Error("Key should exist before delete")
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}

	if exists, _ := cache.Exists(ctx, key); exists {
		t.Error("Key should not exist after delete")
	}
}

func TestMemoryCache_RemoveExpired(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("a"), time.Millisecond)
	_ = cache.Set(ctx, "long", []byte("b"), time.Hour)

	cache.removeExpired(time.Now().Add(time.Second))

	if cache.Size() != 1 {
		t.Errorf("Size() = %d, want 1", cache.Size())
	}
	if exists, _ := cache.Exists(ctx, "long"); !exists {
		t.Error("unexpired key was removed")
	}
}

func TestMemoryCache_SizeAndClear(t *testing.T) {
	cache := NewMemoryCache()
	defer cache.Close()
	ctx := context.Background()

	if cache.Size() != 0 {
		t.Errorf("Initial Size() = %d, want 0", cache.Size())
	}

	_ = cache.Set(ctx, "key1", []byte("value1"), 1*time.Minute)
	_ = cache.Set(ctx, "key2", []byte("value2"), 1*time.Minute)
	_ = cache.Set(ctx, "key3", []byte("value3"), 1*time.Minute)

	if cache.Size() != 3 {
		t.Errorf("Size() = %d, want 3", cache.Size())
	}

	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Size() after Clear() = %d, want 0", cache.Size())
	}
}

func TestMemoryCache_CloseIsIdempotent(t *testing.T) {
	cache := NewMemoryCache()
	if err := cache.Close(); err != nil {
		t.Fatal(err)
	}
	if err := cache.Close(); err != nil {
		t.Fatal(err)
	}
}
