package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type payload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	in := payload{Name: "S&P 500", Price: 5123.45}
	if err := mc.Set(ctx, "quote", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	if err := mc.Get(ctx, "quote", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out payload
	if err := mc.Get(context.Background(), "absent", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("got %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	var out string
	if err := mc.Get(ctx, "k", &out); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("got %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheDeleteAndExists(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "k", "v", time.Minute)
	if ok, _ := mc.Exists(ctx, "k"); !ok {
		t.Error("expected key to exist")
	}
	_ = mc.Delete(ctx, "k")
	if ok, _ := mc.Exists(ctx, "k"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	_ = mc.Set(ctx, "a", "1", time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "b", "2", time.Minute)
	time.Sleep(time.Millisecond)
	_ = mc.Set(ctx, "c", "3", time.Minute) // evicts "a", the least recently used

	if ok, _ := mc.Exists(ctx, "a"); ok {
		t.Error("expected oldest key to be evicted")
	}
	if ok, _ := mc.Exists(ctx, "c"); !ok {
		t.Error("expected newest key to survive")
	}
}

func TestGenerateKey(t *testing.T) {
	k1 := GenerateKeyWithParams("chart", "^GSPC", "ytd")
	k2 := GenerateKeyWithParams("chart", "^GSPC", "1y")
	if k1 == k2 {
		t.Error("keys for different periods must differ")
	}
}
