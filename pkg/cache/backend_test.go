package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// Shared backends are exercised only when a server is available:
//
//	TOPICNET_TEST_REDIS_ADDR=localhost:6379 TOPICNET_TEST_MONGO_URI=mongodb://localhost:27017 go test ./pkg/cache

func exerciseBackend(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	key := "test:" + t.Name()

	_ = c.Delete(ctx, key)
	if _, hit, err := c.Get(ctx, key); err != nil || hit {
		t.Fatalf("Get before Set = hit %v err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "payload" {
		t.Fatalf("Get after Set = %q hit %v err %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TOPICNET_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TOPICNET_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr, Prefix: "topicnet-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("TOPICNET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TOPICNET_TEST_MONGO_URI not set")
	}
	c, err := NewMongoCache(context.Background(), MongoOptions{URI: uri, Database: "topicnet_test"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	exerciseBackend(t, c)
}
