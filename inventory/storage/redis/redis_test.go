package redis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/inventory/storage/test"
	"github.com/redis/go-redis/v9"
)

const testPrefix = "nanoinv-test:"

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("NANOINV_REDIS_STORAGE_TEST_ADDR")
	if addr == "" {
		t.Skip("NANOINV_REDIS_STORAGE_TEST_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func cleanup(t *testing.T, client *redis.Client) {
	ctx := context.Background()
	for _, k := range []string{namesKey, quantitiesKey, savedKey} {
		if err := client.Del(ctx, testPrefix+k).Err(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRedis(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	test.TestOrderedStorage(t, func() storage.Storage {
		cleanup(t, client)
		return New(client, WithPrefix(testPrefix))
	})
}

func TestLoadMalformed(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()
	cleanup(t, client)

	ctx := context.Background()
	client.RPush(ctx, testPrefix+namesKey, "apple")
	client.HSet(ctx, testPrefix+quantitiesKey, "apple", "lots")
	client.Set(ctx, testPrefix+savedKey, 1, 0)

	_, err := New(client, WithPrefix(testPrefix)).Load(ctx)
	if !errors.Is(err, storage.ErrMalformed) {
		t.Errorf("want: %v, have: %v", storage.ErrMalformed, err)
	}
}
