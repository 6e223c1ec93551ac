package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stat cache keys
const (
	SalesReportKey    = "report:sales"
	TrainingStatsKey  = "stats:training"
	ServiceStatsKey   = "stats:service"
	StatsTTL          = 2 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. The backend degrades gracefully
// when Redis is unreachable: caching calls become no-ops.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when cache is disabled)
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for the auth cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	userID, err := client.Get(ctx, hashCredentials(email, password)).Int64()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes to skip bcrypt
func CacheAuth(ctx context.Context, email, password string, userID int64) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth drops the cached credentials for an email prefix scan
// after a password change or account suspension.
func InvalidateAuth(ctx context.Context, email string) {
	if client == nil {
		return
	}
	// Credential keys are salted with the password, so flush the whole
	// auth namespace; keys are short-lived anyway.
	iter := client.Scan(ctx, 0, "auth:*", 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// GetJSON loads a cached JSON value into dest, reporting a hit.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a JSON value with a TTL; errors are ignored.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateStats drops the cached report aggregates after a mutation.
func InvalidateStats(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, SalesReportKey, TrainingStatsKey, ServiceStatsKey)
}
