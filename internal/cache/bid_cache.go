package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auction-site/internal/models"

	"github.com/redis/go-redis/v9"
)

// fillScript stores a standing only while the listing's version is unchanged.
// KEYS[1] version key, KEYS[2] standing key; ARGV version, payload, ttl in ms.
var fillScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// BidCache keeps each listing's current standing in Redis for read paths.
// Writers invalidate after commit, which bumps the listing's version so a
// reader that loaded before the commit cannot store its stale result.
// Bid validation never reads from it.
type BidCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBidCache creates a cache on top of an existing client
func NewBidCache(client *redis.Client, ttl time.Duration) *BidCache {
	return &BidCache{client: client, ttl: ttl}
}

// Connect dials Redis and verifies the connection with PING
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}

func standingKey(listingID uint) string {
	return fmt.Sprintf("auction:listing:%d:standing", listingID)
}

func versionKey(listingID uint) string {
	return fmt.Sprintf("auction:listing:%d:version", listingID)
}

// Get returns the cached standing; found is false on a miss
func (c *BidCache) Get(ctx context.Context, listingID uint) (models.Standing, bool, error) {
	raw, err := c.client.Get(ctx, standingKey(listingID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Standing{}, false, nil
	}
	if err != nil {
		return models.Standing{}, false, fmt.Errorf("cache: get standing %d: %w", listingID, err)
	}

	var standing models.Standing
	if err := json.Unmarshal(raw, &standing); err != nil {
		return models.Standing{}, false, fmt.Errorf("cache: decode standing %d: %w", listingID, err)
	}
	return standing, true, nil
}

// Version returns the listing's invalidation counter; zero if never invalidated
func (c *BidCache) Version(ctx context.Context, listingID uint) (int64, error) {
	version, err := c.client.Get(ctx, versionKey(listingID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: get version %d: %w", listingID, err)
	}
	return version, nil
}

// Fill stores a standing loaded while the listing was at version. It reports
// false without storing when the listing was invalidated in the meantime.
func (c *BidCache) Fill(ctx context.Context, standing models.Standing, version int64) (bool, error) {
	raw, err := json.Marshal(standing)
	if err != nil {
		return false, fmt.Errorf("cache: encode standing %d: %w", standing.ListingID, err)
	}
	keys := []string{versionKey(standing.ListingID), standingKey(standing.ListingID)}
	stored, err := fillScript.Run(ctx, c.client, keys, version, raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache: fill standing %d: %w", standing.ListingID, err)
	}
	return stored == 1, nil
}

// Invalidate drops the cached standing of a listing and bumps its version
func (c *BidCache) Invalidate(ctx context.Context, listingID uint) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(listingID))
		pipe.Del(ctx, standingKey(listingID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache: invalidate standing %d: %w", listingID, err)
	}
	return nil
}
