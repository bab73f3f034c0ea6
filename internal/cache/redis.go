package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkurbatov/venuebooking/config"
	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	venuesTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, venuesTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		venuesTTL: venuesTTL,
	}
}

func (c *RedisCache) GetVenues(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error) {
	data, err := c.client.Get(ctx, venuesKey(venueType)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var venues []domain.Venue
	if err := json.Unmarshal(data, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func (c *RedisCache) SetVenues(ctx context.Context, venueType domain.VenueType, venues []domain.Venue) error {
	payload, err := json.Marshal(venues)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, venuesKey(venueType), payload, c.venuesTTL).Err()
}

// InvalidateVenues drops every venue list variant after an admin mutation.
func (c *RedisCache) InvalidateVenues(ctx context.Context) error {
	keys := []string{
		venuesKey(""),
		venuesKey(domain.VenueTypeIndoor),
		venuesKey(domain.VenueTypeOutdoor),
		venuesKey(domain.VenueTypePlayStation),
	}
	return c.client.Del(ctx, keys...).Err()
}

// AcquireSlotLock holds a short exclusive claim on a slot while the insert
// is in flight. The DB unique index stays the authoritative guard; the lock
// only keeps concurrent requests from both paying the insert round-trip.
func (c *RedisCache) AcquireSlotLock(ctx context.Context, venueID int64, date, timeOfDay string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, slotLockKey(venueID, date, timeOfDay), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSlotLock(ctx context.Context, venueID int64, date, timeOfDay string) error {
	return c.client.Del(ctx, slotLockKey(venueID, date, timeOfDay)).Err()
}

func (c *RedisCache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedTokenKey(jti), "revoked", ttl).Err()
}

func (c *RedisCache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	err := c.client.Get(ctx, revokedTokenKey(jti)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func venuesKey(venueType domain.VenueType) string {
	if venueType == "" {
		return "cache:venues:all"
	}
	return fmt.Sprintf("cache:venues:%s", venueType)
}

func slotLockKey(venueID int64, date, timeOfDay string) string {
	return fmt.Sprintf("lock:venue:%d:%s:%s", venueID, date, timeOfDay)
}

func revokedTokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}
