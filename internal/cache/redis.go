package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avidato/farehold/config"
	"github.com/avidato/farehold/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds dashboard listings per status filter. Every store write
// invalidates all listing keys so the next read reflects the change.
type RedisCache struct {
	client      *redis.Client
	requestsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, requestsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		requestsTTL: requestsTTL,
	}
}

func (c *RedisCache) GetRequests(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error) {
	data, err := c.client.Get(ctx, requestsKey(status)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var requests []domain.FlightRequest
	if err := json.Unmarshal(data, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *RedisCache) SetRequests(ctx context.Context, status domain.RequestStatus, requests []domain.FlightRequest) error {
	payload, err := json.Marshal(requests)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, requestsKey(status), payload, c.requestsTTL).Err()
}

// InvalidateRequests drops every listing key, filtered and unfiltered.
func (c *RedisCache) InvalidateRequests(ctx context.Context) error {
	keys := []string{requestsKey("")}
	for _, s := range []domain.RequestStatus{
		domain.StatusActive, domain.StatusHeld, domain.StatusQueued,
		domain.StatusSuccess, domain.StatusError,
	} {
		keys = append(keys, requestsKey(s))
	}
	return c.client.Del(ctx, keys...).Err()
}

func requestsKey(status domain.RequestStatus) string {
	if status == "" {
		return "cache:flight_requests:all"
	}
	return fmt.Sprintf("cache:flight_requests:%s", status)
}
