package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foundry-monitor/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	defaultTTL     = time.Hour
	maxRecentItems = 1000
)

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RedisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(ctx context.Context, opts Options) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &RedisClient{
		client: client,
		ttl:    ttl,
	}, nil
}

func readingKey(r models.Reading) string {
	return fmt.Sprintf("reading:%s:%d", r.EquipmentID, r.Timestamp.UnixNano())
}

func recentKey(equipmentID string) string {
	return "readings:recent:" + equipmentID
}

func (r *RedisClient) StoreReading(ctx context.Context, reading models.Reading) error {
	key := readingKey(reading)

	data, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reading in Redis: %w", err)
	}

	listKey := recentKey(reading.EquipmentID)
	if err := r.client.LPush(ctx, listKey, key).Err(); err != nil {
		return fmt.Errorf("failed to update recent readings list: %w", err)
	}

	// Cap the list; entries past the TTL are skipped on read
	if err := r.client.LTrim(ctx, listKey, 0, maxRecentItems-1).Err(); err != nil {
		return fmt.Errorf("failed to trim recent readings list: %w", err)
	}

	return nil
}

// GetRecentReadings returns up to count readings for a machine, newest first.
func (r *RedisClient) GetRecentReadings(ctx context.Context, equipmentID string, count int64) ([]models.Reading, error) {
	if count <= 0 {
		return []models.Reading{}, nil
	}

	keys, err := r.client.LRange(ctx, recentKey(equipmentID), 0, count-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reading keys: %w", err)
	}

	readings := make([]models.Reading, 0, len(keys))
	for _, key := range keys {
		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			continue // expired or evicted
		}

		var reading models.Reading
		if err := json.Unmarshal([]byte(data), &reading); err != nil {
			continue
		}

		readings = append(readings, reading)
	}

	return readings, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
