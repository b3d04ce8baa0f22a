package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/encounter-engine/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "encounter:"

// RedisStorage keeps encounter records in Redis as JSON with a TTL.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis-backed store. redisURL may be a bare
// host:port or a redis:// URL.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opts := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		var err error
		opts, err = redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
	}

	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
		ttl:    ttl,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection pings Redis until it answers, the context ends, or
// the retry budget runs out.
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStorage) SaveRecord(ctx context.Context, rec *storage.Record) error {
	if rec == nil {
		return errors.New("record cannot be nil")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		r.logger.Error("Failed to marshal record", "id", rec.ID, "error", err)
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+rec.ID.String(), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save record", "id", rec.ID, "error", err)
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadRecord(ctx context.Context, id uuid.UUID) (*storage.Record, error) {
	data, err := r.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Record not found", "id", id)
			return nil, nil
		}
		r.logger.Error("Failed to load record", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load record: %w", err)
	}

	var rec storage.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.Error("Failed to unmarshal record", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &rec, nil
}

func (r *RedisStorage) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		r.logger.Error("Failed to delete record", "id", id, "error", err)
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
