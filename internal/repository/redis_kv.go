package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	// redisScanBatch is the COUNT hint passed to SCAN.
	redisScanBatch = 100

	// redisUpdateAttempts bounds the WATCH retries of a contended Update.
	redisUpdateAttempts = 100
)

// RedisKV is a KVStore backed by a redis server.
type RedisKV struct {
	client redis.UniversalClient
}

// NewRedisKV creates a redis client for addr.
func NewRedisKV(addr, password string, db int) *RedisKV {
	return NewRedisKVFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewRedisKVFromClient wraps an existing client.
func NewRedisKVFromClient(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

// Get returns the value stored at key.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return val, true, nil
}

// Set stores value at key without expiration.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", key, err)
	}
	return nil
}

// Keys scans for keys starting with prefix.
func (r *RedisKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, prefix+"*", redisScanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan redis keys with prefix %s: %w", prefix, err)
	}
	return keys, nil
}

// Update watches key and applies fn's writes in a MULTI/EXEC transaction,
// retrying when another client changed key in between.
func (r *RedisKV) Update(ctx context.Context, key string, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			current, found = nil, false
		} else if err != nil {
			return err
		}

		value, batch, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for k, v := range batch.Sets {
				pipe.Set(ctx, k, v, 0)
			}
			if len(batch.Deletes) > 0 {
				pipe.Del(ctx, batch.Deletes...)
			}
			if value == nil {
				pipe.Del(ctx, key)
			} else {
				pipe.Set(ctx, key, value, 0)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < redisUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to update %s in redis: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("failed to update %s in redis after %d attempts: %w", key, redisUpdateAttempts, redis.TxFailedErr)
}

// Ping verifies the redis connection.
func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
