package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-backend/internal/config"
	"portfolio-backend/pkg/kvstore"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisClient giữ connection dùng chung cho reading progress, contact rate limit và /api/health.
// asynq tự mở connection riêng (queue.RedisOpt).
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	return &RedisClient{
		Client: redis.NewClient(&redis.Options{
			Addr:         cfg.Host,
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			MaxRetries:   3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Connect ping một lần, caller quyết định lỗi có chặn startup hay không
func (r *RedisClient) Connect(ctx context.Context) error {
	opts := r.Client.Options()
	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("[REDIS] Connecting...")

	if err := r.HealthCheck(ctx); err != nil {
		return err
	}

	log.Info().Msg("[REDIS] Connected")
	return nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client is not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// KV trả về kvstore.Store trên connection này
func (r *RedisClient) KV() kvstore.Store {
	return kvstore.NewRedisStore(r.Client)
}

func (r *RedisClient) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
