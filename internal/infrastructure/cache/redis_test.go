package cache

import (
	"context"
	"testing"

	"portfolio-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient_Options(t *testing.T) {
	r := NewRedisClient(config.RedisConfig{Host: "cache.internal:6380", Password: "pw", DB: 3})
	defer r.Close()

	opts := r.Client.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.NotNil(t, r.KV())
}

func TestHealthCheck_Uninitialized(t *testing.T) {
	var r *RedisClient
	require.Error(t, r.HealthCheck(context.Background()))
	assert.NoError(t, r.Close())

	require.Error(t, (&RedisClient{}).HealthCheck(context.Background()))
}
