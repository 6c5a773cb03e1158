package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-gaming/dsr-connector/internal/config"
)

func TestNewRedisWrongType(t *testing.T) {
	client, err := NewRedis(config.Cache{Type: "memcached"})
	assert.Nil(t, client)
	assert.ErrorContains(t, err, `wrong redis type "memcached"`)
}

func TestNewRedisUnreachable(t *testing.T) {
	var cfg config.Cache
	cfg.Type = RedisTypeSingle
	cfg.Redis.Address = "127.0.0.1:1"

	client, err := NewRedis(cfg)
	require.NotNil(t, client)
	defer client.Close()

	assert.ErrorContains(t, err, "redis ping failed")
}
