package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func unreachable() *Client {
	rc := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	return NewFromClient(rc, "greenjobs:")
}

func TestClient_NilIsUnavailable(t *testing.T) {
	var c *Client
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(c.Set(ctx, "k", []byte("v"), 0), ErrUnavailable))
	assert.True(t, errors.Is(c.Delete(ctx, "k"), ErrUnavailable))
	assert.True(t, errors.Is(c.Ping(ctx), ErrUnavailable))
	assert.NoError(t, c.Close())
}

func TestClient_ConnectivityErrorsSurface(t *testing.T) {
	c := unreachable()
	defer c.Close()
	ctx := context.Background()

	_, err := c.Get(ctx, "access_token")
	assert.Error(t, err)
	assert.Error(t, c.Set(ctx, "access_token", []byte("tok"), time.Minute))
	assert.Error(t, c.Delete(ctx, "access_token"))
	assert.Error(t, c.Ping(ctx))
}

func TestClient_KeyPrefix(t *testing.T) {
	c := NewFromClient(nil, "greenjobs:")
	assert.Equal(t, "greenjobs:access_token", c.key("access_token"))
}
