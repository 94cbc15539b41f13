package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tcg-card-studio/internal/logging"
)

func TestContentKey(t *testing.T) {
	a := ContentKey("user-1", "image", []byte("same bytes"))
	b := ContentKey("user-1", "image", []byte("same bytes"))
	c := ContentKey("user-2", "image", []byte("same bytes"))
	d := ContentKey("user-1", "image", []byte("other bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	// user + kind + 64 hex chars
	assert.Len(t, a, len("user-1:image:")+64)
}

func TestLRU_EvictsOldest(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)
	ctx := context.Background()

	c.Set(ctx, "a", "https://x/a.png")
	c.Set(ctx, "b", "https://x/b.png")
	c.Set(ctx, "c", "https://x/c.png")

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok)
	url, ok := c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, "https://x/c.png", url)
	assert.Equal(t, 2, c.Len())
}

func TestRedis_SetGetExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedis(client, time.Minute, logging.Discard())
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", "https://x/k.png")
	url, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "https://x/k.png", url)
	assert.True(t, mr.Exists("upload-url:k"))

	mr.FastForward(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedis_UnavailableIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedis(client, time.Minute, logging.Discard())
	mr.Close()

	c.Set(context.Background(), "k", "https://x/k.png")
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestNewRedisFromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisFromURL(context.Background(), "redis://"+mr.Addr(), time.Minute, logging.Discard())
	require.NoError(t, err)
	defer c.Close()

	_, err = NewRedisFromURL(context.Background(), "not a url", time.Minute, logging.Discard())
	assert.Error(t, err)
}
