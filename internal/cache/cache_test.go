package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client = nil })
	return mr
}

func TestGetSetJSONRoundTrip(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	in := cachedThing{ID: 7, Title: "hello"}
	require.NoError(t, SetJSON(ctx, PostKey(7), in, PostTTL))

	var out cachedThing
	found, err := GetJSON(ctx, PostKey(7), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSONMiss(t *testing.T) {
	withTestRedis(t)

	var out cachedThing
	found, err := GetJSON(context.Background(), PostKey(404), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideFetchesOnceThenServesFromCache(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			calls++
			*dest = cachedThing{ID: 1, Title: "fetched"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, FeedKey("latest"), &first, FeedTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fetched", first.Title)

	var second cachedThing
	require.NoError(t, Aside(ctx, FeedKey("latest"), &second, FeedTTL, fetch(&second)))
	assert.Equal(t, 1, calls, "second read must come from cache")
	assert.Equal(t, "fetched", second.Title)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	withTestRedis(t)

	boom := errors.New("db down")
	var out cachedThing
	err := Aside(context.Background(), FeedKey("trend"), &out, FeedTTL, func() error { return boom })
	assert.ErrorIs(t, err, boom)

	// Nothing must be cached after a failed fetch.
	found, err := GetJSON(context.Background(), FeedKey("trend"), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidateFeeds(t *testing.T) {
	mr := withTestRedis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, FeedKey("trend"), cachedThing{ID: 1}, FeedTTL))
	require.NoError(t, SetJSON(ctx, FeedKey("latest"), cachedThing{ID: 2}, FeedTTL))

	InvalidateFeeds(ctx)

	assert.False(t, mr.Exists(FeedKey("trend")))
	assert.False(t, mr.Exists(FeedKey("latest")))
}

func TestNilClientIsSafe(t *testing.T) {
	client = nil
	ctx := context.Background()

	var out cachedThing
	found, err := GetJSON(ctx, PostKey(1), &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, PostKey(1), out, PostTTL))
	Invalidate(ctx, PostKey(1))

	calls := 0
	require.NoError(t, Aside(ctx, PostKey(1), &out, PostTTL, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls)
}
