package rediscached

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/schemas"
	"devconnector/storage"
	"devconnector/storage/inmemory"
)

func newTestCache(t *testing.T) (*CachedStorage, *inmemory.MemoryStorage) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	persistent := inmemory.NewInMemoryStorage()
	return NewCachedStorage(persistent, client, time.Minute), persistent
}

func newPost(text string, createdAt time.Time) *schemas.Post {
	return &schemas.Post{
		ID:        schemas.NewPostId(),
		Content:   text,
		AuthorID:  "user-a",
		CreatedAt: createdAt,
		Likes:     []schemas.Like{},
		Comments:  []schemas.Comment{},
	}
}

func TestGetPostServesFromCache(t *testing.T) {
	ctx := context.Background()
	cache, persistent := newTestCache(t)

	post := newPost("hello", time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC))
	_, err := cache.SavePost(ctx, post)
	require.NoError(t, err)

	// drop it from the persistent storage; the cache still has it
	require.NoError(t, persistent.DeletePost(ctx, post.ID))

	fetched, err := cache.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", fetched.Content)
	assert.Equal(t, post.ID, fetched.ID)
}

func TestGetPostMissFallsThrough(t *testing.T) {
	ctx := context.Background()
	cache, persistent := newTestCache(t)

	post := newPost("hello", time.Now().UTC().Truncate(time.Millisecond))
	_, err := persistent.SavePost(ctx, post)
	require.NoError(t, err)

	fetched, err := cache.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", fetched.Content)

	// second read must come from the cache
	require.NoError(t, persistent.DeletePost(ctx, post.ID))
	fetched, err = cache.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", fetched.Content)
}

func TestGetPostNotFound(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.GetPost(context.Background(), schemas.NewPostId())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveInvalidatesListing(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	base := time.Date(2023, 4, 1, 12, 0, 0, 0, time.UTC)
	_, err := cache.SavePost(ctx, newPost("first", base))
	require.NoError(t, err)

	postList, err := cache.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, postList, 1)

	_, err = cache.SavePost(ctx, newPost("second", base.Add(time.Minute)))
	require.NoError(t, err)

	postList, err = cache.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, postList, 2)
	assert.Equal(t, "second", postList[0].Content)
}

func TestDeleteEvictsPost(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t)

	post := newPost("hello", time.Now().UTC().Truncate(time.Millisecond))
	_, err := cache.SavePost(ctx, post)
	require.NoError(t, err)

	_, err = cache.GetPost(ctx, post.ID)
	require.NoError(t, err)

	require.NoError(t, cache.DeletePost(ctx, post.ID))

	_, err = cache.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	postList, err := cache.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, postList)
}

func TestCachedListingExpires(t *testing.T) {
	ctx := context.Background()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	persistent := inmemory.NewInMemoryStorage()
	cache := NewCachedStorage(persistent, client, time.Second)

	post := newPost("hello", time.Now().UTC().Truncate(time.Millisecond))
	_, err := persistent.SavePost(ctx, post)
	require.NoError(t, err)

	postList, err := cache.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, postList, 1)

	require.NoError(t, persistent.DeletePost(ctx, post.ID))
	server.FastForward(2 * time.Second)

	postList, err = cache.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, postList)
}
