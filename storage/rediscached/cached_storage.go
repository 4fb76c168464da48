package rediscached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"devconnector/schemas"
	"devconnector/storage"
)

// CachedStorage decorates a persistent PostStorage with a TTL cache for
// single aggregates and for the newest-first listing. Every write goes to
// the persistent storage first; the listing cache is dropped on any write
// because whole-aggregate replaces invalidate it wholesale.
type CachedStorage struct {
	persistentStorage storage.PostStorage
	client            *redis.Client
	cacheTTL          time.Duration
}

func NewCachedStorage(persistentStorage storage.PostStorage, client *redis.Client, cacheTTL time.Duration) *CachedStorage {
	return &CachedStorage{
		persistentStorage: persistentStorage,
		client:            client,
		cacheTTL:          cacheTTL,
	}
}

func (cs *CachedStorage) GetPost(ctx context.Context, postId schemas.PostId) (*schemas.Post, error) {
	postKey := cs.getKeyForPost(postId)

	cached, err := cs.client.Get(ctx, postKey).Result()
	if err == nil {
		var post schemas.Post
		if err = json.Unmarshal([]byte(cached), &post); err != nil {
			return nil, fmt.Errorf("incorrect cached json:%s", err.Error())
		}
		return &post, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis error:%s", err.Error())
	}

	actualPost, err := cs.persistentStorage.GetPost(ctx, postId)
	if err != nil {
		return nil, err
	}

	if err = cs.cachePost(ctx, actualPost); err != nil {
		return nil, err
	}
	return actualPost, nil
}

func (cs *CachedStorage) ListPosts(ctx context.Context) ([]*schemas.Post, error) {
	cached, err := cs.client.Get(ctx, cs.getKeyForListing()).Result()
	if err == nil {
		var postList []*schemas.Post
		if err = json.Unmarshal([]byte(cached), &postList); err != nil {
			return nil, fmt.Errorf("incorrect cached json:%s", err.Error())
		}
		return postList, nil
	}
	if !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("redis error:%s", err.Error())
	}

	postList, err := cs.persistentStorage.ListPosts(ctx)
	if err != nil {
		return nil, err
	}

	marshalled, err := json.Marshal(postList)
	if err != nil {
		return nil, fmt.Errorf("marshalling failed: %s", err.Error())
	}
	if err = cs.client.Set(ctx, cs.getKeyForListing(), marshalled, cs.cacheTTL).Err(); err != nil {
		return nil, fmt.Errorf("redis error:%s", err.Error())
	}
	return postList, nil
}

func (cs *CachedStorage) SavePost(ctx context.Context, post *schemas.Post) (*schemas.Post, error) {
	saved, err := cs.persistentStorage.SavePost(ctx, post)
	if err != nil {
		return nil, err
	}

	if err = cs.cachePost(ctx, saved); err != nil {
		return nil, err
	}
	if err = cs.client.Del(ctx, cs.getKeyForListing()).Err(); err != nil {
		return nil, fmt.Errorf("redis failed delete: %s", err.Error())
	}
	return saved, nil
}

func (cs *CachedStorage) DeletePost(ctx context.Context, postId schemas.PostId) error {
	if err := cs.persistentStorage.DeletePost(ctx, postId); err != nil {
		return err
	}

	if err := cs.client.Del(ctx, cs.getKeyForPost(postId), cs.getKeyForListing()).Err(); err != nil {
		return fmt.Errorf("redis failed delete: %s", err.Error())
	}
	return nil
}

func (cs *CachedStorage) cachePost(ctx context.Context, post *schemas.Post) error {
	marshalled, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshalling failed: %s", err.Error())
	}
	if err = cs.client.Set(ctx, cs.getKeyForPost(post.ID), marshalled, cs.cacheTTL).Err(); err != nil {
		return fmt.Errorf("redis error:%s", err.Error())
	}
	return nil
}

func (cs *CachedStorage) getKeyForPost(postID schemas.PostId) string {
	return fmt.Sprintf("dvc:posts:%s", postID.Hex())
}

func (cs *CachedStorage) getKeyForListing() string {
	return "dvc:posts:listing"
}
