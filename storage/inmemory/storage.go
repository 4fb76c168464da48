package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"devconnector/schemas"
	"devconnector/storage"
)

type MemoryStorage struct {
	mu sync.RWMutex

	postById map[schemas.PostId]*schemas.Post
}

func NewInMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		postById: map[schemas.PostId]*schemas.Post{},
	}
}

func (s *MemoryStorage) GetPost(_ context.Context, postId schemas.PostId) (*schemas.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.postById[postId]
	if !ok {
		return nil, fmt.Errorf("%w: post %s", storage.ErrNotFound, postId.Hex())
	}

	return post.Copy(), nil
}

func (s *MemoryStorage) ListPosts(_ context.Context) ([]*schemas.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	postList := make([]*schemas.Post, 0, len(s.postById))
	for _, post := range s.postById {
		postList = append(postList, post.Copy())
	}

	// newest first, id as tiebreak to keep the order stable
	sort.Slice(postList, func(i, j int) bool {
		if !postList[i].CreatedAt.Equal(postList[j].CreatedAt) {
			return postList[i].CreatedAt.After(postList[j].CreatedAt)
		}
		return postList[i].ID.Hex() > postList[j].ID.Hex()
	})

	return postList, nil
}

func (s *MemoryStorage) SavePost(_ context.Context, post *schemas.Post) (*schemas.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postById[post.ID] = post.Copy()
	return post.Copy(), nil
}

func (s *MemoryStorage) DeletePost(_ context.Context, postId schemas.PostId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postById[postId]; !ok {
		return fmt.Errorf("%w: post %s", storage.ErrNotFound, postId.Hex())
	}

	delete(s.postById, postId)
	return nil
}
