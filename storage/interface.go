package storage

import (
	"context"
	"errors"
	"fmt"

	"devconnector/schemas"
)

var (
	StorageError = errors.New("storage")
	ErrNotFound  = fmt.Errorf("%w.not_found", StorageError)
)

// PostStorage is a single-document store for post aggregates. SavePost
// replaces the whole aggregate atomically; there are no multi-document
// guarantees.
type PostStorage interface {
	GetPost(ctx context.Context, postId schemas.PostId) (*schemas.Post, error)
	ListPosts(ctx context.Context) ([]*schemas.Post, error)
	SavePost(ctx context.Context, post *schemas.Post) (*schemas.Post, error)
	DeletePost(ctx context.Context, postId schemas.PostId) error
}
