package posts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"devconnector/schemas"
	"devconnector/storage"
	"devconnector/validation"
)

// Notifier publishes author notifications for mutations made by other
// users. Publishing is best effort; a lost notification must not fail the
// mutation that triggered it.
type Notifier interface {
	PublishPostLiked(postId schemas.PostId, actor schemas.UserId) error
	PublishCommentAdded(postId schemas.PostId, actor schemas.UserId) error
}

// Manager owns the decision logic over post aggregates: authorization,
// like/unlike state transitions and comment membership. Every mutation is
// fetch, check state, mutate in memory, persist the whole aggregate. Two
// concurrent writers on one post can lose an update; that window is accepted,
// callers needing strict serialization must lock per aggregate themselves.
type Manager struct {
	postStorage storage.PostStorage
	notifier    Notifier
}

func NewManager(postStorage storage.PostStorage, notifier Notifier) *Manager {
	return &Manager{postStorage: postStorage, notifier: notifier}
}

func (m *Manager) CreatePost(ctx context.Context, author schemas.UserId, text, displayName, avatarURL string) (*schemas.Post, error) {
	if errs, ok := validation.ValidatePostInput(text); !ok {
		return nil, &ValidationError{Fields: errs}
	}

	newPost := &schemas.Post{
		ID:          schemas.NewPostId(),
		Content:     text,
		AuthorID:    author,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		CreatedAt:   now(),
		Likes:       []schemas.Like{},
		Comments:    []schemas.Comment{},
	}

	saved, err := m.postStorage.SavePost(ctx, newPost)
	if err != nil {
		return nil, storeFailure(err)
	}
	return saved, nil
}

func (m *Manager) GetPost(ctx context.Context, postId schemas.PostId) (*schemas.Post, error) {
	post, err := m.postStorage.GetPost(ctx, postId)
	if err != nil {
		return nil, storeFailure(err)
	}
	return post, nil
}

func (m *Manager) ListPosts(ctx context.Context) ([]*schemas.Post, error) {
	postList, err := m.postStorage.ListPosts(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return postList, nil
}

func (m *Manager) DeletePost(ctx context.Context, postId schemas.PostId, principal schemas.UserId) error {
	post, err := m.postStorage.GetPost(ctx, postId)
	if err != nil {
		return storeFailure(err)
	}

	if post.AuthorID != principal {
		return ErrUnauthorized
	}

	if err = m.postStorage.DeletePost(ctx, postId); err != nil {
		return storeFailure(err)
	}
	return nil
}

func (m *Manager) LikePost(ctx context.Context, postId schemas.PostId, principal schemas.UserId) (*schemas.Post, error) {
	post, err := m.postStorage.GetPost(ctx, postId)
	if err != nil {
		return nil, storeFailure(err)
	}

	for i := range post.Likes {
		if post.Likes[i].UserID == principal {
			return nil, ErrAlreadyLiked
		}
	}

	post.Likes = append(post.Likes, schemas.Like{UserID: principal})

	saved, err := m.postStorage.SavePost(ctx, post)
	if err != nil {
		return nil, storeFailure(err)
	}

	if principal != saved.AuthorID {
		if err = m.notifier.PublishPostLiked(saved.ID, principal); err != nil {
			log.Printf("failed to publish like notification for post %s: %s", saved.ID.Hex(), err)
		}
	}
	return saved, nil
}

func (m *Manager) UnlikePost(ctx context.Context, postId schemas.PostId, principal schemas.UserId) (*schemas.Post, error) {
	post, err := m.postStorage.GetPost(ctx, postId)
	if err != nil {
		return nil, storeFailure(err)
	}

	removeIndex := -1
	for i := range post.Likes {
		if post.Likes[i].UserID == principal {
			removeIndex = i
			break
		}
	}
	if removeIndex == -1 {
		return nil, ErrNotLiked
	}

	// at most one like per user, so the first match is the only one
	post.Likes = append(post.Likes[:removeIndex], post.Likes[removeIndex+1:]...)

	saved, err := m.postStorage.SavePost(ctx, post)
	if err != nil {
		return nil, storeFailure(err)
	}
	return saved, nil
}

func (m *Manager) AddComment(ctx context.Context, postId schemas.PostId, principal schemas.UserId, text, displayName, avatarURL string) (*schemas.Post, error) {
	if errs, ok := validation.ValidatePostInput(text); !ok {
		return nil, &ValidationError{Fields: errs}
	}

	post, err := m.postStorage.GetPost(ctx, postId)
	if err != nil {
		return nil, storeFailure(err)
	}

	newComment := schemas.Comment{
		ID:          schemas.NewCommentId(),
		Content:     text,
		AuthorID:    principal,
		DisplayName: displayName,
		AvatarURL:   avatarURL,
		CreatedAt:   now(),
	}
	post.Comments = append(post.Comments, newComment)

	saved, err := m.postStorage.SavePost(ctx, post)
	if err != nil {
		return nil, storeFailure(err)
	}

	if principal != saved.AuthorID {
		if err = m.notifier.PublishCommentAdded(saved.ID, principal); err != nil {
			log.Printf("failed to publish comment notification for post %s: %s", saved.ID.Hex(), err)
		}
	}
	return saved, nil
}

func (m *Manager) RemoveComment(ctx context.Context, postId schemas.PostId, commentId string, principal schemas.UserId) (*schemas.Post, error) {
	post, err := m.postStorage.GetPost(ctx, postId)
	if err != nil {
		return nil, storeFailure(err)
	}

	removeIndex := -1
	for i := range post.Comments {
		if post.Comments[i].ID == commentId {
			removeIndex = i
			break
		}
	}
	if removeIndex == -1 {
		return nil, ErrCommentNotFound
	}

	if post.Comments[removeIndex].AuthorID != principal {
		return nil, ErrUnauthorized
	}

	post.Comments = append(post.Comments[:removeIndex], post.Comments[removeIndex+1:]...)

	saved, err := m.postStorage.SavePost(ctx, post)
	if err != nil {
		return nil, storeFailure(err)
	}
	return saved, nil
}

func storeFailure(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %s", ErrStoreUnavailable, err.Error())
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
