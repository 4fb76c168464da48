package workers

import (
	"context"

	"devconnector/notifications"
	"devconnector/schemas"
	"devconnector/storage"
)

type NotificationTasksExecutor struct {
	postStorage          storage.PostStorage
	notificationsStorage *notifications.Storage
}

func NewNotificationTasksExecutor(postStorage storage.PostStorage, notificationsStorage *notifications.Storage) *NotificationTasksExecutor {
	return &NotificationTasksExecutor{
		postStorage:          postStorage,
		notificationsStorage: notificationsStorage,
	}
}

func (nte *NotificationTasksExecutor) ExecuteNotifyPostLiked(postId string, actor string) error {
	return nte.notify(postId, actor, notifications.KindPostLiked)
}

func (nte *NotificationTasksExecutor) ExecuteNotifyCommentAdded(postId string, actor string) error {
	return nte.notify(postId, actor, notifications.KindCommentAdded)
}

func (nte *NotificationTasksExecutor) notify(postId string, actor string, kind string) error {
	ctx := context.Background()

	postIdInSchemas, err := schemas.IDFromHex(postId)
	if err != nil {
		return err
	}

	// the post may be gone by the time the task runs; look up the author
	// at execution time, not publish time
	post, err := nte.postStorage.GetPost(ctx, postIdInSchemas)
	if err != nil {
		return err
	}

	return nte.notificationsStorage.PutNotification(ctx, post.AuthorID, schemas.UserId(actor), post.ID, kind)
}

func (nte *NotificationTasksExecutor) GetCommandsMapping() map[string]interface{} {
	return map[string]interface{}{
		"NotifyPostLiked":    nte.ExecuteNotifyPostLiked,
		"NotifyCommentAdded": nte.ExecuteNotifyCommentAdded,
	}
}
