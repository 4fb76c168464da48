package notifications

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnector/schemas"
)

const (
	KindPostLiked    = "post_liked"
	KindCommentAdded = "comment_added"
)

// Notification is what a post author sees when another user likes or
// comments on one of their posts.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id"`
	Recipient schemas.UserId     `bson:"recipient"`
	Actor     schemas.UserId     `bson:"actor"`
	PostID    schemas.PostId     `bson:"postId"`
	Kind      string             `bson:"kind"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type NotificationData struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	PostID    string `json:"postId"`
	Kind      string `json:"kind"`
	CreatedAt string `json:"createdAt"`
}

func (n *Notification) ToNotificationData() NotificationData {
	return NotificationData{
		ID:        n.ID.Hex(),
		Actor:     string(n.Actor),
		PostID:    n.PostID.Hex(),
		Kind:      n.Kind,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type Storage struct {
	notificationsCollection *mongo.Collection
}

func NewStorage(ctx context.Context, mongoUrl, dbName string) *Storage {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoUrl))
	if err != nil {
		panic(fmt.Sprintf("connect to mongo failed: %s", err))
	}

	notificationsCollection := mongoClient.Database(dbName).Collection("notifications")
	err = ensureIndexes(ctx, notificationsCollection)
	if err != nil {
		panic(fmt.Sprintf("failed ensure index: %s", err))
	}

	return &Storage{notificationsCollection: notificationsCollection}
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "_id", Value: -1}},
	})
	return err
}

func (s *Storage) PutNotification(ctx context.Context, recipient, actor schemas.UserId, postId schemas.PostId, kind string) error {
	notification := &Notification{
		ID:        primitive.NewObjectID(),
		Recipient: recipient,
		Actor:     actor,
		PostID:    postId,
		Kind:      kind,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	_, err := s.notificationsCollection.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("notification insertion failed: %s", err.Error())
	}
	return nil
}

func (s *Storage) ListForUser(ctx context.Context, userId schemas.UserId) ([]*Notification, error) {
	mongoQuery := bson.M{"recipient": string(userId)}
	filterOptions := options.Find().SetSort(bson.M{"_id": -1})
	cursor, err := s.notificationsCollection.Find(ctx, mongoQuery, filterOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo search failed: %s", err.Error())
	}

	var notificationList []*Notification
	err = cursor.All(ctx, &notificationList)
	if err != nil {
		return nil, fmt.Errorf("notifications mapping failed: %s", err.Error())
	}
	return notificationList, nil
}
