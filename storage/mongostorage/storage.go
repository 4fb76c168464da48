package mongostorage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnector/schemas"
	"devconnector/storage"
)

const collName = "posts"

type Storage struct {
	postsCollection *mongo.Collection
}

func NewStorage(mongoURL string, mongoName string) *Storage {
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		panic(err)
	}

	postsCollection := client.Database(mongoName).Collection(collName)

	ensureIndexes(ctx, postsCollection)

	return &Storage{
		postsCollection: postsCollection,
	}
}

func ensureIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModels := mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	}
	_, err := collection.Indexes().CreateOne(ctx, indexModels)
	if err != nil {
		panic(fmt.Errorf("failed to ensure indexes %w", err))
	}
}

func (s *Storage) GetPost(ctx context.Context, postId schemas.PostId) (*schemas.Post, error) {
	var post schemas.Post
	err := s.postsCollection.FindOne(ctx, bson.M{"_id": postId}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: post %s", storage.ErrNotFound, postId.Hex())
		}
		return nil, fmt.Errorf("failed to extract, cause %s", err.Error())
	}
	return &post, nil
}

func (s *Storage) ListPosts(ctx context.Context) ([]*schemas.Post, error) {
	filterOptions := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.postsCollection.Find(ctx, bson.M{}, filterOptions)
	if err != nil {
		return nil, fmt.Errorf("search failed: %s", err.Error())
	}

	var postList []*schemas.Post
	if err = cursor.All(ctx, &postList); err != nil {
		return nil, fmt.Errorf("posts mapping failed: %s", err.Error())
	}
	return postList, nil
}

// SavePost upserts the whole aggregate. A single ReplaceOne is atomic per
// document, which is the only write guarantee callers rely on.
func (s *Storage) SavePost(ctx context.Context, post *schemas.Post) (*schemas.Post, error) {
	mongoOpts := options.Replace().SetUpsert(true)
	_, err := s.postsCollection.ReplaceOne(ctx, bson.M{"_id": post.ID}, post, mongoOpts)
	if err != nil {
		return nil, fmt.Errorf("replace failed: %s", err.Error())
	}
	return post, nil
}

func (s *Storage) DeletePost(ctx context.Context, postId schemas.PostId) error {
	result, err := s.postsCollection.DeleteOne(ctx, bson.M{"_id": postId})
	if err != nil {
		return fmt.Errorf("delete failed: %s", err.Error())
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: post %s", storage.ErrNotFound, postId.Hex())
	}
	return nil
}
