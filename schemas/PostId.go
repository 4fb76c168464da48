package schemas

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostId primitive.ObjectID

func NewPostId() PostId {
	return PostId(primitive.NewObjectID())
}

func (id PostId) Hex() string {
	return primitive.ObjectID(id).Hex()
}

func IDFromHex(s string) (PostId, error) {
	objectID, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return PostId{}, fmt.Errorf("incorrect post id %q: %s", s, err.Error())
	}
	return PostId(objectID), nil
}

// NewCommentId generates the addressing key for a freshly created comment.
func NewCommentId() string {
	return primitive.NewObjectID().Hex()
}
