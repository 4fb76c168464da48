package schemas

import (
	"time"
)

type UserId string

type Post struct {
	ID          PostId    `bson:"_id"`
	Content     string    `bson:"text"`
	AuthorID    UserId    `bson:"authorId"`
	DisplayName string    `bson:"displayName"`
	AvatarURL   string    `bson:"avatarUrl"`
	CreatedAt   time.Time `bson:"createdAt"`
	Likes       []Like    `bson:"likes"`
	Comments    []Comment `bson:"comments"`
}

type Like struct {
	UserID UserId `bson:"userId"`
}

type Comment struct {
	ID          string    `bson:"id"`
	Content     string    `bson:"text"`
	AuthorID    UserId    `bson:"authorId"`
	DisplayName string    `bson:"displayName"`
	AvatarURL   string    `bson:"avatarUrl"`
	CreatedAt   time.Time `bson:"createdAt"`
}

// Wire representations. Field names are fixed for client compatibility.

type PostData struct {
	ID          string        `json:"id"`
	Content     string        `json:"text"`
	AuthorID    string        `json:"authorId"`
	DisplayName string        `json:"displayName"`
	AvatarURL   string        `json:"avatarUrl"`
	CreatedAt   string        `json:"createdAt"`
	Likes       []LikeData    `json:"likes"`
	Comments    []CommentData `json:"comments"`
}

type LikeData struct {
	UserID string `json:"userId"`
}

type CommentData struct {
	ID          string `json:"id"`
	Content     string `json:"text"`
	AuthorID    string `json:"authorId"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
	CreatedAt   string `json:"createdAt"`
}

func (p *Post) ToPostData() PostData {
	likes := make([]LikeData, len(p.Likes))
	for i := range p.Likes {
		likes[i] = LikeData{UserID: string(p.Likes[i].UserID)}
	}

	comments := make([]CommentData, len(p.Comments))
	for i := range p.Comments {
		comments[i] = p.Comments[i].ToCommentData()
	}

	return PostData{
		ID:          p.ID.Hex(),
		Content:     p.Content,
		AuthorID:    string(p.AuthorID),
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		Likes:       likes,
		Comments:    comments,
	}
}

func (c *Comment) ToCommentData() CommentData {
	return CommentData{
		ID:          c.ID,
		Content:     c.Content,
		AuthorID:    string(c.AuthorID),
		DisplayName: c.DisplayName,
		AvatarURL:   c.AvatarURL,
		CreatedAt:   c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Copy returns a deep copy so callers may mutate the likes and comments
// slices without aliasing the original.
func (p Post) Copy() *Post {
	likes := make([]Like, len(p.Likes))
	copy(likes, p.Likes)
	comments := make([]Comment, len(p.Comments))
	copy(comments, p.Comments)
	p.Likes = likes
	p.Comments = comments
	return &p
}
