package comment

import (
	"context"
	"time"

	"yatube/internal/core/comment"
	userPort "yatube/internal/ports/user"
)

// CommentRepository is the port for storing and loading comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *comment.Comment) (*comment.Comment, error)
	// FindByPostID returns the comments of a post, oldest first.
	FindByPostID(ctx context.Context, postID uint) ([]*comment.Comment, error)
}

type CommentDTO struct {
	ID      uint              `json:"id"`
	PostID  uint              `json:"post_id"`
	Text    string            `json:"text"`
	Author  *userPort.UserDTO `json:"author"`
	Created time.Time         `json:"created"`
}

type CommentInput struct {
	Text string `form:"text" validate:"notblank"`
}

func NewCommentDTO(c *comment.Comment) *CommentDTO {
	dto := &CommentDTO{
		ID:      c.ID,
		Text:    c.Text,
		Author:  userPort.NewUserDTO(&c.Author),
		Created: c.Created,
	}
	if c.PostID != nil {
		dto.PostID = *c.PostID
	}
	return dto
}
