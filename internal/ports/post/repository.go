package post

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/paginator"
	"yatube/internal/core/post"
	groupPort "yatube/internal/ports/group"
	storagePort "yatube/internal/ports/storage"
	userPort "yatube/internal/ports/user"
)

// Filter narrows a feed. Zero value selects every post.
type Filter struct {
	AuthorID *uuid.UUID
	GroupID  *uint
	// FollowerID selects posts of every author this user follows.
	FollowerID *uuid.UUID
}

// PostRepository is the port for storing and loading posts.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	// Update writes text, group and image only.
	Update(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByAuthorAndID(ctx context.Context, username string, id uint) (*post.Post, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, filter Filter, offset, limit int) ([]*post.Post, error)
}

// DTOs for the use cases

type PostDTO struct {
	ID      uint                `json:"id"`
	Text    string              `json:"text"`
	PubDate time.Time           `json:"pub_date"`
	Author  *userPort.UserDTO   `json:"author"`
	Group   *groupPort.GroupDTO `json:"group,omitempty"`
	Image   string              `json:"image,omitempty"`
}

// FeedPage is one page of posts.
type FeedPage struct {
	Posts []*PostDTO
	Page  paginator.Page
}

// PostInput carries a submitted post form. A nil field was not submitted:
// creating treats it as empty, editing keeps the stored value.
type PostInput struct {
	Text *string `form:"text"`
	// Group is the submitted group id, "" for no group.
	Group *string `form:"group"`
	Image *storagePort.Upload `form:"-"`
}

func NewPostDTO(p *post.Post) *PostDTO {
	if p == nil {
		return nil
	}
	dto := &PostDTO{
		ID:      p.ID,
		Text:    p.Text,
		PubDate: p.PubDate,
		Author:  userPort.NewUserDTO(&p.Author),
		Group:   groupPort.NewGroupDTO(p.Group),
		Image:   p.Image,
	}
	return dto
}

func NewPostDTOs(posts []*post.Post) []*PostDTO {
	dtos := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, NewPostDTO(p))
	}
	return dtos
}
