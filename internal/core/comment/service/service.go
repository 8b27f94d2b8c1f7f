package commentapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	commentEntity "yatube/internal/core/comment"
	"yatube/internal/core/validation"
	"yatube/internal/errs"
	commentPort "yatube/internal/ports/comment"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
	}
}

// AddComment attaches a comment by actor to the post addressed by the route.
func (s *CommentService) AddComment(ctx context.Context, actor *userPort.UserDTO, username string, postID uint, in commentPort.CommentInput) (*commentPort.CommentDTO, error) {
	if actor == nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}
	authorID, err := uuid.FromString(actor.ID)
	if err != nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}

	p, err := s.PostRepository.FindByAuthorAndID(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&in); err != nil {
		config.Logger.Warn("rejected comment", zap.Uint("postID", postID), zap.String("author", actor.Username))
		return nil, err
	}

	c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
		PostID:   &p.ID,
		AuthorID: authorID,
		Text:     in.Text,
	})
	if err != nil {
		config.Logger.Error("could not create comment", zap.Uint("postID", postID), zap.Error(err))
		return nil, err
	}
	return commentPort.NewCommentDTO(c), nil
}

// ListComments returns the comments of a post, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*commentPort.CommentDTO, error) {
	comments, err := s.CommentRepository.FindByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, commentPort.NewCommentDTO(c))
	}
	return dtos, nil
}
