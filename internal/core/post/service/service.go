package postapp

import (
	"context"
	"strconv"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/access"
	postEntity "yatube/internal/core/post"
	"yatube/internal/core/validation"
	"yatube/internal/errs"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	storagePort "yatube/internal/ports/storage"
	userPort "yatube/internal/ports/user"
)

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."

type PostService struct {
	PostRepository  postPort.PostRepository
	GroupRepository groupPort.GroupRepository
	ImageStorage    storagePort.ImageStorage
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	images storagePort.ImageStorage,
) *PostService {
	return &PostService{
		PostRepository:  postRepo,
		GroupRepository: groupRepo,
		ImageStorage:    images,
	}
}

type textForm struct {
	Text string `form:"text" validate:"notblank"`
}

// CreatePost publishes a post written by actor. Nothing is stored unless the
// whole form is valid.
func (s *PostService) CreatePost(ctx context.Context, actor *userPort.UserDTO, in postPort.PostInput) (*postPort.PostDTO, error) {
	if actor == nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}
	authorID, err := uuid.FromString(actor.ID)
	if err != nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}

	p := &postEntity.Post{AuthorID: authorID}
	if err := s.applyForm(ctx, p, in); err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			config.Logger.Warn("rejected post", zap.String("author", actor.Username), zap.Any("fields", errs.FieldErrors(err)))
		}
		return nil, err
	}
	if in.Image != nil {
		if p.Image, err = s.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
	}

	created, err := s.PostRepository.Create(ctx, p)
	if err != nil {
		config.Logger.Error("could not create post", zap.String("author", actor.Username), zap.Error(err))
		if in.Image != nil {
			s.discardImage(ctx, p.Image)
		}
		return nil, err
	}
	config.Logger.Info("post created", zap.Uint("postID", created.ID), zap.String("author", actor.Username))
	return postPort.NewPostDTO(created), nil
}

// EditPost changes the submitted fields of a post. Fields left out of the
// form keep their stored value; author and publication date never change.
func (s *PostService) EditPost(ctx context.Context, actor *userPort.UserDTO, username string, id uint, in postPort.PostInput) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByAuthorAndID(ctx, username, id)
	if err != nil {
		return nil, err
	}
	if !access.OnlyAuthor(actor, access.PostRef{Username: username, PostID: id}).Allowed {
		config.Logger.Warn("edit by non-author", zap.Uint("postID", id), zap.String("author", username))
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Only the author can edit this post.")
	}

	if err := s.applyForm(ctx, p, in); err != nil {
		return nil, err
	}
	if in.Image != nil {
		if p.Image, err = s.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
	}

	updated, err := s.PostRepository.Update(ctx, p)
	if err != nil {
		config.Logger.Error("could not update post", zap.Uint("postID", id), zap.Error(err))
		if in.Image != nil {
			s.discardImage(ctx, p.Image)
		}
		return nil, err
	}
	return postPort.NewPostDTO(updated), nil
}

// GetPost loads a post only when it belongs to username.
func (s *PostService) GetPost(ctx context.Context, username string, id uint) (*postPort.PostDTO, error) {
	p, err := s.PostRepository.FindByAuthorAndID(ctx, username, id)
	if err != nil {
		return nil, err
	}
	return postPort.NewPostDTO(p), nil
}

// CountByAuthor returns how many posts the author has written.
func (s *PostService) CountByAuthor(ctx context.Context, author *userPort.UserDTO) (int64, error) {
	authorID, err := uuid.FromString(author.ID)
	if err != nil {
		return 0, err
	}
	return s.PostRepository.Count(ctx, postPort.Filter{AuthorID: &authorID})
}

// applyForm copies the submitted fields onto p and validates the result.
// Every failing field is reported in the same error.
func (s *PostService) applyForm(ctx context.Context, p *postEntity.Post, in postPort.PostInput) error {
	fields := map[string]string{}
	if in.Text != nil {
		p.Text = *in.Text
	}
	if in.Group != nil {
		groupID, err := s.resolveGroup(ctx, *in.Group)
		if err != nil && errs.ErrorCode(err) != errs.EINVALID {
			return err
		}
		if err != nil {
			mergeFields(fields, err)
		} else {
			p.GroupID = groupID
		}
	}
	if err := validation.Struct(&textForm{Text: p.Text}); err != nil {
		if errs.ErrorCode(err) != errs.EINVALID {
			return err
		}
		mergeFields(fields, err)
	}
	if len(fields) > 0 {
		return errs.Invalid(fields)
	}
	return nil
}

func mergeFields(dst map[string]string, err error) {
	for field, msg := range errs.FieldErrors(err) {
		if _, ok := dst[field]; !ok {
			dst[field] = msg
		}
	}
}

// resolveGroup turns a submitted group id into a reference. An empty value
// detaches the post from its group.
func (s *PostService) resolveGroup(ctx context.Context, raw string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errs.Invalid(map[string]string{"group": invalidChoice})
	}
	g, err := s.GroupRepository.FindByID(ctx, uint(id))
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Invalid(map[string]string{"group": invalidChoice})
		}
		return nil, err
	}
	return &g.ID, nil
}

func (s *PostService) saveImage(ctx context.Context, upload *storagePort.Upload) (string, error) {
	path, err := s.ImageStorage.Save(ctx, upload)
	if err != nil {
		if errs.ErrorCode(err) == errs.EINVALID {
			return "", errs.Invalid(map[string]string{"image": errs.ErrorMessage(err)})
		}
		config.Logger.Error("could not store image", zap.String("filename", upload.Filename), zap.Error(err))
		return "", err
	}
	return path, nil
}

// discardImage removes an image whose post was never stored.
func (s *PostService) discardImage(ctx context.Context, name string) {
	if err := s.ImageStorage.Delete(ctx, name); err != nil {
		config.Logger.Warn("could not remove orphaned image", zap.String("name", name), zap.Error(err))
	}
}
