package groupapp

import (
	"context"

	"go.uber.org/zap"

	"yatube/internal/config"
	groupEntity "yatube/internal/core/group"
	"yatube/internal/errs"
	groupPort "yatube/internal/ports/group"
)

// GroupService manages groups. Only administrators reach it, through the CLI.
type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

// CreateGroup stores a group; an empty slug is derived from the title.
func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "This field is required."
	} else if len([]rune(title)) > 200 {
		fields["title"] = "Ensure this value has at most 200 characters."
	}
	if len([]rune(slug)) > groupEntity.SlugMaxLength {
		fields["slug"] = "Ensure this value has at most 100 characters."
	}
	if len(fields) > 0 {
		return nil, errs.Invalid(fields)
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	config.Logger.Info("group created", zap.String("slug", g.Slug))
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.NewGroupDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.NewGroupDTO(g))
	}
	return dtos, nil
}

// DeleteGroup removes a group. Its posts are kept without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	if err := s.GroupRepository.DeleteBySlug(ctx, slug); err != nil {
		return err
	}
	config.Logger.Info("group deleted", zap.String("slug", slug))
	return nil
}
