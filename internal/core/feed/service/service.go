package feedapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/core/paginator"
	"yatube/internal/errs"
	feedPort "yatube/internal/ports/feed"
	followerPort "yatube/internal/ports/follower"
	groupPort "yatube/internal/ports/group"
	postPort "yatube/internal/ports/post"
	userPort "yatube/internal/ports/user"
)

// FeedService builds the paginated post lists: everything, one group, one
// author, and the authors a viewer follows.
type FeedService struct {
	PostRepository     postPort.PostRepository
	GroupRepository    groupPort.GroupRepository
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
) *FeedService {
	return &FeedService{
		PostRepository:     postRepo,
		GroupRepository:    groupRepo,
		UserRepository:     userRepo,
		FollowerRepository: followerRepo,
	}
}

func (s *FeedService) Index(ctx context.Context, page string) (*postPort.FeedPage, error) {
	return s.page(ctx, postPort.Filter{}, page)
}

func (s *FeedService) Group(ctx context.Context, slug, page string) (*feedPort.GroupFeedDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	feed, err := s.page(ctx, postPort.Filter{GroupID: &g.ID}, page)
	if err != nil {
		return nil, err
	}
	return &feedPort.GroupFeedDTO{Group: groupPort.NewGroupDTO(g), Feed: feed}, nil
}

// Profile lists the posts of username. viewer may be nil.
func (s *FeedService) Profile(ctx context.Context, viewer *userPort.UserDTO, username, page string) (*feedPort.ProfileDTO, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	feed, err := s.page(ctx, postPort.Filter{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}

	followers, err := s.FollowerRepository.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowerRepository.CountFollowing(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	profile := &feedPort.ProfileDTO{
		Author: userPort.NewUserDTO(author),
		Feed:   feed,
		Stats:  &followerPort.FollowStatsDTO{Followers: followers, Following: following},
	}
	if viewer != nil {
		viewerID, err := uuid.FromString(viewer.ID)
		if err == nil {
			if profile.Following, err = s.FollowerRepository.IsFollowing(ctx, viewerID, author.ID); err != nil {
				return nil, err
			}
		}
	}
	return profile, nil
}

// Follow lists the posts of every author viewer follows.
func (s *FeedService) Follow(ctx context.Context, viewer *userPort.UserDTO, page string) (*postPort.FeedPage, error) {
	if viewer == nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}
	viewerID, err := uuid.FromString(viewer.ID)
	if err != nil {
		return nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}
	return s.page(ctx, postPort.Filter{FollowerID: &viewerID}, page)
}

func (s *FeedService) page(ctx context.Context, filter postPort.Filter, raw string) (*postPort.FeedPage, error) {
	total, err := s.PostRepository.Count(ctx, filter)
	if err != nil {
		config.Logger.Error("could not count posts", zap.Error(err))
		return nil, err
	}
	pg := paginator.New(total, paginator.PerPage).Page(raw)

	posts, err := s.PostRepository.Find(ctx, filter, pg.Offset(), pg.Limit())
	if err != nil {
		config.Logger.Error("could not load posts", zap.Int("page", pg.Number), zap.Error(err))
		return nil, err
	}
	return &postPort.FeedPage{Posts: postPort.NewPostDTOs(posts), Page: pg}, nil
}
