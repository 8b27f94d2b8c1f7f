package followerapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/errs"
	followerPort "yatube/internal/ports/follower"
	userPort "yatube/internal/ports/user"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	UserRepository     userPort.UserRepository
}

func NewFollowerService(repo followerPort.FollowerRepository, userRepo userPort.UserRepository) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		UserRepository:     userRepo,
	}
}

// FollowUser makes viewer follow the user named username. Following twice
// keeps a single edge; following yourself is rejected with EINVALID.
func (s *FollowerService) FollowUser(ctx context.Context, viewer *userPort.UserDTO, username string) error {
	viewerID, authorID, err := s.edge(ctx, viewer, username)
	if err != nil {
		return err
	}
	if viewerID == authorID {
		config.Logger.Warn("cannot follow yourself", zap.String("username", viewer.Username))
		return errs.Errorf(errs.EINVALID, "You cannot follow yourself.")
	}

	created, err := s.FollowerRepository.GetOrCreate(ctx, viewerID, authorID)
	if err != nil {
		config.Logger.Error("could not follow", zap.String("user", viewer.Username), zap.String("author", username), zap.Error(err))
		return err
	}
	if created {
		config.Logger.Info("followed", zap.String("user", viewer.Username), zap.String("author", username))
	}
	return nil
}

// UnfollowUser removes the edge; ENOTFOUND when viewer does not follow username.
func (s *FollowerService) UnfollowUser(ctx context.Context, viewer *userPort.UserDTO, username string) error {
	viewerID, authorID, err := s.edge(ctx, viewer, username)
	if err != nil {
		return err
	}
	return s.FollowerRepository.Delete(ctx, viewerID, authorID)
}

// IsFollowing is always false for the anonymous viewer.
func (s *FollowerService) IsFollowing(ctx context.Context, viewer *userPort.UserDTO, author *userPort.UserDTO) (bool, error) {
	if viewer == nil || author == nil {
		return false, nil
	}
	viewerID, err := uuid.FromString(viewer.ID)
	if err != nil {
		return false, nil
	}
	authorID, err := uuid.FromString(author.ID)
	if err != nil {
		return false, nil
	}
	return s.FollowerRepository.IsFollowing(ctx, viewerID, authorID)
}

// Stats counts who follows author and whom author follows.
func (s *FollowerService) Stats(ctx context.Context, author *userPort.UserDTO) (*followerPort.FollowStatsDTO, error) {
	authorID, err := uuid.FromString(author.ID)
	if err != nil {
		return nil, err
	}
	followers, err := s.FollowerRepository.CountFollowers(ctx, authorID)
	if err != nil {
		return nil, err
	}
	following, err := s.FollowerRepository.CountFollowing(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return &followerPort.FollowStatsDTO{Followers: followers, Following: following}, nil
}

func (s *FollowerService) edge(ctx context.Context, viewer *userPort.UserDTO, username string) (uuid.UUID, uuid.UUID, error) {
	if viewer == nil {
		return uuid.Nil, uuid.Nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}
	viewerID, err := uuid.FromString(viewer.ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required.")
	}
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return viewerID, author.ID, nil
}
