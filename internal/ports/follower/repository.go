package follower

import (
	"context"

	"github.com/gofrs/uuid"
)

// FollowerRepository is the port for follow edges.
type FollowerRepository interface {
	// GetOrCreate stores the edge userID -> authorID unless it already exists.
	GetOrCreate(ctx context.Context, userID, authorID uuid.UUID) (created bool, err error)
	// Delete removes the edge and fails with ENOTFOUND when there is none.
	Delete(ctx context.Context, userID, authorID uuid.UUID) error
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

// FollowStatsDTO backs the follow counters of a profile.
type FollowStatsDTO struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
