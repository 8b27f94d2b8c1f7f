package followerapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbadapter "yatube/internal/adapters/database"
	followerEntity "yatube/internal/core/follower"
	"yatube/internal/errs"
	userPort "yatube/internal/ports/user"
	"yatube/internal/testutil"
)

func newService(t *testing.T) (*FollowerService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewFollowerService(
		dbadapter.NewFollowerRepositoryDatabase(db),
		dbadapter.NewUserRepositoryDatabase(db),
	), db
}

func countEdges(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&followerEntity.Follower{}).Count(&n).Error)
	return n
}

func TestFollowUser_Twice(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	reader := userPort.NewUserDTO(testutil.CreateUser(t, db, "reader"))
	testutil.CreateUser(t, db, "leo")

	require.NoError(t, svc.FollowUser(ctx, reader, "leo"))
	require.NoError(t, svc.FollowUser(ctx, reader, "leo"))
	assert.EqualValues(t, 1, countEdges(t, db))
}

func TestFollowThenUnfollow(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	reader := userPort.NewUserDTO(testutil.CreateUser(t, db, "reader"))
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	require.NoError(t, svc.FollowUser(ctx, reader, "leo"))
	following, err := svc.IsFollowing(ctx, reader, leo)
	require.NoError(t, err)
	assert.True(t, following)

	require.NoError(t, svc.UnfollowUser(ctx, reader, "leo"))
	assert.Zero(t, countEdges(t, db))

	err = svc.UnfollowUser(ctx, reader, "leo")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestFollowUser_Self(t *testing.T) {
	svc, db := newService(t)
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	err := svc.FollowUser(context.Background(), leo, "leo")
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Zero(t, countEdges(t, db))
}

func TestFollowUser_UnknownAuthor(t *testing.T) {
	svc, db := newService(t)
	reader := userPort.NewUserDTO(testutil.CreateUser(t, db, "reader"))

	err := svc.FollowUser(context.Background(), reader, "ghost")
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestIsFollowing_Anonymous(t *testing.T) {
	svc, db := newService(t)
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	following, err := svc.IsFollowing(context.Background(), nil, leo)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestStats(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	reader := userPort.NewUserDTO(testutil.CreateUser(t, db, "reader"))
	anna := userPort.NewUserDTO(testutil.CreateUser(t, db, "anna"))
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	require.NoError(t, svc.FollowUser(ctx, reader, "leo"))
	require.NoError(t, svc.FollowUser(ctx, anna, "leo"))
	require.NoError(t, svc.FollowUser(ctx, leo, "anna"))

	stats, err := svc.Stats(ctx, leo)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Followers)
	assert.EqualValues(t, 1, stats.Following)
}
