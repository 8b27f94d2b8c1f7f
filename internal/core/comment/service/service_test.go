package commentapp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbadapter "yatube/internal/adapters/database"
	"yatube/internal/errs"
	commentPort "yatube/internal/ports/comment"
	userPort "yatube/internal/ports/user"
	"yatube/internal/testutil"
)

func TestAddComment(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCommentService(dbadapter.NewCommentRepositoryDatabase(db), dbadapter.NewPostRepositoryDatabase(db))
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := userPort.NewUserDTO(testutil.CreateUser(t, db, "anna"))
	p := testutil.CreatePost(t, db, leo, "war", nil)

	first, err := svc.AddComment(ctx, anna, "leo", p.ID, commentPort.CommentInput{Text: "Too long"})
	require.NoError(t, err)
	assert.Equal(t, "anna", first.Author.Username)
	assert.Equal(t, p.ID, first.PostID)

	_, err = svc.AddComment(ctx, anna, "leo", p.ID, commentPort.CommentInput{Text: "Still reading"})
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Too long", comments[0].Text)
	assert.Equal(t, "Still reading", comments[1].Text)
}

func TestAddComment_Rejected(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCommentService(dbadapter.NewCommentRepositoryDatabase(db), dbadapter.NewPostRepositoryDatabase(db))
	ctx := context.Background()

	leo := testutil.CreateUser(t, db, "leo")
	anna := userPort.NewUserDTO(testutil.CreateUser(t, db, "anna"))
	p := testutil.CreatePost(t, db, leo, "war", nil)

	_, err := svc.AddComment(ctx, anna, "leo", p.ID, commentPort.CommentInput{Text: "   "})
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

	_, err = svc.AddComment(ctx, anna, "anna", p.ID, commentPort.CommentInput{Text: "wrong author"})
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	_, err = svc.AddComment(ctx, nil, "leo", p.ID, commentPort.CommentInput{Text: "anonymous"})
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))

	comments, err := svc.ListComments(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
