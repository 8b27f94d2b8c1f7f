package postapp

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dbadapter "yatube/internal/adapters/database"
	postEntity "yatube/internal/core/post"
	"yatube/internal/errs"
	postPort "yatube/internal/ports/post"
	storagePort "yatube/internal/ports/storage"
	userPort "yatube/internal/ports/user"
	"yatube/internal/testutil"
)

type fakeImages struct {
	saved   []string
	deleted []string
	err     error
}

func (f *fakeImages) Save(ctx context.Context, upload *storagePort.Upload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, upload.Filename)
	return "posts/" + upload.Filename, nil
}

func (f *fakeImages) Delete(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

// brokenPosts reads through to the database and fails every write.
type brokenPosts struct {
	postPort.PostRepository
}

func (brokenPosts) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	return nil, errors.New("database is locked")
}

func (brokenPosts) Update(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	return nil, errors.New("database is locked")
}

func newService(t *testing.T) (*PostService, *gorm.DB, *fakeImages) {
	t.Helper()
	db := testutil.NewDB(t)
	images := &fakeImages{}
	svc := NewPostService(
		dbadapter.NewPostRepositoryDatabase(db),
		dbadapter.NewGroupRepositoryDatabase(db),
		images,
	)
	return svc, db, images
}

func str(s string) *string { return &s }

func countPosts(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&postEntity.Post{}).Count(&n).Error)
	return n
}

func TestCreatePost(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))
	g := testutil.CreateGroup(t, db, "Novels")

	p, err := svc.CreatePost(ctx, leo, postPort.PostInput{
		Text:  str("It was the best of times"),
		Group: str(strconv.FormatUint(uint64(g.ID), 10)),
	})
	require.NoError(t, err)
	assert.Equal(t, "leo", p.Author.Username)
	require.NotNil(t, p.Group)
	assert.Equal(t, "novels", p.Group.Slug)
	assert.False(t, p.PubDate.IsZero())
}

func TestCreatePost_RejectsEmptyText(t *testing.T) {
	for _, text := range []*string{nil, str(""), str("  \n ")} {
		svc, db, images := newService(t)
		leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

		_, err := svc.CreatePost(context.Background(), leo, postPort.PostInput{
			Text:  text,
			Image: &storagePort.Upload{Filename: "cat.gif"},
		})
		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "This field is required.", errs.FieldErrors(err)["text"])
		assert.Zero(t, countPosts(t, db))
		assert.Empty(t, images.saved)
	}
}

func TestCreatePost_RejectsUnknownGroup(t *testing.T) {
	svc, db, _ := newService(t)
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	for _, group := range []string{"42", "novels"} {
		_, err := svc.CreatePost(context.Background(), leo, postPort.PostInput{Text: str("hello"), Group: str(group)})
		require.Error(t, err)
		assert.Contains(t, errs.FieldErrors(err), "group")
	}
	assert.Zero(t, countPosts(t, db))
}

func TestCreatePost_ReportsEveryInvalidField(t *testing.T) {
	svc, db, images := newService(t)
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	_, err := svc.CreatePost(context.Background(), leo, postPort.PostInput{
		Text:  str(""),
		Group: str("42"),
		Image: &storagePort.Upload{Filename: "cat.gif"},
	})
	require.Error(t, err)
	fields := errs.FieldErrors(err)
	assert.Equal(t, "This field is required.", fields["text"])
	assert.Equal(t, invalidChoice, fields["group"])
	assert.Zero(t, countPosts(t, db))
	assert.Empty(t, images.saved)
}

func TestCreatePost_RemovesImageWhenStoreFails(t *testing.T) {
	svc, db, images := newService(t)
	svc.PostRepository = brokenPosts{svc.PostRepository}
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))

	_, err := svc.CreatePost(context.Background(), leo, postPort.PostInput{
		Text:  str("with a picture"),
		Image: &storagePort.Upload{Filename: "cat.gif"},
	})
	require.Error(t, err)
	assert.Equal(t, errs.EINTERNAL, errs.ErrorCode(err))
	assert.Equal(t, []string{"posts/cat.gif"}, images.deleted)
}

func TestCreatePost_ImageErrors(t *testing.T) {
	svc, db, images := newService(t)
	leo := userPort.NewUserDTO(testutil.CreateUser(t, db, "leo"))
	images.err = errs.Errorf(errs.EINVALID, "Upload a valid image.")

	_, err := svc.CreatePost(context.Background(), leo, postPort.PostInput{
		Text:  str("with a picture"),
		Image: &storagePort.Upload{Filename: "notes.txt"},
	})
	require.Error(t, err)
	assert.Equal(t, "Upload a valid image.", errs.FieldErrors(err)["image"])
	assert.Zero(t, countPosts(t, db))
}

func TestCreatePost_Anonymous(t *testing.T) {
	svc, db, _ := newService(t)

	_, err := svc.CreatePost(context.Background(), nil, postPort.PostInput{Text: str("hello")})
	assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))
	assert.Zero(t, countPosts(t, db))
}

func TestEditPost(t *testing.T) {
	t.Run("author changes only the submitted fields", func(t *testing.T) {
		svc, db, _ := newService(t)
		ctx := context.Background()
		leoUser := testutil.CreateUser(t, db, "leo")
		leo := userPort.NewUserDTO(leoUser)
		g := testutil.CreateGroup(t, db, "Novels")
		p := testutil.CreatePost(t, db, leoUser, "draft", g)

		before, err := svc.GetPost(ctx, "leo", p.ID)
		require.NoError(t, err)

		edited, err := svc.EditPost(ctx, leo, "leo", p.ID, postPort.PostInput{Text: str("final")})
		require.NoError(t, err)
		assert.Equal(t, "final", edited.Text)
		require.NotNil(t, edited.Group)
		assert.Equal(t, g.ID, edited.Group.ID)
		assert.True(t, before.PubDate.Equal(edited.PubDate))
		assert.Equal(t, "leo", edited.Author.Username)

		edited, err = svc.EditPost(ctx, leo, "leo", p.ID, postPort.PostInput{Group: str("")})
		require.NoError(t, err)
		assert.Equal(t, "final", edited.Text)
		assert.Nil(t, edited.Group)
	})

	t.Run("non-author cannot edit", func(t *testing.T) {
		svc, db, _ := newService(t)
		ctx := context.Background()
		leoUser := testutil.CreateUser(t, db, "leo")
		anna := userPort.NewUserDTO(testutil.CreateUser(t, db, "anna"))
		p := testutil.CreatePost(t, db, leoUser, "original", nil)

		_, err := svc.EditPost(ctx, anna, "leo", p.ID, postPort.PostInput{Text: str("hijacked")})
		assert.Equal(t, errs.EUNAUTHORIZED, errs.ErrorCode(err))

		reloaded, err := svc.GetPost(ctx, "leo", p.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", reloaded.Text)
	})

	t.Run("blank text keeps the stored post", func(t *testing.T) {
		svc, db, _ := newService(t)
		ctx := context.Background()
		leoUser := testutil.CreateUser(t, db, "leo")
		p := testutil.CreatePost(t, db, leoUser, "original", nil)

		_, err := svc.EditPost(ctx, userPort.NewUserDTO(leoUser), "leo", p.ID, postPort.PostInput{Text: str(" ")})
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))

		reloaded, err := svc.GetPost(ctx, "leo", p.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", reloaded.Text)
	})

	t.Run("invalid text and group are reported together", func(t *testing.T) {
		svc, db, _ := newService(t)
		leoUser := testutil.CreateUser(t, db, "leo")
		p := testutil.CreatePost(t, db, leoUser, "original", nil)

		_, err := svc.EditPost(context.Background(), userPort.NewUserDTO(leoUser), "leo", p.ID, postPort.PostInput{
			Text:  str(" "),
			Group: str("novels"),
		})
		fields := errs.FieldErrors(err)
		assert.Contains(t, fields, "text")
		assert.Contains(t, fields, "group")
	})

	t.Run("image is removed when the update fails", func(t *testing.T) {
		svc, db, images := newService(t)
		svc.PostRepository = brokenPosts{svc.PostRepository}
		leoUser := testutil.CreateUser(t, db, "leo")
		p := testutil.CreatePost(t, db, leoUser, "original", nil)

		_, err := svc.EditPost(context.Background(), userPort.NewUserDTO(leoUser), "leo", p.ID, postPort.PostInput{
			Image: &storagePort.Upload{Filename: "cat.gif"},
		})
		require.Error(t, err)
		assert.Equal(t, []string{"posts/cat.gif"}, images.deleted)

		reloaded, err := svc.GetPost(context.Background(), "leo", p.ID)
		require.NoError(t, err)
		assert.Empty(t, reloaded.Image)
	})

	t.Run("post of another author is not found", func(t *testing.T) {
		svc, db, _ := newService(t)
		leoUser := testutil.CreateUser(t, db, "leo")
		anna := testutil.CreateUser(t, db, "anna")
		p := testutil.CreatePost(t, db, leoUser, "original", nil)

		_, err := svc.EditPost(context.Background(), userPort.NewUserDTO(anna), "anna", p.ID, postPort.PostInput{Text: str("x")})
		assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
	})
}

func TestPostString(t *testing.T) {
	assert.Equal(t, "Lorem ipsum dol", postEntity.Post{Text: "Lorem ipsum dolor sit amet"}.String())
	assert.Equal(t, "short", postEntity.Post{Text: "short"}.String())
	assert.Equal(t, "Привет, как дел", postEntity.Post{Text: "Привет, как делишки?"}.String())
}
