// Package testutil builds throwaway stores for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"yatube/internal/adapters/database"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// NewDB opens a private in-memory sqlite database with foreign keys enforced
// and every table migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.Must(uuid.NewV4()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the shared in-memory database free of table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// CreateUser stores a user whose password is "password123".
func CreateUser(t testing.TB, db *gorm.DB, username string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &user.User{Username: username, FirstName: "First", LastName: username, Password: string(hash)}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

func CreateGroup(t testing.TB, db *gorm.DB, title string) *group.Group {
	t.Helper()
	g := &group.Group{Title: title, Description: "About " + title}
	require.NoError(t, db.Create(g).Error)
	return g
}

func CreatePost(t testing.TB, db *gorm.DB, author *user.User, text string, g *group.Group) *post.Post {
	t.Helper()
	p := &post.Post{Text: text, AuthorID: author.ID}
	if g != nil {
		p.GroupID = &g.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(p).Error)
	return p
}
