package database

import (
	"gorm.io/gorm"

	"yatube/internal/core/comment"
	"yatube/internal/core/follower"
	"yatube/internal/core/group"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

// AutoMigrate creates or updates every table. Foreign keys carry the delete
// policies: posts, comments and follow edges cascade with their user,
// comments cascade with their post, posts lose their group when it goes away.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&group.Group{},
		&post.Post{},
		&comment.Comment{},
		&follower.Follower{},
	)
}
