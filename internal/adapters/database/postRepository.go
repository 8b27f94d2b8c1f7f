package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yatube/internal/core/follower"
	"yatube/internal/core/post"
	"yatube/internal/core/user"
	postPort "yatube/internal/ports/post"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase constructs a PostRepositoryDatabase.
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	// author and group are referenced, never written through the post
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return repo.reload(ctx, p.ID)
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) (*post.Post, error) {
	err := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
	if err != nil {
		return nil, err
	}
	return repo.reload(ctx, p.ID)
}

// FindByAuthorAndID loads a post only when it belongs to username.
func (repo *PostRepositoryDatabase) FindByAuthorAndID(ctx context.Context, username string, id uint) (*post.Post, error) {
	authorID := repo.db.Model(&user.User{}).Select("id").Where("username = ?", username)

	var p post.Post
	err := repo.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("posts.id = ? AND posts.author_id = (?)", id, authorID).
		First(&p).Error
	if err != nil {
		return nil, notFound(err, "Post does not exist.")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, filter postPort.Filter) (int64, error) {
	var count int64
	if err := repo.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Find returns one window of the filtered posts, newest first.
func (repo *PostRepositoryDatabase) Find(ctx context.Context, filter postPort.Filter, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	err := repo.filtered(ctx, filter).
		Preload("Author").
		Preload("Group").
		Order("posts.pub_date DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) filtered(ctx context.Context, filter postPort.Filter) *gorm.DB {
	q := repo.db.WithContext(ctx).Model(&post.Post{})
	if filter.AuthorID != nil {
		q = q.Where("posts.author_id = ?", *filter.AuthorID)
	}
	if filter.GroupID != nil {
		q = q.Where("posts.group_id = ?", *filter.GroupID)
	}
	if filter.FollowerID != nil {
		followed := repo.db.Model(&follower.Follower{}).Select("author_id").Where("user_id = ?", *filter.FollowerID)
		q = q.Where("posts.author_id IN (?)", followed)
	}
	return q
}

func (repo *PostRepositoryDatabase) reload(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("Author").Preload("Group").First(&p, id).Error; err != nil {
		return nil, notFound(err, "Post does not exist.")
	}
	return &p, nil
}
