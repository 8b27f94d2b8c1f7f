package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yatube/internal/core/group"
	"yatube/internal/errs"
)

// GroupRepositoryDatabase implements GroupRepository on gorm.
type GroupRepositoryDatabase struct {
	db *gorm.DB
}

func NewGroupRepositoryDatabase(db *gorm.DB) *GroupRepositoryDatabase {
	return &GroupRepositoryDatabase{db: db}
}

func (repo *GroupRepositoryDatabase) Create(ctx context.Context, g *group.Group) (*group.Group, error) {
	if err := repo.db.WithContext(ctx).Create(g).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Errorf(errs.ECONFLICT, "Group with slug %s already exists.", g.Slug)
		}
		return nil, err
	}
	return g, nil
}

func (repo *GroupRepositoryDatabase) FindByID(ctx context.Context, id uint) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).First(&g, id).Error; err != nil {
		return nil, notFound(err, "Group does not exist.")
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) FindBySlug(ctx context.Context, slug string) (*group.Group, error) {
	var g group.Group
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, notFound(err, "Group "+slug+" does not exist.")
	}
	return &g, nil
}

func (repo *GroupRepositoryDatabase) List(ctx context.Context) ([]*group.Group, error) {
	var groups []*group.Group
	if err := repo.db.WithContext(ctx).Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteBySlug removes the group. Its posts stay, with no group.
func (repo *GroupRepositoryDatabase) DeleteBySlug(ctx context.Context, slug string) error {
	res := repo.db.WithContext(ctx).Where("slug = ?", slug).Delete(&group.Group{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "Group %s does not exist.", slug)
	}
	return nil
}
