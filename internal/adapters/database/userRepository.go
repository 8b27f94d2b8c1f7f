package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yatube/internal/core/user"
	"yatube/internal/errs"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase constructs a UserRepositoryDatabase.
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Errorf(errs.ECONFLICT, "A user with that username already exists.")
		}
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, "User does not exist.")
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, "User "+username+" does not exist.")
	}
	return &u, nil
}

// DeleteByUsername removes the user; the schema cascades to their posts,
// comments and follow edges.
func (repo *UserRepositoryDatabase) DeleteByUsername(ctx context.Context, username string) error {
	res := repo.db.WithContext(ctx).Where("username = ?", username).Delete(&user.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Errorf(errs.ENOTFOUND, "User %s does not exist.", username)
	}
	return nil
}

// notFound turns gorm's missing-record error into ENOTFOUND.
func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.Errorf(errs.ENOTFOUND, "%s", msg)
	}
	return err
}
