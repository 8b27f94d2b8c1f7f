package user

import (
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// reservedUsernames are the first path segments the site routes itself.
// A user named after one of them would have an unreachable profile.
var reservedUsernames = []string{"about", "auth", "follow", "group", "media", "new"}

// IsReserved reports whether username collides with a site path.
func IsReserved(username string) bool {
	for _, r := range reservedUsernames {
		if strings.EqualFold(username, r) {
			return true
		}
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	FirstName string    `gorm:"type:varchar(150)"`
	LastName  string    `gorm:"type:varchar(150)"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(254)"`
	Password  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate assigns a fresh id to users created without one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		u.ID = id
	}
	return nil
}

// FullName joins first and last name, the way profile pages show authors.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
