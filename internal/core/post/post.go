package post

import (
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/group"
	"yatube/internal/core/user"
)

// Post is an entry of a user's blog. Deleting the author removes the post,
// deleting its group only detaches it.
type Post struct {
	ID       uint         `gorm:"primaryKey;autoIncrement"`
	Text     string       `gorm:"type:text;not null"`
	PubDate  time.Time    `gorm:"autoCreateTime;index"`
	AuthorID uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author   user.User    `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	GroupID  *uint        `gorm:"index"`
	Group    *group.Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Image    string       `gorm:"type:varchar(255)"`
}

// String returns the first 15 characters of the text.
func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > 15 {
		r = r[:15]
	}
	return string(r)
}
