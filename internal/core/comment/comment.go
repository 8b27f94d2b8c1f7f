package comment

import (
	"time"

	"github.com/gofrs/uuid"

	"yatube/internal/core/post"
	"yatube/internal/core/user"
)

type Comment struct {
	ID       uint       `gorm:"primaryKey;autoIncrement"`
	PostID   *uint      `gorm:"index"`
	Post     *post.Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AuthorID uuid.UUID  `gorm:"type:char(36);not null;index"`
	Author   user.User  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Text     string     `gorm:"type:text;not null"`
	Created  time.Time  `gorm:"autoCreateTime"`
}
