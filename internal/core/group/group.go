package group

import (
	"unicode/utf8"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// SlugMaxLength bounds derived and explicit slugs.
const SlugMaxLength = 100

// Group is a community posts can be attached to. Groups are managed by
// administrators only.
type Group struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"type:varchar(200);not null"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text;not null"`
}

func (g Group) String() string {
	return g.Title
}

// BeforeSave derives the slug from the title when none was given.
func (g *Group) BeforeSave(tx *gorm.DB) error {
	if g.Slug == "" {
		g.Slug = Slugify(g.Title)
	}
	return nil
}

// Slugify transliterates title into a URL slug of at most SlugMaxLength characters.
func Slugify(title string) string {
	s := slug.Make(title)
	if utf8.RuneCountInString(s) <= SlugMaxLength {
		return s
	}
	return string([]rune(s)[:SlugMaxLength])
}
