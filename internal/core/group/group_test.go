package group

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

var slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "leo-tolstoy-fans", Slugify("Leo Tolstoy Fans!"))

	cyrillic := Slugify("Русская литература")
	assert.NotEmpty(t, cyrillic)
	assert.Regexp(t, slugRe, cyrillic)

	long := Slugify(strings.Repeat("abcdefghij", 15))
	assert.Equal(t, SlugMaxLength, utf8.RuneCountInString(long))
}

func TestGroupString(t *testing.T) {
	assert.Equal(t, "Novels", Group{Title: "Novels", Slug: "novels"}.String())
}
