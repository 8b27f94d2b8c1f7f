package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/errs"
)

type sampleForm struct {
	Text     string `form:"text" validate:"notblank"`
	Username string `form:"username" validate:"required,username,unreserved"`
	Secret   string `form:"secret" validate:"maxbytes=4"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(&sampleForm{Text: "hello", Username: "leo.tolstoy"}))
	})

	t.Run("blank text", func(t *testing.T) {
		err := Struct(&sampleForm{Text: "   ", Username: "leo"})
		require.Error(t, err)
		assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		assert.Equal(t, "This field is required.", errs.FieldErrors(err)["text"])
	})

	t.Run("bad username", func(t *testing.T) {
		err := Struct(&sampleForm{Text: "x", Username: "leo/tolstoy"})
		require.Error(t, err)
		assert.Contains(t, errs.FieldErrors(err), "username")
	})

	t.Run("reserved username", func(t *testing.T) {
		err := Struct(&sampleForm{Text: "x", Username: "follow"})
		assert.Contains(t, errs.FieldErrors(err), "username")
	})

	t.Run("byte limit", func(t *testing.T) {
		assert.NoError(t, Struct(&sampleForm{Text: "x", Username: "leo", Secret: "abcd"}))
		err := Struct(&sampleForm{Text: "x", Username: "leo", Secret: "яя!"})
		assert.Equal(t, "Ensure this value has at most 4 bytes.", errs.FieldErrors(err)["secret"])
	})
}
