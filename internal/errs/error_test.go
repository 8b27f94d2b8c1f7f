package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", ErrorCode(nil))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		err := fmt.Errorf("loading post: %w", Errorf(ENOTFOUND, "Post %d does not exist.", 7))
		assert.Equal(t, ENOTFOUND, ErrorCode(err))
		assert.Equal(t, "Post 7 does not exist.", ErrorMessage(err))
		assert.True(t, IsNotFound(err))
	})

	t.Run("foreign error", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, EINTERNAL, ErrorCode(err))
		assert.Equal(t, "Internal error.", ErrorMessage(err))
	})
}

func TestFieldErrors(t *testing.T) {
	err := Invalid(map[string]string{"text": "This field is required."})
	assert.Equal(t, "This field is required.", FieldErrors(err)["text"])
	assert.Nil(t, FieldErrors(Errorf(ENOTFOUND, "missing")))
}
