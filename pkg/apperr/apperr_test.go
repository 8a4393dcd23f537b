package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(fmt.Errorf("share 7: %w", ErrNotFound)))
	assert.Equal(t, CodeInsufficientBalance, CodeOf(ErrInsufficientBalance))
	assert.Equal(t, CodeRemoteCall, CodeOf(fmt.Errorf("get account: %w", ErrRemoteCall)))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeInternal, CodeOf(nil))
}

func TestFromCode(t *testing.T) {
	assert.ErrorIs(t, FromCode(CodeNotFound), ErrNotFound)
	assert.ErrorIs(t, FromCode(CodeAlreadyExists), ErrAlreadyExists)
	assert.Nil(t, FromCode(CodeInternal))
	assert.Nil(t, FromCode("SOMETHING_ELSE"))
}
