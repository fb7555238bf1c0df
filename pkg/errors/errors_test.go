package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorNormalisesUnknown(t *testing.T) {
	appErr := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, ErrInternal.Message, appErr.Message)
	assert.Nil(t, FromError(nil))
}

func TestCloneKeepsIdentity(t *testing.T) {
	clone := Clone(ErrNoSeatsAvailable, "class is full")
	wrapped := fmt.Errorf("checkout: %w", clone)

	assert.True(t, errors.Is(wrapped, ErrNoSeatsAvailable))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.Equal(t, "class is full", FromError(wrapped).Message)
	assert.Equal(t, "no seats available for this class", ErrNoSeatsAvailable.Message)
}
