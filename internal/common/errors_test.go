package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetail(t *testing.T) {
	err := Detail(ErrorValidation, "Password must be at least 6 characters")

	assert.ErrorIs(t, err, ErrorValidation)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())

	wrapped := fmt.Errorf("register: %w", err)
	var de *DetailedError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, "Password must be at least 6 characters", de.Msg)
	assert.NotErrorIs(t, wrapped, ErrorNotFound)
}
