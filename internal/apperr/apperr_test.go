package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errTemplate = &Error{
	Message: "unknown thing: %s",
}

func TestFmtKeepsIdentity(t *testing.T) {
	err := errTemplate.Fmt("widget")

	assert.Equal(t, "unknown thing: widget", err.Error())
	assert.ErrorIs(t, err, errTemplate)

	wrapped := fmt.Errorf("loading: %w", err)
	assert.ErrorIs(t, wrapped, errTemplate)
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")

	err := errTemplate.Fmt("widget").Wrap(cause)

	assert.Equal(t, "unknown thing: widget: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, errTemplate)
}

func TestDistinctTemplates(t *testing.T) {
	other := &Error{Message: "other"}

	assert.NotErrorIs(t, errTemplate.Fmt("x"), other)
}
