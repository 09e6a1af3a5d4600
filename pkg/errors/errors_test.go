package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorIncludesLine(t *testing.T) {
	err := NewParseError("themes/dark.yaml", 12, errors.New("bad indent"))
	assert.Equal(t, "parse error: themes/dark.yaml:12: bad indent", err.Error())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 12, parseErr.Line)
}

func TestParseErrorWithoutLine(t *testing.T) {
	err := NewParseError("themes/dark.yaml", 0, errors.New("unreadable"))
	assert.Equal(t, "parse error: themes/dark.yaml: unreadable", err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("siteVariables.brand", "not a color", nil)
	assert.Contains(t, err.Error(), "siteVariables.brand")

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "siteVariables.brand", valErr.Field)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("midnight")
	assert.Equal(t, "theme not found: midnight", err.Error())
}

func TestSourceErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSourceError("https://example.com/themes.git", cause)
	assert.ErrorIs(t, err, cause)
}
