package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseErrorFormatting(t *testing.T) {
	withLine := NewParseError("dotforge.yaml", 12, stderrors.New("bad indent"))
	assert.Equal(t, "parse error: dotforge.yaml:12: bad indent", withLine.Error())

	withoutLine := NewParseError("dotforge.yaml", 0, stderrors.New("no such file"))
	assert.Equal(t, "parse error: dotforge.yaml: no such file", withoutLine.Error())
}

func TestValidationErrorFormatting(t *testing.T) {
	withField := NewValidationError("profile.aliases[0].name", "must not be empty", nil)
	assert.Equal(t, "validation error: profile.aliases[0].name: must not be empty", withField.Error())

	withoutField := NewValidationError("", "manifest is empty", nil)
	assert.Equal(t, "validation error: manifest is empty", withoutField.Error())
}

func TestModuleErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("exit status 1")
	err := NewModuleError("packages", cause)

	assert.Equal(t, `module "packages" failed: exit status 1`, err.Error())
	require.True(t, stderrors.Is(err, cause))

	var modErr *ModuleError
	require.True(t, stderrors.As(err, &modErr))
	assert.Equal(t, "packages", modErr.ModuleID)
}

func TestModuleErrorWithoutCause(t *testing.T) {
	err := NewModuleError("shellrc", nil)
	assert.Equal(t, `module "shellrc" failed`, err.Error())
}
