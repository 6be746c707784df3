package errs

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandNotFound(t *testing.T) {
	err := NewCommandNotFound("ghost", []string{"/p/.promptcraft/commands", "/h/.promptcraft/commands"})

	var nf *CommandNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "ghost", nf.Name)
	assert.Equal(t, CodeCommandNotFound, nf.Code)
	assert.Contains(t, err.Error(), "Searched in: /p/.promptcraft/commands, /h/.promptcraft/commands")
	assert.Equal(t, []string{ListHint}, Hints(err))
	assert.True(t, IsCommandNotFound(err))
	assert.False(t, IsTemplateRead(err))
}

func TestNewInvalidCommandName(t *testing.T) {
	err := NewInvalidCommandName("../etc/passwd", "path separators are not allowed")

	var nf *CommandNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, CodeInvalidCommandName, nf.Code)
	assert.Contains(t, err.Error(), "path separators are not allowed")
	assert.Contains(t, Hints(err), ListHint)
}

func TestNewTemplateReadClassifiesCause(t *testing.T) {
	cases := []struct {
		name  string
		cause error
		code  string
		msg   string
	}{
		{"missing", fmt.Errorf("open x: %w", fs.ErrNotExist), CodeTemplateFileNotFound, "Template file not found: /t/x.md"},
		{"permission", fmt.Errorf("open x: %w", fs.ErrPermission), CodeTemplatePermissionDenied, "Permission denied reading template file: /t/x.md"},
		{"encoding", ErrInvalidEncoding, CodeTemplateEncoding, "Failed to decode template file /t/x.md"},
		{"other", errors.New("disk on fire"), CodeTemplateIO, "I/O error reading template file /t/x.md: disk on fire"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewTemplateRead("/t/x.md", tc.cause)

			var re *TemplateReadError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tc.code, re.Code)
			assert.Equal(t, "/t/x.md", re.Path)
			assert.Contains(t, err.Error(), tc.msg)
			assert.True(t, errors.Is(err, tc.cause))
			assert.True(t, IsTemplateRead(err))
			assert.False(t, IsCommandNotFound(err))
		})
	}
}

func TestErrorsSurviveWrapping(t *testing.T) {
	err := errors.Wrap(NewCommandNotFound("review", nil), "generate")
	assert.True(t, IsCommandNotFound(err))
	assert.Equal(t, []string{ListHint}, Hints(err))
}
