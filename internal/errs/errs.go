// Package errs defines the two failure kinds the generator can report:
// a command that cannot be found and a template that cannot be read.
//
// Both are plain struct types so callers can match them with errors.As.
// Constructors attach user-facing hints through cockroachdb/errors; the
// CLI prints them under the main message.
package errs

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"
)

// Structured codes for programmatic handling.
const (
	CodeCommandNotFound          = "COMMAND_NOT_FOUND"
	CodeInvalidCommandName       = "INVALID_COMMAND_NAME"
	CodeTemplateFileNotFound     = "TEMPLATE_FILE_NOT_FOUND"
	CodeTemplatePermissionDenied = "TEMPLATE_PERMISSION_DENIED"
	CodeTemplateEncoding         = "TEMPLATE_ENCODING_ERROR"
	CodeTemplateIO               = "TEMPLATE_IO_ERROR"
)

// ListHint is attached to every CommandNotFoundError.
const ListHint = "Run 'promptcraft --list' to see available commands"

// ErrInvalidEncoding is the cause recorded when a template is not UTF-8.
var ErrInvalidEncoding = errors.New("template is not valid UTF-8")

// CommandNotFoundError reports that no search path holds a template for Name.
type CommandNotFoundError struct {
	Name     string
	Searched []string // directories that were checked, in order
	Reason   string   // set when the name was rejected before any lookup
	Code     string
}

func (e *CommandNotFoundError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("command %q not found: %s", e.Name, e.Reason)
	case len(e.Searched) > 0:
		return fmt.Sprintf("command %q not found. Searched in: %s", e.Name, strings.Join(e.Searched, ", "))
	default:
		return fmt.Sprintf("command %q not found", e.Name)
	}
}

// NewCommandNotFound returns a CommandNotFoundError for a name that was
// looked up in searched and missed everywhere.
func NewCommandNotFound(name string, searched []string) error {
	return errors.WithHint(&CommandNotFoundError{
		Name:     name,
		Searched: searched,
		Code:     CodeCommandNotFound,
	}, ListHint)
}

// NewInvalidCommandName returns a CommandNotFoundError for a name that can
// never map to a file inside a commands directory.
func NewInvalidCommandName(name, reason string) error {
	err := errors.WithHint(&CommandNotFoundError{
		Name:   name,
		Reason: reason,
		Code:   CodeInvalidCommandName,
	}, "Command names may contain letters, digits, '-', '_' and '.'")
	return errors.WithHint(err, ListHint)
}

// TemplateReadError reports that a resolved template could not be read as
// text.
type TemplateReadError struct {
	Path string
	Code string
	Err  error
}

func (e *TemplateReadError) Error() string {
	switch e.Code {
	case CodeTemplateFileNotFound:
		return "Template file not found: " + e.Path
	case CodeTemplatePermissionDenied:
		return "Permission denied reading template file: " + e.Path
	case CodeTemplateEncoding:
		return fmt.Sprintf("Failed to decode template file %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("I/O error reading template file %s: %v", e.Path, e.Err)
	}
}

func (e *TemplateReadError) Unwrap() error { return e.Err }

// NewTemplateRead classifies cause and wraps it in a TemplateReadError.
func NewTemplateRead(path string, cause error) error {
	e := &TemplateReadError{Path: path, Err: cause}
	switch {
	case errors.Is(cause, fs.ErrNotExist):
		e.Code = CodeTemplateFileNotFound
		return errors.WithHint(e, "The file may have been moved or deleted; run the command again")
	case errors.Is(cause, fs.ErrPermission):
		e.Code = CodeTemplatePermissionDenied
		return errors.WithHintf(e, "Check the permissions of %s", path)
	case errors.Is(cause, ErrInvalidEncoding):
		e.Code = CodeTemplateEncoding
		return errors.WithHint(e, "Templates must be saved as UTF-8 text")
	default:
		e.Code = CodeTemplateIO
		return e
	}
}

// IsCommandNotFound reports whether err is or wraps a CommandNotFoundError.
func IsCommandNotFound(err error) bool {
	var target *CommandNotFoundError
	return errors.As(err, &target)
}

// IsTemplateRead reports whether err is or wraps a TemplateReadError.
func IsTemplateRead(err error) bool {
	var target *TemplateReadError
	return errors.As(err, &target)
}

// Hints returns every user hint attached anywhere in err's chain.
func Hints(err error) []string {
	return errors.GetAllHints(err)
}
