// Package prompt builds the final prompt text from a command template.
package prompt

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/fsmiamoto/promptcraft/internal/errs"
)

// Placeholder is replaced by the space-joined arguments. It is matched
// literally and case-sensitively; "$ARGUMENTS[0]" is not an index, the
// token is replaced and "[0]" is kept as text.
const Placeholder = "$ARGUMENTS"

// Resolver maps a command name to a template path.
type Resolver interface {
	Resolve(name string) (string, error)
}

// Generator resolves a command and renders its template.
type Generator struct {
	resolver Resolver
	log      zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(g *Generator) { g.log = log }
}

// NewGenerator creates a Generator backed by r.
func NewGenerator(r Resolver, opts ...Option) *Generator {
	g := &Generator{resolver: r, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate resolves name, reads its template and substitutes args.
// Resolution errors are returned unchanged; read failures are returned as
// errs.TemplateReadError.
func (g *Generator) Generate(name string, args []string) (string, error) {
	path, err := g.resolver.Resolve(name)
	if err != nil {
		return "", err
	}
	return g.Render(path, args)
}

// Render reads the template at path and substitutes args, skipping
// resolution. Read failures are returned as errs.TemplateReadError.
func (g *Generator) Render(path string, args []string) (string, error) {
	content, err := ReadTemplate(path)
	if err != nil {
		g.log.Debug().Err(err).Str("path", path).Msg("template read failed")
		return "", err
	}

	g.log.Debug().Str("path", path).Int("args", len(args)).Int("placeholders", strings.Count(content, Placeholder)).Msg("substituting arguments")
	return Substitute(content, args), nil
}

// ReadTemplate reads the file at path as UTF-8 text.
func ReadTemplate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errs.NewTemplateRead(path, err)
	}
	if !utf8.Valid(data) {
		return "", errs.NewTemplateRead(path, errs.ErrInvalidEncoding)
	}
	return string(data), nil
}

// Substitute replaces every Placeholder in content with args joined by a
// single space. Everything else in content is returned unchanged.
func Substitute(content string, args []string) string {
	return strings.ReplaceAll(content, Placeholder, strings.Join(args, " "))
}
