// Package resolver finds command templates on disk.
//
// A Resolver walks an ordered list of search paths and returns the first
// <dir>/<name>.md that exists as a regular file. The standard order puts the
// project directory (<cwd>/.promptcraft/commands) before the global one
// (<home>/.promptcraft/commands), so a project template always shadows a
// global template with the same name.
package resolver

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/fsmiamoto/promptcraft/internal/errs"
)

const (
	// DirName is the per-project and per-user configuration directory.
	DirName = ".promptcraft"
	// CommandsDir holds the templates inside DirName.
	CommandsDir = "commands"
	// Extension is appended to a command name to build its filename.
	Extension = ".md"
)

// Source names the directory a template came from.
type Source string

const (
	SourceProject Source = "Project"
	SourceGlobal  Source = "Global"
)

// SearchPath is one candidate commands directory.
type SearchPath struct {
	Dir    string
	Source Source
}

// ProjectPath returns the project search path rooted at cwd.
func ProjectPath(cwd string) SearchPath {
	return SearchPath{Dir: filepath.Join(cwd, DirName, CommandsDir), Source: SourceProject}
}

// GlobalPath returns the user-global search path rooted at home.
func GlobalPath(home string) SearchPath {
	return SearchPath{Dir: filepath.Join(home, DirName, CommandsDir), Source: SourceGlobal}
}

// StandardPaths returns the project path followed by the global path.
// An empty home skips the global path.
func StandardPaths(cwd, home string) []SearchPath {
	paths := []SearchPath{ProjectPath(cwd)}
	if home != "" {
		paths = append(paths, GlobalPath(home))
	}
	return paths
}

// Resolver looks up command templates across its search paths.
type Resolver struct {
	paths []SearchPath
	log   zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug tracing of lookups.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New creates a Resolver that searches paths in order.
func New(paths []SearchPath, opts ...Option) *Resolver {
	r := &Resolver{
		paths: append([]SearchPath(nil), paths...),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SearchPaths returns a copy of the configured search paths.
func (r *Resolver) SearchPaths() []SearchPath {
	return append([]SearchPath(nil), r.paths...)
}

// Resolve returns the absolute path of the template for name. It fails with
// an errs.CommandNotFoundError when no search path holds one or when name
// is not a valid command name.
func (r *Resolver) Resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	searched := make([]string, 0, len(r.paths))
	for _, sp := range r.paths {
		searched = append(searched, sp.Dir)

		candidate, err := candidatePath(sp.Dir, name)
		if err != nil {
			return "", err
		}
		if isRegularFile(candidate) {
			r.log.Debug().Str("command", name).Str("source", string(sp.Source)).Str("path", candidate).Msg("template resolved")
			return candidate, nil
		}
		r.log.Debug().Str("command", name).Str("path", candidate).Msg("template not present")
	}

	return "", errs.NewCommandNotFound(name, searched)
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateName rejects names that could escape a commands directory.
// Valid names start with a letter, digit or underscore and continue with
// letters, digits, '_', '-' or '.', never containing "..".
func ValidateName(name string) error {
	switch {
	case name == "":
		return errs.NewInvalidCommandName(name, "command name is empty")
	case strings.ContainsAny(name, `/\`):
		return errs.NewInvalidCommandName(name, "path separators are not allowed")
	case strings.Contains(name, ".."):
		return errs.NewInvalidCommandName(name, "'..' is not allowed")
	case !namePattern.MatchString(name):
		return errs.NewInvalidCommandName(name, "unsupported characters")
	}
	return nil
}

// candidatePath joins dir and name and verifies the result stays in dir.
func candidatePath(dir, name string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", dir)
	}
	dir = abs
	candidate := filepath.Join(dir, name+Extension)
	rel, err := filepath.Rel(dir, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || strings.ContainsRune(rel, filepath.Separator) {
		return "", errs.NewInvalidCommandName(name, "resolves outside the commands directory")
	}
	return candidate, nil
}

// isRegularFile follows symlinks. Stat failures of any kind count as absent.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
