// Package scaffold creates the project commands directory with an example
// template.
package scaffold

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/fsmiamoto/promptcraft/internal/resolver"
)

// Result describes what Init did.
type Result struct {
	Dir     string // commands directory
	File    string // example template path
	Created bool   // false when the example already existed
}

// Init creates <cwd>/.promptcraft/commands and writes the example template
// unless a file with that name is already there. Running it twice is safe.
func Init(cwd string) (Result, error) {
	dir := resolver.ProjectPath(cwd).Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, errors.Wrap(err, "create commands directory")
	}

	path := filepath.Join(dir, ExampleName+resolver.Extension)
	res := Result{Dir: dir, File: path}

	if _, err := os.Stat(path); err == nil {
		return res, nil
	} else if !os.IsNotExist(err) {
		return Result{}, errors.Wrapf(err, "stat %s", path)
	}

	// O_EXCL so a file created since the Stat is never overwritten.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return res, nil
		}
		return Result{}, errors.Wrap(err, "create example template")
	}
	// A partial file would make the next Init report "already initialized".
	if err := writeExample(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return Result{}, errors.Wrap(err, "write example template")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return Result{}, errors.Wrap(err, "close example template")
	}

	res.Created = true
	return res, nil
}

// writeExample writes the example template body to w.
var writeExample = func(w io.Writer) error {
	_, err := io.WriteString(w, exampleTemplate)
	return err
}
