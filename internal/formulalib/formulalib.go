// Package formulalib resolves named formulas against a directory of .mcf
// files, one formula per file, so that a CLI or server caller can pass
// "deadlock-free" instead of repasting the formula text every time. It adds
// no new formula semantics; a resolved name is just the contents of a file,
// handed to formula.Prepare exactly as a directly-typed formula would be.
package formulalib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileExt = ".mcf"

// Dir is a directory of named .mcf formula files. The zero value is not
// usable; construct one with Open.
type Dir struct {
	path string
}

// Open returns a Dir rooted at path. The directory is not required to exist
// yet; a missing directory is only an error once Resolve or List is called
// against it.
func Open(path string) Dir {
	return Dir{path: path}
}

// Resolve reads the formula named name (without the .mcf extension) from
// the directory and returns its source text. The name must not contain a
// path separator; names are matched against file names only, never
// traversed as paths.
func (d Dir) Resolve(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("formula name %q is not a valid library entry", name)
	}

	data, err := os.ReadFile(filepath.Join(d.path, name+fileExt))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no formula named %q in library", name)
		}
		return "", fmt.Errorf("reading formula %q: %w", name, err)
	}

	return string(data), nil
}

// List returns the names of every formula in the library, sorted by the
// order os.ReadDir returns directory entries in (lexical by file name). A
// missing directory is reported as an empty list, not an error, since an
// unconfigured library is a valid "nothing to list" state.
func (d Dir) List() ([]string, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading formula library %s: %w", d.path, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) != fileExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), fileExt))
	}
	return names, nil
}
