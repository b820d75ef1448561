// Package cache is a binary on-disk cache for parsed LTS systems, keyed by a
// content hash of their source Aldebaran text. It exists so that the CLI and
// server can skip re-parsing and re-indexing a large transition system across
// repeated runs against the same file.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dekarrin/muchk/internal/lts"
	"github.com/dekarrin/rezi"
)

// snapshot is the flat, fully-exported form of an *lts.LTS that rezi can
// serialize; lts.LTS itself keeps its fields unexported to preserve its
// invariants, so cache round-trips through this shape instead.
type snapshot struct {
	NumStates   int
	Initial     int
	ActionNames []string
	Transitions []lts.Transition
}

func snapshotOf(l *lts.LTS) snapshot {
	return snapshot{
		NumStates:   l.NumStates(),
		Initial:     l.Initial(),
		ActionNames: l.Actions(),
		Transitions: l.Transitions(),
	}
}

func (s snapshot) toLTS() *lts.LTS {
	return lts.FromParts(s.NumStates, s.Initial, s.ActionNames, s.Transitions)
}

// Dir is an on-disk cache rooted at a directory. The zero value is not
// usable; construct one with Open.
type Dir struct {
	path string
}

// Open returns a Dir rooted at path, creating the directory if it does not
// already exist.
func Open(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", path, err)
	}
	return &Dir{path: path}, nil
}

func entryKey(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

func (d *Dir) entryPath(source string) string {
	return filepath.Join(d.path, "system-"+entryKey(source)+".rezi")
}

// LoadSystem returns the LTS parsed from source, reusing a cached parse if
// one exists for this exact source text. On a cache miss (or a corrupt cache
// entry) it parses source with lts.Load, stores the result, and returns it.
func (d *Dir) LoadSystem(source string, opts ...lts.LoadOption) (*lts.LTS, error) {
	p := d.entryPath(source)

	if data, err := os.ReadFile(p); err == nil {
		var snap snapshot
		if _, err := rezi.DecBinary(data, &snap); err == nil {
			return snap.toLTS(), nil
		}
		// corrupt or stale entry; fall through and re-parse.
	}

	l, err := lts.Load(strings.NewReader(source), opts...)
	if err != nil {
		return nil, err
	}

	data := rezi.EncBinary(snapshotOf(l))
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing cache entry: %w", err)
	}

	return l, nil
}
