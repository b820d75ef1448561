// Package config loads default settings for muchk's front ends (the CLI,
// the REPL, and the HTTP daemon) from a TOML file, in the struct-tag style
// the teacher uses for its own TOML-backed world files (internal/tqw). Flags
// passed on the command line always override a value loaded from the config
// file; config only supplies what the user didn't specify.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Algorithm names accepted in the "algorithm" config key and the --naive
// flag's absence/presence; kept as strings here rather than eval.Algorithm
// to avoid a config -> eval import for what is otherwise a leaf package.
const (
	AlgorithmNaive      = "naive"
	AlgorithmEmersonLei = "emerson-lei"
)

// Config is the set of defaults a TOML file may supply. Every field is
// optional; a missing key leaves the corresponding field at its zero value,
// and callers are expected to apply their own hardcoded fallback after
// flags have had a chance to override it.
type Config struct {
	// Algorithm selects the default evaluator ("naive" or "emerson-lei")
	// used when neither --naive nor an explicit flag is given.
	Algorithm string `toml:"algorithm"`

	// Listen is the default bind address for the muchd HTTP daemon.
	Listen string `toml:"listen"`

	// DBPath is the default sqlite data directory for the HTTP daemon. An
	// empty value means the in-memory store is used.
	DBPath string `toml:"db_path"`

	// FormulaLibraryDir is the default directory muchk/muchki search for
	// named .mcf formulas (see internal/formulalib) when a formula
	// reference isn't a path to a file that exists.
	FormulaLibraryDir string `toml:"formula_library_dir"`

	// Strict makes a transition-count mismatch in a loaded LTS a fatal
	// error by default.
	Strict bool `toml:"strict"`
}

// Load reads and parses a TOML config file at path. A missing file is not
// an error; it is reported via ok=false so callers can silently fall back
// to hardcoded defaults, matching how the CLI front ends treat an absent
// config as "use the built-in defaults" rather than a fatal condition.
func Load(path string) (cfg Config, ok bool, err error) {
	if path == "" {
		return Config{}, false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, true, nil
}

// ValidAlgorithm reports whether s names one of the two algorithms this
// system supports.
func ValidAlgorithm(s string) bool {
	return s == AlgorithmNaive || s == AlgorithmEmersonLei
}
