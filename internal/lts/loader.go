package lts

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dekarrin/muchk/internal/bitset"
)

// des (<initial>, <num_transitions>, <num_states>)
var headerPattern = regexp.MustCompile(`^des\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)\s*$`)

// (<src>, "<action>", <dst>)
var transitionPattern = regexp.MustCompile(`^\(\s*(\d+)\s*,\s*"([a-z][a-z0-9_]*)"\s*,\s*(\d+)\s*\)\s*$`)

// LoadOption configures Load's behavior.
type LoadOption func(*loadOptions)

type loadOptions struct {
	strictCount bool
}

// Strict makes a declared transition count that disagrees with the number of
// transitions actually read a fatal MalformedLTSError. Without it, Load
// returns the discrepancy to the caller via CountMismatch instead of
// failing.
func Strict() LoadOption {
	return func(o *loadOptions) { o.strictCount = true }
}

// CountMismatch is returned alongside a successfully loaded LTS (as a
// non-nil error from Load only in Strict mode) when the header's declared
// transition count disagrees with the number of transitions actually read.
type CountMismatch struct {
	Declared int
	Actual   int
}

func (e *CountMismatch) Error() string {
	return "declared transition count disagrees with the number of transitions read"
}

// Load parses the Aldebaran textual format (spec §6) from r and returns the
// indexed LTS. Blank lines and trailing whitespace are tolerated.
//
// A declared transition count that disagrees with the number of transitions
// actually read is, by default, a non-fatal discrepancy: Load still returns
// a usable LTS plus a non-nil *CountMismatch error. Pass Strict() to make
// the same discrepancy a fatal *MalformedLTSError instead.
func Load(r io.Reader, opts ...LoadOption) (*LTS, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNum := 0
	var header string
	haveHeader := false
	headerLine := 0

	for scanner.Scan() {
		lineNum++
		text := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		header = text
		headerLine = lineNum
		haveHeader = true
		break
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !haveHeader {
		return nil, malformedf(0, "", "missing header: expected \"des (initial, num_transitions, num_states)\"")
	}

	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return nil, malformedf(headerLine, header, "malformed header: expected \"des (initial, num_transitions, num_states)\", got %q", header)
	}

	initial, _ := strconv.Atoi(m[1])
	declaredTransitions, _ := strconv.Atoi(m[2])
	numStates, _ := strconv.Atoi(m[3])

	if initial < 0 || initial >= numStates {
		return nil, malformedf(headerLine, header, "initial state %d out of range [0, %d)", initial, numStates)
	}

	l := &LTS{
		numStates:   numStates,
		initial:     initial,
		actionIndex: make(map[string]int),
		pred:        make(map[int][]bitset.Set),
	}

	for scanner.Scan() {
		lineNum++
		text := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		tm := transitionPattern.FindStringSubmatch(text)
		if tm == nil {
			return nil, malformedf(lineNum, text, "malformed transition row: expected (src, \"action\", dst), got %q", text)
		}

		src, _ := strconv.Atoi(tm[1])
		action := tm[2]
		dst, _ := strconv.Atoi(tm[3])

		if src < 0 || src >= numStates {
			return nil, malformedf(lineNum, text, "transition source %d out of range [0, %d)", src, numStates)
		}
		if dst < 0 || dst >= numStates {
			return nil, malformedf(lineNum, text, "transition destination %d out of range [0, %d)", dst, numStates)
		}

		actionID := l.internAction(action)
		l.addTransition(src, actionID, dst)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if l.numTransitions != declaredTransitions {
		if o.strictCount {
			return nil, malformedf(headerLine, header, "declared %d transitions but read %d", declaredTransitions, l.numTransitions)
		}
		return l, &CountMismatch{Declared: declaredTransitions, Actual: l.numTransitions}
	}

	return l, nil
}
