package eval

import (
	"strings"
	"testing"

	"github.com/dekarrin/muchk/internal/formula"
	"github.com/dekarrin/muchk/internal/lts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadLTS(t *testing.T, text string) *lts.LTS {
	t.Helper()
	l, err := lts.Load(strings.NewReader(text))
	require.NoError(t, err)
	return l
}

func mustPrepare(t *testing.T, f string) *formula.Node {
	t.Helper()
	n, err := formula.Prepare(f)
	require.NoError(t, err)
	return n
}

// lts1 per spec §8: two states chasing each other on action a forever.
const lts1 = `des (0, 2, 2)
(0, "a", 1)
(1, "a", 0)
`

// lts2 per spec §8: a single state with no transitions at all.
const lts2 = `des (0, 0, 1)
`

// lts3 per spec §8: a two-step chain, a then b, with no way back.
const lts3 = `des (0, 2, 3)
(0, "a", 1)
(1, "b", 2)
`

func Test_Check_lts1Scenarios(t *testing.T) {
	l := mustLoadLTS(t, lts1)

	testCases := []struct {
		formula string
		expect  bool
	}{
		{"<a>true", true},
		{"[a]false", false},
		{"nu X. <a>X", true},
		{"mu X. <a>X", false},
	}

	for _, tc := range testCases {
		t.Run(tc.formula, func(t *testing.T) {
			root := mustPrepare(t, tc.formula)
			assert.Equal(t, tc.expect, Check(l, root, Naive, nil), "naive")
			assert.Equal(t, tc.expect, Check(l, root, EmersonLeiAlgorithm, nil), "emerson-lei")
		})
	}
}

func Test_Check_lts2Scenarios(t *testing.T) {
	l := mustLoadLTS(t, lts2)

	testCases := []struct {
		formula string
		expect  bool
	}{
		{"<a>true", false},
		{"[a]false", true},
		{"mu X. (<a>true || X)", false},
	}

	for _, tc := range testCases {
		t.Run(tc.formula, func(t *testing.T) {
			root := mustPrepare(t, tc.formula)
			assert.Equal(t, tc.expect, Check(l, root, Naive, nil), "naive")
			assert.Equal(t, tc.expect, Check(l, root, EmersonLeiAlgorithm, nil), "emerson-lei")
		})
	}
}

func Test_Check_lts3Scenarios(t *testing.T) {
	l := mustLoadLTS(t, lts3)

	testCases := []struct {
		formula string
		expect  bool
	}{
		{"<a><b>true", true},
		{"[a][b]false", false},
	}

	for _, tc := range testCases {
		t.Run(tc.formula, func(t *testing.T) {
			root := mustPrepare(t, tc.formula)
			assert.Equal(t, tc.expect, Check(l, root, Naive, nil), "naive")
			assert.Equal(t, tc.expect, Check(l, root, EmersonLeiAlgorithm, nil), "emerson-lei")
		})
	}
}

func Test_Check_lts3NuAtDifferentStates(t *testing.T) {
	l := mustLoadLTS(t, lts3)
	root := mustPrepare(t, "nu X. (<a>true || <b>X)")

	satNaive := Satisfying(l, root, Naive, nil)
	assert.True(t, satNaive.Has(0))
	assert.False(t, satNaive.Has(2))

	satEL := Satisfying(l, root, EmersonLeiAlgorithm, nil)
	assert.True(t, satEL.Has(0))
	assert.False(t, satEL.Has(2))
}

// alternationFormula is the coupled mu/nu formula from spec §8's alternation
// test: X and Y have opposite polarity and reference each other, so X must
// reset every time it is re-entered under either algorithm.
const alternationFormula = "nu Y. mu X. (<a>X || <b>Y)"

func Test_Check_alternationAgreesBetweenAlgorithms(t *testing.T) {
	l := mustLoadLTS(t, `des (0, 4, 3)
(0, "a", 0)
(0, "b", 1)
(1, "a", 1)
(1, "b", 2)
`)
	root := mustPrepare(t, alternationFormula)

	assert.Equal(t, Check(l, root, Naive, nil), Check(l, root, EmersonLeiAlgorithm, nil))
}

// coupledLTS, with coupledFormula below, isolates the case where Emerson-Lei
// genuinely saves work: Y (mu) is directly opposite-polarity to Z (nu) and
// so always resets, same as naive, but X (mu) is same-polarity to its
// nearest enclosing binder Y, so its approximant cell is never reset and
// survives across every one of Y's re-entries, picking up where it last
// converged instead of restarting from empty.
const coupledLTS = `des (0, 3, 2)
(0, "a", 0)
(0, "b", 1)
(1, "c", 0)
`

const coupledFormula = "nu Z. mu Y. (mu X. (<a>X || <b>Y) || <c>Z)"

func Test_Check_coupledReuseAgreesAndEmersonLeiDoesFewerIterations(t *testing.T) {
	l := mustLoadLTS(t, coupledLTS)
	root := mustPrepare(t, coupledFormula)

	naiveStats := &Stats{}
	naiveResult := Check(l, root, Naive, naiveStats)

	elStats := &Stats{}
	elResult := Check(l, root, EmersonLeiAlgorithm, elStats)

	assert.Equal(t, naiveResult, elResult, "algorithm equivalence")
	assert.True(t, naiveResult, "initial state satisfies the coupled formula")
	assert.Less(t, elStats.Total(), naiveStats.Total(), "emerson-lei should reuse X's approximant instead of resetting it every time Y re-enters it")
}

func Test_Check_determinism(t *testing.T) {
	l := mustLoadLTS(t, lts1)
	root := mustPrepare(t, "nu X. <a>X")

	first := Check(l, root, EmersonLeiAlgorithm, nil)
	second := Check(l, root, EmersonLeiAlgorithm, nil)
	assert.Equal(t, first, second)
}

func Test_Check_dualityViaNegate(t *testing.T) {
	testCases := []struct {
		name    string
		formula string
		ltsText string
	}{
		{"alternation formula", alternationFormula, `des (0, 4, 3)
(0, "a", 0)
(0, "b", 1)
(1, "a", 1)
(1, "b", 2)
`},
		{"coupled formula", coupledFormula, coupledLTS},
		{"lts3 box/diamond", "<a><b>true", lts3},
		{"lts2 vacuity", "[a]false", lts2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := mustLoadLTS(t, tc.ltsText)

			root, err := formula.Parse(tc.formula)
			require.NoError(t, err)
			formula.Annotate(root)

			dual := formula.Negate(root)
			formula.Annotate(dual)

			got := Check(l, root, EmersonLeiAlgorithm, nil)
			gotDual := Check(l, dual, EmersonLeiAlgorithm, nil)
			assert.Equal(t, got, !gotDual)
		})
	}
}

func Test_Check_modalVacuity(t *testing.T) {
	l := mustLoadLTS(t, lts2)

	diamond := mustPrepare(t, "<a>false")
	box := mustPrepare(t, "[a]false")

	assert.False(t, Check(l, diamond, EmersonLeiAlgorithm, nil))
	assert.True(t, Check(l, box, EmersonLeiAlgorithm, nil))
}
