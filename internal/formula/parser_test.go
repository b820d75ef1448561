package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse_literals(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect *Node
	}{
		{name: "false", input: "false", expect: False()},
		{name: "true", input: "true", expect: True()},
		{name: "variable", input: "X", expect: Var("X")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect.String(), got.String())
		})
	}
}

func Test_Parse_connectives(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "and", input: "(true && false)", expect: "(true && false)"},
		{name: "or", input: "(true || false)", expect: "(true || false)"},
		{name: "nested and/or", input: "((true && false) || X)", expect: "((true && false) || X)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, got.String())
		})
	}
}

func Test_Parse_modalities(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "diamond", input: "<a>true", expect: "<a>true"},
		{name: "box", input: "[a]false", expect: "[a]false"},
		{name: "diamond of box", input: "<a>[b]true", expect: "<a>[b]true"},
		{name: "action with digits and underscore", input: "<a1_b2>true", expect: "<a1_b2>true"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, got.String())
		})
	}
}

func Test_Parse_binders(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "mu", input: "mu X. <a>X", expect: "mu X. <a>X"},
		{name: "nu", input: "nu X. <a>X", expect: "nu X. <a>X"},
		{name: "alternation", input: "nu Y. mu X. ((<a>X) || (<b>Y))", expect: "nu Y. mu X. (<a>X || <b>Y)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, got.String())
		})
	}
}

func Test_Parse_bareGroupingParens(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "single diamond", input: "(<a>X)", expect: "<a>X"},
		{name: "redundant nesting around both operands", input: "((<a>X) || (<b>Y))", expect: "(<a>X || <b>Y)"},
		{name: "wrapped binder operand", input: "(X || (mu Y. <a>Y))", expect: "(X || mu Y. <a>Y)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, got.String())
		})
	}
}

func Test_Parse_whitespaceInsignificantExceptAsSeparator(t *testing.T) {
	assert := assert.New(t)

	got, err := Parse("  mu   X .  <a> X  ")
	assert.NoError(err)
	assert.Equal("mu X. <a>X", got.String())
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{name: "unbalanced paren", input: "(true && false"},
		{name: "unknown keyword", input: "maybe X. true"},
		{name: "missing operator in group", input: "(true false)"},
		{name: "trailing input", input: "true true"},
		{name: "lowercase as variable", input: "mu x. true"},
		{name: "bad action syntax", input: "<A>true"},
		{name: "empty input", input: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			assert.Error(t, err)
			var se *SyntaxError
			assert.ErrorAs(t, err, &se)
		})
	}
}

func Test_FreeVariables(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{name: "closed mu", input: "mu X. <a>X", expect: nil},
		{name: "free var", input: "X", expect: []string{"X"}},
		{name: "free inside bound sibling", input: "(X || (mu Y. <a>Y))", expect: []string{"X"}},
		{name: "nested closed", input: "nu Y. mu X. ((<a>X) || (<b>Y))", expect: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, FreeVariables(n))
		})
	}
}

func Test_Prepare_rejectsOpenFormula(t *testing.T) {
	assert := assert.New(t)

	_, err := Prepare("X")
	assert.Error(err)
	var oe *OpenFormulaError
	assert.ErrorAs(err, &oe)
	assert.Equal("X", oe.VarName)
}

func Test_Negate_dualPairs(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "true/false", input: "true", expect: "false"},
		{name: "false/true", input: "false", expect: "true"},
		{name: "and/or", input: "(true && false)", expect: "(false || true)"},
		{name: "diamond/box", input: "<a>true", expect: "[a]false"},
		{name: "mu/nu", input: "mu X. <a>X", expect: "nu X. [a]X"},
		{name: "alternation formula", input: "nu Y. mu X. ((<a>X) || (<b>Y))", expect: "mu Y. nu X. ([a]X && [b]Y)"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Parse(tc.input)
			assert.NoError(t, err)
			got := Negate(n)
			assert.Equal(t, tc.expect, got.String())
		})
	}
}
