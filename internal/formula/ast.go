// Package formula implements the modal mu-calculus formula parser and its
// abstract syntax tree, including the binder annotations (alternation
// depth, surrounding-binder linkage) the Emerson-Lei evaluator needs.
package formula

import "fmt"

// Kind identifies which of the grammar's node variants a Node is.
type Kind int

const (
	KindFalse Kind = iota
	KindTrue
	KindVar
	KindAnd
	KindOr
	KindDiamond
	KindBox
	KindMu
	KindNu
)

func (k Kind) String() string {
	switch k {
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindVar:
		return "var"
	case KindAnd:
		return "&&"
	case KindOr:
		return "||"
	case KindDiamond:
		return "<>"
	case KindBox:
		return "[]"
	case KindMu:
		return "mu"
	case KindNu:
		return "nu"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a single node of a formula's AST. Which fields are meaningful
// depends on Kind:
//
//	KindFalse, KindTrue  - no other fields used.
//	KindVar              - VarName.
//	KindAnd, KindOr      - Left, Right.
//	KindDiamond, KindBox - Action, Child.
//	KindMu, KindNu       - VarName (the bound variable), Child, plus the
//	                       binder annotations below, set by Annotate.
//
// Mu/Nu binder annotations, populated by Annotate and consumed by the
// Emerson-Lei evaluator (package eval):
//
//	ID               - a unique, densely packed index among this formula's
//	                    binders, used to index the evaluator's approximant
//	                    array.
//	AlternationDepth - see spec §4.5; computed once, before evaluation.
//	Surrounding       - the nearest lexically enclosing Mu/Nu node, or nil
//	                    for the outermost binder.
type Node struct {
	Kind Kind

	VarName string
	Action  string

	Left, Right *Node
	Child       *Node

	ID               int
	AlternationDepth int
	Surrounding      *Node
}

// IsGreatest reports whether a Mu/Nu node is a greatest fixed point (Nu).
// Only meaningful when Kind is KindMu or KindNu.
func (n *Node) IsGreatest() bool {
	return n.Kind == KindNu
}

// False returns a new KindFalse node.
func False() *Node { return &Node{Kind: KindFalse} }

// True returns a new KindTrue node.
func True() *Node { return &Node{Kind: KindTrue} }

// Var returns a new KindVar node referencing the recursion variable name.
func Var(name string) *Node { return &Node{Kind: KindVar, VarName: name} }

// And returns a new KindAnd node.
func And(left, right *Node) *Node { return &Node{Kind: KindAnd, Left: left, Right: right} }

// Or returns a new KindOr node.
func Or(left, right *Node) *Node { return &Node{Kind: KindOr, Left: left, Right: right} }

// Diamond returns a new KindDiamond node: <a>f.
func Diamond(action string, child *Node) *Node {
	return &Node{Kind: KindDiamond, Action: action, Child: child}
}

// Box returns a new KindBox node: [a]f.
func Box(action string, child *Node) *Node {
	return &Node{Kind: KindBox, Action: action, Child: child}
}

// Mu returns a new KindMu node: mu X. f.
func Mu(varName string, child *Node) *Node {
	return &Node{Kind: KindMu, VarName: varName, Child: child}
}

// Nu returns a new KindNu node: nu X. f.
func Nu(varName string, child *Node) *Node {
	return &Node{Kind: KindNu, VarName: varName, Child: child}
}

// String renders a Node back into the grammar of spec §4.2. The output is
// syntactically identical source, though formatting is not preserved.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindFalse:
		return "false"
	case KindTrue:
		return "true"
	case KindVar:
		return n.VarName
	case KindAnd:
		return fmt.Sprintf("(%s && %s)", n.Left, n.Right)
	case KindOr:
		return fmt.Sprintf("(%s || %s)", n.Left, n.Right)
	case KindDiamond:
		return fmt.Sprintf("<%s>%s", n.Action, n.Child)
	case KindBox:
		return fmt.Sprintf("[%s]%s", n.Action, n.Child)
	case KindMu:
		return fmt.Sprintf("mu %s. %s", n.VarName, n.Child)
	case KindNu:
		return fmt.Sprintf("nu %s. %s", n.VarName, n.Child)
	default:
		return fmt.Sprintf("<invalid node kind %d>", int(n.Kind))
	}
}
