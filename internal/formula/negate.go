package formula

// Negate builds the pushed-negation dual of n (spec §8, Testable Property
// 3: duality): true/false, And/Or, Diamond/Box, and Mu/Nu are each swapped
// and the swap is pushed all the way to the leaves; Var names are left
// alone, since under this fragment's no-shadowing assumption a variable's
// binder is swapped consistently with every occurrence of that variable.
//
// The returned tree is freshly built and unannotated; callers must run it
// through Annotate (or Prepare, starting from source text) before
// evaluating it.
func Negate(n *Node) *Node {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindFalse:
		return True()
	case KindTrue:
		return False()
	case KindVar:
		return Var(n.VarName)
	case KindAnd:
		return Or(Negate(n.Left), Negate(n.Right))
	case KindOr:
		return And(Negate(n.Left), Negate(n.Right))
	case KindDiamond:
		return Box(n.Action, Negate(n.Child))
	case KindBox:
		return Diamond(n.Action, Negate(n.Child))
	case KindMu:
		return Nu(n.VarName, Negate(n.Child))
	case KindNu:
		return Mu(n.VarName, Negate(n.Child))
	default:
		panic("formula: Negate: invalid node kind")
	}
}
