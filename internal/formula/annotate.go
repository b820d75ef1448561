package formula

// binderRef pairs a Mu/Nu node with the set of variable names that occur
// anywhere within that binder's own subtree (including the binder's own
// bound variable, if it happens to reference itself, which is the usual
// case for a recursive formula).
type binderRef struct {
	node *Node
	refs map[string]bool
}

// Annotate computes each binder's alternation depth (spec §4.5), assigns a
// dense, zero-based ID to every Mu/Nu node for use as an index into the
// Emerson-Lei evaluator's approximant array, and links each binder to its
// nearest lexically enclosing binder (Surrounding is nil for the outermost
// binder). Call it once per parsed formula, after Parse and before
// evaluation.
//
// Annotate assumes no two nested binders share a variable name (spec §1
// Non-goals: shadowing is undefined); under that assumption, a Var(X) leaf
// anywhere beneath a binder B is unambiguously a reference to B if B binds
// X, which is what the alternation-depth computation below relies on.
func Annotate(root *Node) {
	nextID := 0
	annotate(root, nil, &nextID)
}

// annotate walks n in post-order, returning:
//
//   - refs: every variable name occurring as a Var leaf anywhere in n's
//     subtree (used by an enclosing binder to test whether a nested binder
//     of opposite polarity is actually coupled to it, per spec §9's
//     coupling rule).
//   - binders: every Mu/Nu node found in n's subtree, each paired with the
//     refs set scoped to that binder's own subtree.
func annotate(n *Node, enclosing *Node, nextID *int) (refs map[string]bool, binders []binderRef) {
	if n == nil {
		return map[string]bool{}, nil
	}

	switch n.Kind {
	case KindFalse, KindTrue:
		n.AlternationDepth = 0
		return map[string]bool{}, nil

	case KindVar:
		n.AlternationDepth = 0
		return map[string]bool{n.VarName: true}, nil

	case KindAnd, KindOr:
		lRefs, lBinders := annotate(n.Left, enclosing, nextID)
		rRefs, rBinders := annotate(n.Right, enclosing, nextID)
		n.AlternationDepth = maxInt(n.Left.AlternationDepth, n.Right.AlternationDepth)
		return mergeRefs(lRefs, rRefs), append(lBinders, rBinders...)

	case KindDiamond, KindBox:
		cRefs, cBinders := annotate(n.Child, enclosing, nextID)
		n.AlternationDepth = n.Child.AlternationDepth
		return cRefs, cBinders

	case KindMu, KindNu:
		n.Surrounding = enclosing
		n.ID = *nextID
		*nextID++

		childRefs, childBinders := annotate(n.Child, n, nextID)

		ad := 1
		if n.Child.AlternationDepth > ad {
			ad = n.Child.AlternationDepth
		}

		// Mu couples with nested Nu binders that reference it, and
		// vice versa: opposite polarity is what alternates.
		wantGreatest := !n.IsGreatest()
		for _, b := range childBinders {
			if b.node.IsGreatest() != wantGreatest {
				continue
			}
			if b.refs[n.VarName] {
				if cand := 1 + b.node.AlternationDepth; cand > ad {
					ad = cand
				}
			}
		}
		n.AlternationDepth = ad

		return childRefs, append(childBinders, binderRef{node: n, refs: childRefs})

	default:
		return map[string]bool{}, nil
	}
}

func mergeRefs(a, b map[string]bool) map[string]bool {
	out := make(map[string]bool, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NumBinders returns the number of Mu/Nu nodes in an annotated formula,
// which is also one past the largest binder ID assigned by Annotate; the
// Emerson-Lei evaluator sizes its approximant array to this.
func NumBinders(root *Node) int {
	count := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindAnd, KindOr:
			walk(n.Left)
			walk(n.Right)
		case KindDiamond, KindBox:
			walk(n.Child)
		case KindMu, KindNu:
			count++
			walk(n.Child)
		}
	}
	walk(root)
	return count
}

// FreeVariables returns every recursion variable referenced in root with no
// enclosing Mu/Nu binder of the same name, in first-occurrence order with
// duplicates removed. A non-empty result means root is an open formula
// (spec §7, OpenFormulaError).
func FreeVariables(root *Node) []string {
	seen := make(map[string]bool)
	var free []string

	var walk func(n *Node, bound map[string]bool)
	walk = func(n *Node, bound map[string]bool) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindVar:
			if !bound[n.VarName] {
				if !seen[n.VarName] {
					seen[n.VarName] = true
					free = append(free, n.VarName)
				}
			}
		case KindAnd, KindOr:
			walk(n.Left, bound)
			walk(n.Right, bound)
		case KindDiamond, KindBox:
			walk(n.Child, bound)
		case KindMu, KindNu:
			inner := make(map[string]bool, len(bound)+1)
			for k := range bound {
				inner[k] = true
			}
			inner[n.VarName] = true
			walk(n.Child, inner)
		}
	}

	walk(root, map[string]bool{})
	return free
}

// Prepare parses s, annotates the resulting formula, and verifies it is
// closed. It is the entry point front ends and the top-level checker should
// use; Parse/Annotate/FreeVariables remain available separately for tests
// and tools (such as Negate) that need to work with an unannotated or
// not-yet-validated tree.
func Prepare(s string) (*Node, error) {
	root, err := Parse(s)
	if err != nil {
		return nil, err
	}

	if free := FreeVariables(root); len(free) > 0 {
		return nil, &OpenFormulaError{VarName: free[0]}
	}

	Annotate(root)
	return root, nil
}
