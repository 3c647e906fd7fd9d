package resyntax

// Inspect traverses the tree rooted at node in depth-first order, calling f
// for each node. If f returns false, the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Pattern:
		Inspect(n.Body, f)
	case *Disjunction:
		for _, a := range n.Alternatives {
			Inspect(a, f)
		}
	case *Alternative:
		for _, t := range n.Terms {
			Inspect(t, f)
		}
	case *LookAroundAssertion:
		Inspect(n.Body, f)
	case *Quantifier:
		Inspect(n.Body, f)
	case *CharacterClass:
		for _, e := range n.Body {
			Inspect(e, f)
		}
	case *CharacterClassRange:
		Inspect(n.Min, f)
		Inspect(n.Max, f)
	case *ClassStringDisjunction:
		for _, s := range n.Body {
			Inspect(s, f)
		}
	case *ClassString:
		for _, c := range n.Body {
			Inspect(c, f)
		}
	case *CapturingGroup:
		Inspect(n.Body, f)
	case *IgnoreGroup:
		if n.Modifiers != nil {
			Inspect(n.Modifiers, f)
		}
		Inspect(n.Body, f)
	}
}
