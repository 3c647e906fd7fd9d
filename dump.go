package resyntax

import (
	"fmt"
	"io"
	"strconv"
)

// Fprint writes an indented dump of the tree rooted at node to w, one node
// per line, each with its span.
func Fprint(w io.Writer, node Node) error {
	d := dumper{w: w}
	d.node(node, 0)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) printf(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	for i := 0; i < depth; i++ {
		if _, d.err = io.WriteString(d.w, "  "); d.err != nil {
			return
		}
	}
	_, d.err = fmt.Fprintf(d.w, format+"\n", args...)
}

func (d *dumper) node(node Node, depth int) {
	switch n := node.(type) {
	case *Pattern:
		d.printf(depth, "Pattern %s", n.Span)
		d.node(n.Body, depth+1)
	case *Disjunction:
		d.printf(depth, "Disjunction %s", n.Span)
		for _, a := range n.Alternatives {
			d.node(a, depth+1)
		}
	case *Alternative:
		d.printf(depth, "Alternative %s", n.Span)
		for _, t := range n.Terms {
			d.node(t, depth+1)
		}
	case *BoundaryAssertion:
		d.printf(depth, "BoundaryAssertion %s %s", n.Span, n.Kind)
	case *LookAroundAssertion:
		d.printf(depth, "LookAroundAssertion %s %s", n.Span, n.Kind)
		d.node(n.Body, depth+1)
	case *Quantifier:
		max := "inf"
		if n.Max != Unbounded {
			max = strconv.Itoa(n.Max)
		}
		d.printf(depth, "Quantifier %s min=%d max=%s greedy=%t", n.Span, n.Min, max, n.Greedy)
		d.node(n.Body, depth+1)
	case *Character:
		d.printf(depth, "Character %s %s %s", n.Span, n.Kind, quoteRune(n.Value))
	case *Dot:
		d.printf(depth, "Dot %s", n.Span)
	case *CharacterClassEscape:
		d.printf(depth, "CharacterClassEscape %s %s", n.Span, n.Kind)
	case *UnicodePropertyEscape:
		prop := n.Name
		if n.Value != "" {
			prop += "=" + n.Value
		}
		d.printf(depth, "UnicodePropertyEscape %s %s negative=%t strings=%t", n.Span, prop, n.Negative, n.Strings)
	case *CharacterClass:
		d.printf(depth, "CharacterClass %s %s negative=%t strings=%t", n.Span, n.Kind, n.Negative, n.Strings)
		for _, e := range n.Body {
			d.node(e, depth+1)
		}
	case *CharacterClassRange:
		d.printf(depth, "CharacterClassRange %s", n.Span)
		d.node(n.Min, depth+1)
		d.node(n.Max, depth+1)
	case *ClassStringDisjunction:
		d.printf(depth, "ClassStringDisjunction %s strings=%t", n.Span, n.Strings)
		for _, s := range n.Body {
			d.node(s, depth+1)
		}
	case *ClassString:
		d.printf(depth, "ClassString %s strings=%t", n.Span, n.Strings)
		for _, c := range n.Body {
			d.node(c, depth+1)
		}
	case *CapturingGroup:
		if n.Name != "" {
			d.printf(depth, "CapturingGroup %s name=%s", n.Span, n.Name)
		} else {
			d.printf(depth, "CapturingGroup %s", n.Span)
		}
		d.node(n.Body, depth+1)
	case *IgnoreGroup:
		d.printf(depth, "IgnoreGroup %s", n.Span)
		if n.Modifiers != nil {
			d.node(n.Modifiers, depth+1)
		}
		d.node(n.Body, depth+1)
	case *Modifiers:
		d.printf(depth, "Modifiers %s enabling=%q disabling=%q", n.Span, n.Enabling.String(), n.Disabling.String())
	case *IndexedReference:
		d.printf(depth, "IndexedReference %s %d", n.Span, n.Index)
	case *NamedReference:
		d.printf(depth, "NamedReference %s %s", n.Span, n.Name)
	default:
		d.printf(depth, "%T", node)
	}
}

func quoteRune(r rune) string {
	if isSurrogate(r) {
		return fmt.Sprintf("U+%04X", r)
	}
	return strconv.QuoteRune(r)
}
