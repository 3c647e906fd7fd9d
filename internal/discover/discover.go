// Package discover finds regular expressions in JavaScript source: regex
// literals and RegExp constructor calls with literal arguments.
package discover

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"
	"github.com/dop251/goja/parser"
)

type Kind uint8

const (
	// KindLiteral is a `/pattern/flags` literal.
	KindLiteral Kind = iota
	// KindConstructor is a `RegExp(...)` or `new RegExp(...)` call.
	KindConstructor
)

func (k Kind) String() string {
	if k == KindConstructor {
		return "constructor"
	}
	return "literal"
}

// Candidate is one regular expression found in a file. Offsets are absolute
// byte offsets into the file.
type Candidate struct {
	Kind          Kind
	Pattern       string
	Flags         string
	PatternOffset int
	FlagsOffset   int
	// Approximate is set when the pattern came from a string with escape
	// sequences, so offsets inside it do not map one-to-one onto the file.
	Approximate bool
}

const constructorName = "RegExp"

// Find parses src as a JavaScript script and returns every candidate in
// source order. Calls to RegExp are ignored when the file declares its own
// binding named RegExp.
func Find(name string, src []byte) ([]Candidate, error) {
	program, err := parser.ParseFile(nil, name, string(src), parser.IgnoreRegExpErrors)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	f := finder{}
	walk(reflect.ValueOf(program), map[uintptr]bool{}, f.visit)

	candidates := f.literals
	if !f.shadowed {
		candidates = append(candidates, f.calls...)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].PatternOffset < candidates[j].PatternOffset
	})
	return candidates, nil
}

type finder struct {
	literals []Candidate
	calls    []Candidate
	shadowed bool
}

func (f *finder) visit(node ast.Node) {
	switch n := node.(type) {
	case *ast.RegExpLiteral:
		f.literal(n)
	case *ast.CallExpression:
		f.call(n.Callee, n.ArgumentList)
	case *ast.NewExpression:
		f.call(n.Callee, n.ArgumentList)
	case *ast.Binding:
		f.declare(n.Target)
	case *ast.FunctionLiteral:
		if n.Name != nil {
			f.declare(n.Name)
		}
	case *ast.ClassLiteral:
		if n.Name != nil {
			f.declare(n.Name)
		}
	case *ast.CatchStatement:
		f.declare(n.Parameter)
	}
}

func (f *finder) declare(target ast.BindingTarget) {
	if id, ok := target.(*ast.Identifier); ok && id.Name.String() == constructorName {
		f.shadowed = true
	}
}

func (f *finder) literal(n *ast.RegExpLiteral) {
	// Literal loses its last character when the flags end the file, so the
	// parts are taken from Pattern and Flags.
	patternOffset := offset(n.Idx) + 1
	f.literals = append(f.literals, Candidate{
		Kind:          KindLiteral,
		Pattern:       n.Pattern,
		Flags:         n.Flags,
		PatternOffset: patternOffset,
		FlagsOffset:   patternOffset + len(n.Pattern) + 1,
	})
}

func (f *finder) call(callee ast.Expression, args []ast.Expression) {
	id, ok := callee.(*ast.Identifier)
	if !ok || id.Name.String() != constructorName || len(args) == 0 || len(args) > 2 {
		return
	}
	pattern, ok := stringArgument(args[0])
	if !ok {
		return
	}
	c := Candidate{
		Kind:          KindConstructor,
		Pattern:       pattern.value,
		PatternOffset: pattern.offset,
		FlagsOffset:   pattern.offset + pattern.rawLen,
		Approximate:   pattern.approximate,
	}
	if len(args) == 2 {
		flags, ok := stringArgument(args[1])
		if !ok {
			return
		}
		c.Flags = flags.value
		c.FlagsOffset = flags.offset
		c.Approximate = c.Approximate || flags.approximate
	}
	f.calls = append(f.calls, c)
}

type argument struct {
	value       string
	offset      int
	rawLen      int
	approximate bool
}

func stringArgument(expr ast.Expression) (argument, bool) {
	switch e := expr.(type) {
	case *ast.StringLiteral:
		if len(e.Literal) < 2 {
			return argument{}, false
		}
		raw := e.Literal[1 : len(e.Literal)-1]
		value := e.Value.String()
		return argument{
			value:       value,
			offset:      offset(e.Idx) + 1,
			rawLen:      len(raw),
			approximate: raw != value,
		}, true
	case *ast.TemplateLiteral:
		if e.Tag != nil || len(e.Expressions) != 0 || len(e.Elements) != 1 {
			return argument{}, false
		}
		el := e.Elements[0]
		if !el.Valid {
			return argument{}, false
		}
		value := el.Parsed.String()
		return argument{
			value:       value,
			offset:      offset(e.OpenQuote) + 1,
			rawLen:      len(el.Literal),
			approximate: el.Literal != value,
		}, true
	}
	return argument{}, false
}

// offset converts a parser index (1-based when no file set is given) to a
// byte offset.
func offset(idx file.Idx) int {
	return int(idx) - 1
}
