package discover

import (
	"reflect"

	"github.com/dop251/goja/ast"
)

var astPkgPath = reflect.TypeOf(ast.Identifier{}).PkgPath()

// walk calls visit for every ast node reachable from v, parents first.
// The parser keeps some nodes in more than one place (function declaration
// lists), so pointers already seen are skipped.
func walk(v reflect.Value, seen map[uintptr]bool, visit func(ast.Node)) {
	switch v.Kind() {
	case reflect.Interface:
		if !v.IsNil() {
			walk(v.Elem(), seen, visit)
		}
	case reflect.Pointer:
		if v.IsNil() || v.Type().Elem().PkgPath() != astPkgPath {
			return
		}
		if seen[v.Pointer()] {
			return
		}
		seen[v.Pointer()] = true
		if n, ok := v.Interface().(ast.Node); ok {
			visit(n)
		}
		walk(v.Elem(), seen, visit)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).IsExported() {
				walk(v.Field(i), seen, visit)
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			walk(v.Index(i), seen, visit)
		}
	}
}
