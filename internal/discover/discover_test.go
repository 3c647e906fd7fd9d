package discover

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func TestFind(t *testing.T) {
	src := "const a = /a(b/gu;\n" +
		"new RegExp('x+', 'y');\n" +
		"RegExp(`t`);\n" +
		"foo(/z/);\n" +
		"RegExp(s);\n"

	got, err := Find("a.js", []byte(src))
	assert.NilError(t, err)
	expected := []Candidate{
		{Kind: KindLiteral, Pattern: "a(b", Flags: "gu", PatternOffset: 11, FlagsOffset: 15},
		{Kind: KindConstructor, Pattern: "x+", Flags: "y", PatternOffset: 31, FlagsOffset: 37},
		{Kind: KindConstructor, Pattern: "t", PatternOffset: 50, FlagsOffset: 51},
		{Kind: KindLiteral, Pattern: "z", PatternOffset: 60, FlagsOffset: 62},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindSkipsDynamicArguments(t *testing.T) {
	for _, src := range []string{
		"RegExp(x)",
		"RegExp('a', f)",
		"RegExp(`a${b}`)",
		"RegExp()",
		"window.RegExp('a')",
		"RegExp('a', 'g', 1)",
	} {
		got, err := Find("a.js", []byte(src))
		assert.NilError(t, err)
		assert.Equal(t, len(got), 0, src)
	}
}

func TestFindShadowedConstructor(t *testing.T) {
	for _, src := range []string{
		"function RegExp() {}\nRegExp('a'); const r = /b/;",
		"let RegExp = 1; new RegExp('a'); const r = /b/;",
		"class RegExp {}\nnew RegExp('a'); const r = /b/;",
		"function f(RegExp) { return RegExp('a') } const r = /b/;",
	} {
		got, err := Find("a.js", []byte(src))
		assert.NilError(t, err)
		assert.Equal(t, len(got), 1, src)
		assert.Equal(t, got[0].Kind, KindLiteral, src)
		assert.Equal(t, got[0].Pattern, "b", src)
	}
}

func TestFindNestedOnce(t *testing.T) {
	got, err := Find("a.js", []byte("function f() { var r = /q/; let s = RegExp('w'); }"))
	assert.NilError(t, err)
	assert.Equal(t, len(got), 2)
	assert.Equal(t, got[0].Pattern, "q")
	assert.Equal(t, got[1].Pattern, "w")
}

func TestFindEscapedString(t *testing.T) {
	got, err := Find("a.js", []byte(`new RegExp("\\d+", "u")`))
	assert.NilError(t, err)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Pattern, `\d+`)
	assert.Equal(t, got[0].Approximate, true)
	assert.Equal(t, got[0].PatternOffset, 12)
}

func TestFindUnicodeSetsLiteral(t *testing.T) {
	got, err := Find("a.js", []byte(`x = /[\p{L}--[a-z]]/v`))
	assert.NilError(t, err)
	assert.Equal(t, len(got), 1)
	assert.Equal(t, got[0].Pattern, `[\p{L}--[a-z]]`)
	assert.Equal(t, got[0].Flags, "v")
}

func TestFindSyntaxError(t *testing.T) {
	_, err := Find("bad.js", []byte("let = ;"))
	assert.ErrorContains(t, err, "parse bad.js")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, KindLiteral.String(), "literal")
	assert.Equal(t, KindConstructor.String(), "constructor")
}

func TestFindLiteralAtEndOfFile(t *testing.T) {
	for _, tc := range []struct {
		src         string
		pattern     string
		flags       string
		flagsOffset int
	}{
		{"x = /[a]/v", "[a]", "v", 9},
		{"x = /a/g", "a", "g", 7},
		{"x = /a/dgimsuy", "a", "dgimsuy", 7},
		{"x = /a/", "a", "", 7},
		{"x = /[a]/v;", "[a]", "v", 9},
	} {
		got, err := Find("a.js", []byte(tc.src))
		assert.NilError(t, err)
		assert.Equal(t, len(got), 1, tc.src)
		assert.Equal(t, got[0].Pattern, tc.pattern, tc.src)
		assert.Equal(t, got[0].Flags, tc.flags, tc.src)
		assert.Equal(t, got[0].PatternOffset, 5, tc.src)
		assert.Equal(t, got[0].FlagsOffset, tc.flagsOffset, tc.src)
	}
}
