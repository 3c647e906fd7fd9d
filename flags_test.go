package resyntax

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseFlags(t *testing.T) {
	for _, tc := range []struct {
		flags    string
		expected Flag
	}{
		{"", 0},
		{"g", FlagGlobal},
		{"dgimsuy", FlagHasIndices | FlagGlobal | FlagIgnoreCase | FlagMultiline | FlagDotAll | FlagUnicode | FlagSticky},
		{"yv", FlagSticky | FlagUnicodeSets},
		{"im", FlagIgnoreCase | FlagMultiline},
	} {
		t.Run(tc.flags, func(t *testing.T) {
			f, err := ParseFlags(tc.flags, FlagsOptions{})
			assert.NilError(t, err)
			assert.Equal(t, f, tc.expected)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	for _, tc := range []struct {
		flags  string
		offset int
		kind   ErrorKind
		span   Span
	}{
		{"gg", 5, DuplicateFlag, Span{6, 7}},
		{"gimg", 0, DuplicateFlag, Span{3, 4}},
		{"uv", 0, IncompatibleFlags, Span{1, 2}},
		{"vu", 10, IncompatibleFlags, Span{11, 12}},
		{"vgu", 0, IncompatibleFlags, Span{2, 3}},
		{"gx", 0, InvalidFlagCharacter, Span{1, 2}},
		{"G", 3, InvalidFlagCharacter, Span{3, 4}},
		{"é", 0, InvalidFlagCharacter, Span{0, 2}},
		// first violation in scan order wins
		{"ggx", 0, DuplicateFlag, Span{1, 2}},
		{"uvx", 0, InvalidFlagCharacter, Span{2, 3}},
		{"uvv", 0, DuplicateFlag, Span{2, 3}},
	} {
		t.Run(tc.flags, func(t *testing.T) {
			_, err := ParseFlags(tc.flags, FlagsOptions{SpanOffset: tc.offset})
			var se *SyntaxError
			assert.Assert(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, se.Kind, tc.kind)
			assert.Equal(t, se.Span, tc.span)
			assert.Equal(t, se.Offset(), tc.span.Start)
		})
	}
}

func TestFlagsRoundTrip(t *testing.T) {
	for mask := Flag(0); mask < FlagSticky<<1; mask++ {
		if mask.Has(FlagUnicode | FlagUnicodeSets) {
			continue
		}
		f, err := ParseFlags(mask.String(), FlagsOptions{})
		assert.NilError(t, err)
		assert.Equal(t, f, mask, mask.String())
	}
}

func TestFlagMode(t *testing.T) {
	assert.Equal(t, Flag(0).Mode(), ModeLegacy)
	assert.Equal(t, (FlagGlobal | FlagIgnoreCase).Mode(), ModeLegacy)
	assert.Equal(t, FlagUnicode.Mode(), ModeUnicode)
	assert.Equal(t, FlagUnicodeSets.Mode(), ModeUnicodeSets)
	assert.Equal(t, (FlagUnicode | FlagUnicodeSets).Mode(), ModeUnicodeSets)

	assert.Equal(t, ModeOf(false, false), ModeLegacy)
	assert.Equal(t, ModeOf(true, false), ModeUnicode)
	assert.Equal(t, ModeOf(false, true), ModeUnicodeSets)
	assert.Equal(t, ModeOf(true, true), ModeUnicodeSets)
	assert.Equal(t, ModeLegacy.IsUnicode(), false)
	assert.Equal(t, ModeUnicode.IsUnicode(), true)
	assert.Equal(t, ModeUnicodeSets.IsUnicode(), true)
}

func TestSyntaxErrorString(t *testing.T) {
	_, err := ParseFlags("gg", FlagsOptions{SpanOffset: 40})
	assert.Error(t, err, `duplicate regular expression flag "g" (at offset 41)`)
	assert.Equal(t, DuplicateFlag.String(), "DuplicateFlag")
	assert.Equal(t, ErrorKind(0).String(), "ErrorKind(0)")
}
