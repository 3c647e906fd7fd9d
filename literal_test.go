package resyntax

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
)

func TestParseLiteral(t *testing.T) {
	lit, err := ParseLiteral("/a/gi", 20)
	assert.NilError(t, err)
	assert.Equal(t, lit.Flags, FlagGlobal|FlagIgnoreCase)
	assert.Equal(t, lit.Pattern.Span, Span{21, 22})

	lit, err = ParseLiteral(`/a\/b/`, 0)
	assert.NilError(t, err)
	assert.Equal(t, lit.Flags, Flag(0))
	assert.Equal(t, lit.Pattern.Span, Span{1, 5})

	lit, err = ParseLiteral(`/[a&&b]/v`, 0)
	assert.NilError(t, err)
	class := lit.Pattern.Body.Alternatives[0].Terms[0].(*CharacterClass)
	assert.Equal(t, class.Kind, ClassContentsIntersection)
}

func TestParseLiteralErrors(t *testing.T) {
	for _, tc := range []struct {
		literal string
		offset  int
		kind    ErrorKind
		at      int
	}{
		{"/a/gg", 20, DuplicateFlag, 24},
		{"/a/uv", 0, IncompatibleFlags, 4},
		{"/a/x", 5, InvalidFlagCharacter, 8},
		{"/a**/u", 0, InvalidQuantifierRange, 3},
		{"/[/v", 0, UnterminatedClass, 1},
		{"/a(b/", 100, UnterminatedGroup, 102},
		{"a/", 0, UnexpectedCharacter, 0},
		{"", 0, UnexpectedCharacter, 0},
		{"/abc", 7, UnexpectedCharacter, 7},
	} {
		t.Run(tc.literal, func(t *testing.T) {
			_, err := ParseLiteral(tc.literal, tc.offset)
			var se *SyntaxError
			assert.Assert(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, se.Kind, tc.kind, se.Message)
			assert.Equal(t, se.Offset(), tc.at)
		})
	}
}
