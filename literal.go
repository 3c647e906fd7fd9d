package resyntax

import "strings"

// Literal is a parsed `/pattern/flags` regular expression literal.
type Literal struct {
	Pattern *Pattern
	Flags   Flag
}

// ParseLiteral parses a complete regular expression literal starting at
// spanOffset in the enclosing text. Flags are parsed first and select the
// grammar of the pattern.
func ParseLiteral(literal string, spanOffset int) (*Literal, error) {
	sf := newSpanFactory(spanOffset)
	if !strings.HasPrefix(literal, "/") {
		return nil, newSyntaxError(UnexpectedCharacter, sf.span(0, min(1, len(literal))), "regular expression literal must start with '/'")
	}
	// flags never contain '/'
	closing := strings.LastIndexByte(literal, '/')
	if closing == 0 {
		return nil, newSyntaxError(UnexpectedCharacter, sf.span(0, len(literal)), "unterminated regular expression literal")
	}

	flags, err := ParseFlags(literal[closing+1:], FlagsOptions{SpanOffset: spanOffset + closing + 1})
	if err != nil {
		return nil, err
	}
	pattern, err := ParsePattern(literal[1:closing], Options{
		SpanOffset:      spanOffset + 1,
		UnicodeMode:     flags.Has(FlagUnicode),
		UnicodeSetsMode: flags.Has(FlagUnicodeSets),
	})
	if err != nil {
		return nil, err
	}
	return &Literal{Pattern: pattern, Flags: flags}, nil
}
