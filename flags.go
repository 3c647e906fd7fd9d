package resyntax

import "unicode/utf8"

// Flag is a bitmask of RegExp flags.
// The zero value corresponds to /pattern/ with no flags.
type Flag uint16

const (
	// Generate indices for substring matches ("d" flag).
	FlagHasIndices Flag = 1 << iota

	// Global search ("g" flag).
	FlagGlobal

	// Case-insensitive matching ("i" flag).
	FlagIgnoreCase

	// "^" and "$" match line boundaries ("m" flag).
	FlagMultiline

	// "." matches line terminators ("s" flag).
	FlagDotAll

	// Unicode-aware mode ("u" flag).
	FlagUnicode

	// Unicode set notation and string properties ("v" flag).
	// Cannot be combined with FlagUnicode.
	FlagUnicodeSets

	// Sticky match from current position ("y" flag).
	FlagSticky

	flagEitherUnicode = FlagUnicode | FlagUnicodeSets
)

// flagLetters is ordered the way RegExp.prototype.flags orders them.
var flagLetters = [...]struct {
	letter byte
	flag   Flag
}{
	{'d', FlagHasIndices},
	{'g', FlagGlobal},
	{'i', FlagIgnoreCase},
	{'m', FlagMultiline},
	{'s', FlagDotAll},
	{'u', FlagUnicode},
	{'v', FlagUnicodeSets},
	{'y', FlagSticky},
}

func flagOf(c byte) Flag {
	for _, l := range flagLetters {
		if l.letter == c {
			return l.flag
		}
	}
	return 0
}

// Has reports whether every flag in mask is set.
func (f Flag) Has(mask Flag) bool {
	return f&mask == mask
}

// Mode returns the grammar dialect selected by f.
func (f Flag) Mode() Mode {
	return ModeOf(f&FlagUnicode != 0, f&FlagUnicodeSets != 0)
}

// String returns the flags in canonical "dgimsuvy" order.
func (f Flag) String() string {
	res := make([]byte, 0, len(flagLetters))
	for _, l := range flagLetters {
		if f&l.flag != 0 {
			res = append(res, l.letter)
		}
	}
	return string(res)
}

// FlagsOptions configures ParseFlags.
type FlagsOptions struct {
	// SpanOffset is the absolute offset of the first flag character.
	SpanOffset int
}

// ParseFlags parses the flags part of a regular expression.
// The first violation in left-to-right order is reported; a "u" and "v"
// conflict is only reported once the whole string is known to be
// otherwise valid.
func ParseFlags(flags string, opts FlagsOptions) (Flag, error) {
	sf := newSpanFactory(opts.SpanOffset)
	var res Flag
	unicodeAt := -1
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		f := flagOf(c)
		if f == 0 {
			_, size := utf8.DecodeRuneInString(flags[i:])
			return 0, newSyntaxError(InvalidFlagCharacter, sf.span(i, i+size), "invalid regular expression flag "+quoteFlag(flags[i:i+size]))
		}
		if res&f != 0 {
			return 0, newSyntaxError(DuplicateFlag, sf.span(i, i+1), "duplicate regular expression flag "+quoteFlag(flags[i:i+1]))
		}
		if f&flagEitherUnicode != 0 && res&flagEitherUnicode != 0 {
			unicodeAt = i
		}
		res |= f
	}
	if unicodeAt != -1 {
		return 0, newSyntaxError(IncompatibleFlags, sf.span(unicodeAt, unicodeAt+1), `flags "u" and "v" cannot be used together`)
	}
	return res, nil
}

func quoteFlag(s string) string {
	return `"` + s + `"`
}
