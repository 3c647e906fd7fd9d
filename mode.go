package resyntax

// Mode selects the grammar dialect a pattern is parsed with.
type Mode uint8

const (
	// ModeLegacy is the grammar without the "u" and "v" flags, including the
	// web-compatibility productions of Annex B.
	ModeLegacy Mode = iota
	// ModeUnicode is the grammar of the "u" flag.
	ModeUnicode
	// ModeUnicodeSets is the grammar of the "v" flag: unicode semantics plus
	// set notation and strings inside character classes.
	ModeUnicodeSets
)

// ModeOf derives the dialect from the unicode and unicodeSets switches.
// unicodeSets takes precedence.
func ModeOf(unicode, unicodeSets bool) Mode {
	switch {
	case unicodeSets:
		return ModeUnicodeSets
	case unicode:
		return ModeUnicode
	default:
		return ModeLegacy
	}
}

// IsUnicode reports whether m has unicode semantics.
func (m Mode) IsUnicode() bool {
	return m != ModeLegacy
}

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeUnicode:
		return "unicode"
	case ModeUnicodeSets:
		return "unicodeSets"
	}
	return "unknown"
}
