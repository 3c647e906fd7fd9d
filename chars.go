package resyntax

import (
	"math"
	"unicode"
)

func isASCIIWordChar[T uint16 | rune](c T) bool {
	return ((uint32(c) - '0') <= (9 - 0)) || (uint32(lowerASCII(c))-'a' <= 'z'-'a') || c == '_'
}

func lowerASCII[T uint16 | rune](c T) T {
	return c | ('a' - 'A')
}

func isHexDigit(c uint16) bool {
	return ((c - '0') <= (9 - 0)) || (lowerASCII(c)-'a' <= 'f'-'a')
}

func isDigit(c uint16) bool {
	return (c - '0') <= 9
}

func isOctalDigit(c uint16) bool {
	return (c - '0') <= 7
}

func isASCIILetterChar(c uint16) bool {
	return lowerASCII(c)-'a' <= 'z'-'a'
}

func parseHexDigit(c uint16) uint16 {
	return (c & 0b1111) + (c>>6)*9
}

func isSyntaxCharacter(c uint16) bool {
	switch c {
	case '^', '$', '\\', '.', '*', '+', '?', '(', ')', '[', ']', '{', '}', '|':
		return true
	}
	return false
}

// ClassSetReservedPunctuator, the characters that may be escaped inside a
// UnicodeSets class in addition to the syntax characters.
func isClassSetReservedPunctuator(c uint16) bool {
	switch c {
	case '&', '-', '!', '#', '%', ',', ':', ';', '<', '=', '>', '@', '`', '~':
		return true
	}
	return false
}

// The first character of a ClassSetReservedDoublePunctuator such as "&&".
func isClassSetReservedDoublePunctuatorChar(c uint16) bool {
	switch c {
	case '&', '!', '#', '$', '%', '*', '+', ',', '.', ':', ';', '<', '=', '>', '?', '@', '^', '`', '~':
		return true
	}
	return false
}

// ClassSetSyntaxCharacter
func isClassSetSyntaxCharacter(c uint16) bool {
	switch c {
	case '(', ')', '[', ']', '{', '}', '/', '-', '\\', '|':
		return true
	}
	return false
}

// isIDStart reports whether r may start a RegExpIdentifierName.
func isIDStart(r rune) bool {
	if r < 0x80 {
		return isASCIILetterChar(uint16(r)) || r == '$' || r == '_'
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

// isIDContinue reports whether r may continue a RegExpIdentifierName.
func isIDContinue(r rune) bool {
	if r < 0x80 {
		return isASCIIWordChar(r) || r == '$'
	}
	// ZWNJ and ZWJ
	if r == 0x200c || r == 0x200d {
		return true
	}
	if isIDStart(r) {
		return true
	}
	if unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space) {
		return false
	}
	return unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

// If number is valid, returns n, true
func (p *parser) parseDecimalDigits() (int, bool) {
	char, ended := p.pattern.nextCodeUnit()
	if ended || !isDigit(char) {
		return 0, false
	}
	n := 0
	for ; !ended && isDigit(char); char, ended = p.pattern.nextCodeUnit() {
		p.pattern.pos++

		// saturate instead of overflowing
		if n > (math.MaxInt-9)/10 {
			n = math.MaxInt
		} else {
			n = n*10 + int(char-'0')
		}
	}
	return n, true
}
