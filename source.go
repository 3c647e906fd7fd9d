package resyntax

import (
	"unicode/utf16"
	"unicode/utf8"
)

type stringSource struct {
	utf8  []byte
	utf16 []uint16
	// bool check is faster than slice != nil
	isUtf16 bool
	pos     int
	// Set after a non-unicode read of a four-byte UTF-8 sequence returned
	// its high surrogate; the low surrogate is returned by the next move.
	inPair bool
}

func (s *stringSource) len() int {
	if s.isUtf16 {
		return len(s.utf16)
	}
	return len(s.utf8)
}

// offset returns the current position in code units of the input encoding.
// Halfway through a four-byte UTF-8 sequence it points two bytes in.
func (s *stringSource) offset() int {
	if s.inPair {
		return s.pos + 2
	}
	return s.pos
}

func (s *stringSource) stringInRange(start, end int) string {
	if s.isUtf16 {
		return string(utf16.Decode(s.utf16[start:end]))
	}
	return string(s.utf8[start:end])
}

func (s *stringSource) atEnd() bool {
	return s.pos >= len(s.utf8) && s.pos >= len(s.utf16)
}

// If source is ended, returns 0, true
func (s *stringSource) nextCodeUnit() (uint16, bool) {
	return s.nextNthCodeUnit(0)
}

// If source is ended, returns 0, true.
// For UTF-8 input the result is a byte; every byte of a multi-byte sequence
// is >= 0x80 and therefore never equal to a syntax character.
func (s *stringSource) nextNthCodeUnit(n int) (uint16, bool) {
	pos := s.pos + n
	if s.isUtf16 {
		if pos >= len(s.utf16) {
			return 0, true
		}
		return s.utf16[pos], false
	}
	if pos >= len(s.utf8) {
		return 0, true
	}
	return uint16(s.utf8[pos]), false
}

func (s *stringSource) nextNthCodeUnitUnsafe(n int) uint16 {
	if s.isUtf16 {
		return s.utf16[s.pos+n]
	}
	return uint16(s.utf8[s.pos+n])
}

func (s *stringSource) consumeNextCodeUnit(expected uint16) bool {
	if s.inPair {
		return false
	}
	if char, ended := s.nextCodeUnit(); ended || char != expected {
		return false
	}
	s.pos++
	return true
}

// consumeString consumes str if the source continues with it.
// str must be ASCII.
func (s *stringSource) consumeString(str string) bool {
	if s.inPair {
		return false
	}
	for i := 0; i < len(str); i++ {
		if c, ended := s.nextNthCodeUnit(i); ended || c != uint16(str[i]) {
			return false
		}
	}
	s.pos += len(str)
	return true
}

// move reads one source character. In unicode mode a surrogate pair (or a
// four-byte UTF-8 sequence) is one character, otherwise it is two.
func (s *stringSource) move(isUnicode bool) (rune, bool) {
	if s.isUtf16 {
		if s.pos >= len(s.utf16) {
			return 0, false
		}
		r := rune(s.utf16[s.pos])
		s.pos++
		if !isUnicode || !isHighSurrogate(r) || s.pos == len(s.utf16) {
			return r, true
		}
		lo := rune(s.utf16[s.pos])
		if isLowSurrogate(lo) {
			r = utf16.DecodeRune(r, lo)
			s.pos++
		}
		return r, true
	}

	if s.pos >= len(s.utf8) {
		return 0, false
	}
	r, size := utf8.DecodeRune(s.utf8[s.pos:])
	if s.inPair {
		s.inPair = false
		s.pos += size
		_, lo := utf16.EncodeRune(r)
		return lo, true
	}
	if !isUnicode && r > 0xffff {
		s.inPair = true
		hi, _ := utf16.EncodeRune(r)
		return hi, true
	}
	s.pos += size
	return r, true
}

func isHighSurrogate(r rune) bool {
	return (r >> 10) == (0xd800 >> 10)
}
func isLowSurrogate(r rune) bool {
	return (r >> 10) == (0xdc00 >> 10)
}
func isSurrogate(r rune) bool {
	return uint32(r)-0xd800 < 0xe000-0xd800
}
