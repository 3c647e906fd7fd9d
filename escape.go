package resyntax

import (
	"strconv"
	"unicode"
	"unicode/utf16"
)

// classAtom is a node that may appear both as a Term and inside a class.
type classAtom interface {
	Term
	ClassElement
}

// Names of the properties of strings. Only these are recognised by name,
// since they are the ones that change what the surrounding grammar allows.
var stringProperties = map[string]struct{}{
	"Basic_Emoji":                 {},
	"Emoji_Keycap_Sequence":       {},
	"RGI_Emoji_Modifier_Sequence": {},
	"RGI_Emoji_Flag_Sequence":     {},
	"RGI_Emoji_Tag_Sequence":      {},
	"RGI_Emoji_ZWJ_Sequence":      {},
	"RGI_Emoji":                   {},
}

// parseAtomEscape parses an escape outside a class. The pattern is positioned
// at the backslash.
func (p *parser) parseAtomEscape() (Term, error) {
	start := p.pattern.offset()
	p.pattern.pos++
	char, ended := p.pattern.nextCodeUnit()
	if ended {
		return nil, p.newError(InvalidEscape, start, start+1, `\ at end of pattern`)
	}

	if char >= '1' && char <= '9' {
		patternCopy := p.pattern
		n, _ := p.parseDecimalDigits()
		if n <= p.totalCapturesCount {
			return &IndexedReference{Span: p.span(start), Index: n}, nil
		}
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidBackreference, start, p.pattern.offset(), "invalid indexed reference")
		}
		// Annex B: reparsed as an octal or identity escape
		p.pattern = patternCopy
	}

	if char == 'k' && (p.mode.IsUnicode() || len(p.allNamedCaptures) > 0) {
		p.pattern.pos++
		if next, _ := p.pattern.nextCodeUnit(); next != '<' {
			return nil, p.newError(InvalidBackreference, start, p.pattern.offset(), "invalid named reference")
		}
		name, err := p.parseGroupName()
		if err != nil {
			return nil, err
		}
		if _, ok := p.allNamedCaptures[name]; !ok {
			return nil, p.newError(InvalidBackreference, start, p.pattern.offset(), "invalid named capture referenced")
		}
		return &NamedReference{Span: p.span(start), Name: name}, nil
	}

	atom, err := p.parseCharacterClassEscape(start)
	if atom != nil || err != nil {
		return atom, err
	}
	return p.parseCharacterEscape(start, false)
}

// parseCharacterClassEscape parses \d \D \s \S \w \W and, in unicode mode,
// property escapes. It is positioned after the backslash and returns nil when
// the escape is something else.
func (p *parser) parseCharacterClassEscape(start int) (classAtom, error) {
	char, ended := p.pattern.nextCodeUnit()
	if ended {
		return nil, nil
	}
	var kind CharacterClassEscapeKind
	switch char {
	case 'd':
		kind = ClassEscapeDigit
	case 'D':
		kind = ClassEscapeNegativeDigit
	case 's':
		kind = ClassEscapeSpace
	case 'S':
		kind = ClassEscapeNegativeSpace
	case 'w':
		kind = ClassEscapeWord
	case 'W':
		kind = ClassEscapeNegativeWord
	case 'p', 'P':
		if !p.mode.IsUnicode() {
			// Annex B: \p is an identity escape
			return nil, nil
		}
		return p.parsePropertyEscape(start)
	default:
		return nil, nil
	}
	p.pattern.pos++
	return &CharacterClassEscape{Span: p.span(start), Kind: kind}, nil
}

// parsePropertyEscape parses \p{Name}, \p{Name=Value} and the \P forms.
func (p *parser) parsePropertyEscape(start int) (*UnicodePropertyEscape, error) {
	negative := p.pattern.nextNthCodeUnitUnsafe(0) == 'P'
	p.pattern.pos++
	if !p.pattern.consumeNextCodeUnit('{') {
		return nil, p.newError(InvalidUnicodePropertyEscape, start, p.pattern.offset(), `expected { after \p`)
	}

	scanWord := func() string {
		wordStart := p.pattern.pos
		for {
			ch, ended := p.pattern.nextCodeUnit()
			if ended || !isASCIIWordChar(ch) {
				break
			}
			p.pattern.pos++
		}
		return p.pattern.stringInRange(wordStart, p.pattern.pos)
	}

	name := scanWord()
	var value string
	hasValue := p.pattern.consumeNextCodeUnit('=')
	if hasValue {
		value = scanWord()
	}
	if !p.pattern.consumeNextCodeUnit('}') {
		return nil, p.newError(InvalidUnicodePropertyEscape, start, p.pattern.offset(), "invalid property name")
	}
	if name == "" || (hasValue && value == "") {
		return nil, p.newError(InvalidUnicodePropertyEscape, start, p.pattern.offset(), "invalid property name")
	}

	strings := false
	if _, ok := stringProperties[name]; ok && !hasValue {
		if negative {
			return nil, p.newError(InvalidUnicodePropertyEscape, start, p.pattern.offset(), "invalid property name")
		}
		if p.mode != ModeUnicodeSets {
			return nil, p.newError(InvalidUnicodePropertyEscape, start, p.pattern.offset(), "properties of strings allowed only with 'v' flag")
		}
		strings = true
	}
	return &UnicodePropertyEscape{
		Span:     p.span(start),
		Negative: negative,
		Strings:  strings,
		Name:     name,
		Value:    value,
	}, nil
}

// parseCharacterEscape is always called after parseCharacterClassEscape or
// similar, with the pattern positioned after the backslash. start is the
// offset of the backslash.
func (p *parser) parseCharacterEscape(start int, inClass bool) (*Character, error) {
	char := p.pattern.nextNthCodeUnitUnsafe(0)
	character := func(kind CharacterKind, value rune) *Character {
		return &Character{Span: p.span(start), Kind: kind, Value: value}
	}
	switch char {
	case 't', 'n', 'v', 'f', 'r':
		p.pattern.pos++
		mapping := [...]rune{
			't' - 'f': '\t',
			'n' - 'f': '\n',
			'v' - 'f': '\v',
			'f' - 'f': '\f',
			'r' - 'f': '\r',
		}
		return character(CharacterSingleEscape, mapping[char-'f']), nil
	case 'c':
		ch, _ := p.pattern.nextNthCodeUnit(1)
		if isASCIILetterChar(ch) || (inClass && !p.mode.IsUnicode() && (isDigit(ch) || ch == '_')) {
			p.pattern.pos += 2
			return character(CharacterControlLetter, rune(ch)%32), nil
		}
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidEscape, start, p.pattern.offset()+1, `invalid \c`)
		}
		// Annex B: the backslash is a literal and "c" is read next
		return character(CharacterSymbol, '\\'), nil
	case '0':
		next, _ := p.pattern.nextNthCodeUnit(1)
		if !isDigit(next) {
			p.pattern.pos++
			return character(CharacterNull, 0), nil
		}
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidEscape, start, p.pattern.offset()+1, "invalid decimal escape")
		}
		if next == '8' || next == '9' {
			p.pattern.pos++
			return character(CharacterNull, 0), nil
		}
		fallthrough
	case '1', '2', '3':
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidEscape, start, p.pattern.offset()+1, "invalid decimal escape")
		}
		first := char - '0'
		p.pattern.pos++
		second, ended := p.pattern.nextCodeUnit()
		if ended || !isOctalDigit(second) {
			return character(CharacterOctal, rune(first)), nil
		}
		second -= '0'
		p.pattern.pos++
		third, ended := p.pattern.nextCodeUnit()
		if ended || !isOctalDigit(third) {
			return character(CharacterOctal, rune(first*8+second)), nil
		}
		third -= '0'
		p.pattern.pos++
		return character(CharacterOctal, rune(first)*64+rune(second)*8+rune(third)), nil
	case '4', '5', '6', '7':
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidEscape, start, p.pattern.offset()+1, "invalid decimal escape")
		}
		first := char - '0'
		p.pattern.pos++
		second, ended := p.pattern.nextCodeUnit()
		if ended || !isOctalDigit(second) {
			return character(CharacterOctal, rune(first)), nil
		}
		p.pattern.pos++
		return character(CharacterOctal, rune(first*8+second-'0')), nil
	case 'x':
		first, _ := p.pattern.nextNthCodeUnit(1)
		second, _ := p.pattern.nextNthCodeUnit(2)
		if isHexDigit(first) && isHexDigit(second) {
			p.pattern.pos += 3
			return character(CharacterHexadecimalEscape, (rune(parseHexDigit(first))<<4)|rune(parseHexDigit(second))), nil
		}
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidEscape, start, p.pattern.offset()+1, `invalid \x`)
		}
		p.pattern.pos++
		return character(CharacterIdentifier, 'x'), nil
	case 'u':
		p.pattern.pos++
		patternCopy := p.pattern
		r, _, err := p.parseUnicodeEscape(start, p.mode.IsUnicode())
		if err != nil {
			if p.mode.IsUnicode() {
				return nil, err
			}
			p.pattern = patternCopy
			return character(CharacterIdentifier, 'u'), nil
		}
		return character(CharacterUnicodeEscape, r), nil
	}

	if isSyntaxCharacter(char) || char == '/' || (inClass && char == '-') {
		p.pattern.pos++
		return character(CharacterIdentifier, rune(char)), nil
	}

	if p.mode.IsUnicode() {
		_, size := p.peekRune()
		return nil, p.newError(InvalidEscape, start, p.pattern.offset()+size, "invalid escape")
	}
	if char == 'k' && len(p.allNamedCaptures) > 0 {
		return nil, p.newError(InvalidEscape, start, p.pattern.offset()+1, `invalid \k`)
	}
	r, _ := p.pattern.move(false)
	return character(CharacterIdentifier, r), nil
}

// peekRune returns the next code point and its length in code units without
// consuming it.
func (p *parser) peekRune() (rune, int) {
	patternCopy := p.pattern
	before := p.pattern.offset()
	r, _ := p.pattern.move(true)
	size := p.pattern.offset() - before
	p.pattern = patternCopy
	return r, size
}

func (p *parser) peek4HexDigits() (rune, bool) {
	fourthChar, ended := p.pattern.nextNthCodeUnit(3)
	if ended {
		return 0, false
	}
	if !isHexDigit(p.pattern.nextNthCodeUnitUnsafe(0)) ||
		!isHexDigit(p.pattern.nextNthCodeUnitUnsafe(1)) ||
		!isHexDigit(p.pattern.nextNthCodeUnitUnsafe(2)) ||
		!isHexDigit(fourthChar) {
		return 0, false
	}
	r := (rune(parseHexDigit(p.pattern.nextNthCodeUnitUnsafe(0))) << 12) |
		(rune(parseHexDigit(p.pattern.nextNthCodeUnitUnsafe(1))) << 8) |
		(rune(parseHexDigit(p.pattern.nextNthCodeUnitUnsafe(2))) << 4) |
		rune(parseHexDigit(fourthChar))
	return r, true
}

// parseUnicodeEscape is positioned after `\u`. The second result reports
// whether the braced `\u{...}` form was used.
func (p *parser) parseUnicodeEscape(start int, unicodeMode bool) (rune, bool, error) {
	next, ended := p.pattern.nextCodeUnit()
	if ended {
		return 0, false, p.newError(InvalidEscape, start, p.pattern.offset(), "invalid Unicode escape")
	}
	if next == '{' && unicodeMode {
		p.pattern.pos++
		codepointStart := p.pattern.pos
		i := 0
		for ; ; i++ {
			char, ended := p.pattern.nextNthCodeUnit(i)
			if ended {
				return 0, false, p.newError(InvalidEscape, start, p.pattern.offset()+i, "invalid Unicode escape")
			}
			if char == '}' {
				break
			}
		}
		codepointEnd := codepointStart + i
		src := p.pattern.stringInRange(codepointStart, codepointEnd)
		codepoint, err := strconv.ParseUint(src, 16, 64)
		if err != nil || codepoint > unicode.MaxRune {
			return 0, false, p.newError(InvalidEscape, start, codepointEnd+1, "invalid Unicode codepoint")
		}
		p.pattern.pos = codepointEnd + 1
		return rune(codepoint), true, nil
	}

	r, ok := p.peek4HexDigits()
	if !ok {
		return 0, false, p.newError(InvalidEscape, start, p.pattern.offset(), "invalid Unicode escape")
	}
	p.pattern.pos += 4
	if unicodeMode && isHighSurrogate(r) {
		if x, _ := p.pattern.nextNthCodeUnit(1); x == 'u' && p.pattern.nextNthCodeUnitUnsafe(0) == '\\' {
			p.pattern.pos += 2
			l, ok := p.peek4HexDigits()
			if ok && isLowSurrogate(l) {
				p.pattern.pos += 4
				r = utf16.DecodeRune(r, l)
			} else {
				p.pattern.pos -= 2
			}
		}
	}
	return r, false, nil
}

// parseGroupName parses `<name>` and returns the decoded name. Escapes and
// surrogate pairs are recognised in every mode.
func (p *parser) parseGroupName() (string, error) {
	start := p.pattern.offset()
	if !p.pattern.consumeNextCodeUnit('<') {
		return "", p.newError(InvalidGroupName, start, start, "invalid capture group name")
	}
	name := []rune{}
	for {
		charStart := p.pattern.offset()
		r, moved := p.pattern.move(p.mode.IsUnicode())
		if !moved {
			return "", p.newError(InvalidGroupName, start, p.pattern.offset(), "invalid capture group name")
		}
		if r == '\\' && p.pattern.consumeNextCodeUnit('u') {
			var err error
			var isCodepoint bool
			r, isCodepoint, err = p.parseUnicodeEscape(charStart, true)
			if err != nil {
				return "", err
			}
			if isCodepoint && isSurrogate(r) {
				return "", p.newError(InvalidGroupName, charStart, p.pattern.offset(), "invalid capture group name")
			}
		}
		if r == '>' {
			if len(name) > 0 && isHighSurrogate(name[len(name)-1]) {
				return "", p.newError(InvalidGroupName, start, p.pattern.offset(), "invalid capture group name: lone surrogate")
			}
			break
		} else if len(name) > 0 && isHighSurrogate(name[len(name)-1]) {
			if isLowSurrogate(r) {
				name[len(name)-1] = utf16.DecodeRune(name[len(name)-1], r)
			} else {
				return "", p.newError(InvalidGroupName, start, p.pattern.offset(), "invalid capture group name: lone surrogate")
			}
		} else {
			name = append(name, r)
		}

		if isHighSurrogate(name[len(name)-1]) {
			continue
		}

		if len(name) == 1 && !isIDStart(name[0]) {
			return "", p.newError(InvalidGroupName, charStart, p.pattern.offset(), "invalid capture group name")
		} else if len(name) > 1 && !isIDContinue(name[len(name)-1]) {
			return "", p.newError(InvalidGroupName, charStart, p.pattern.offset(), "invalid capture group name")
		}
	}
	if len(name) == 0 {
		return "", p.newError(InvalidGroupName, start, p.pattern.offset(), "empty capture group name")
	}
	return string(name), nil
}
