package resyntax

// parseClass parses a character class. The pattern is positioned at '['.
func (p *parser) parseClass() (*CharacterClass, error) {
	start := p.pattern.offset()
	p.pattern.pos++

	outerClassStart := p.classStart
	p.classStart = start
	defer func() { p.classStart = outerClassStart }()

	if p.mode == ModeUnicodeSets {
		return p.parseClassSet(start)
	}

	class := &CharacterClass{Negative: p.pattern.consumeNextCodeUnit('^')}
	for {
		if p.pattern.atEnd() {
			return nil, p.unterminatedClass()
		}
		if p.pattern.consumeNextCodeUnit(']') {
			break
		}
		left, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}
		if !p.pattern.consumeNextCodeUnit('-') {
			class.Body = append(class.Body, left)
			continue
		}
		dash := &Character{Span: p.sf.span(p.pattern.offset()-1, p.pattern.offset()), Kind: CharacterSymbol, Value: '-'}
		if p.pattern.atEnd() {
			return nil, p.unterminatedClass()
		}
		if next, _ := p.pattern.nextCodeUnit(); next == ']' && !p.pattern.inPair {
			class.Body = append(class.Body, left, dash)
			continue
		}
		right, err := p.parseClassAtom()
		if err != nil {
			return nil, err
		}

		lo, loIsChar := left.(*Character)
		hi, hiIsChar := right.(*Character)
		if !loIsChar || !hiIsChar {
			if p.mode.IsUnicode() {
				return nil, newSyntaxError(InvalidCharacterClass, Span{left.Bounds().Start, right.Bounds().End}, "invalid character class range")
			}
			// Annex B: a class escape as a range endpoint makes the dash
			// literal
			class.Body = append(class.Body, left, dash, right)
			continue
		}
		if lo.Value > hi.Value {
			return nil, newSyntaxError(InvalidCharacterClass, Span{lo.Start, hi.End}, "range out of order in character class")
		}
		class.Body = append(class.Body, &CharacterClassRange{Span: Span{lo.Start, hi.End}, Min: lo, Max: hi})
	}
	class.Span = p.span(start)
	return class, nil
}

func (p *parser) unterminatedClass() error {
	return p.newError(UnterminatedClass, p.classStart, p.classStart+1, "unterminated character class")
}

// parseClassAtom parses a single ClassAtom of a legacy or unicode class.
func (p *parser) parseClassAtom() (classAtom, error) {
	start := p.pattern.offset()
	if p.pattern.inPair || p.pattern.nextNthCodeUnitUnsafe(0) != '\\' {
		r, _ := p.pattern.move(p.mode.IsUnicode())
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: r}, nil
	}

	p.pattern.pos++
	next, ended := p.pattern.nextCodeUnit()
	if ended {
		return nil, p.unterminatedClass()
	}
	if next == 'b' {
		p.pattern.pos++
		// backspace
		return &Character{Span: p.span(start), Kind: CharacterSingleEscape, Value: '\u0008'}, nil
	}
	atom, err := p.parseCharacterClassEscape(start)
	if atom != nil || err != nil {
		return atom, err
	}
	return p.parseCharacterEscape(start, true)
}

// parseClassSet parses the contents of a UnicodeSets class after the '['.
func (p *parser) parseClassSet(start int) (*CharacterClass, error) {
	class := &CharacterClass{Negative: p.pattern.consumeNextCodeUnit('^')}
	if p.pattern.atEnd() {
		return nil, p.unterminatedClass()
	}
	if p.pattern.consumeNextCodeUnit(']') {
		class.Span = p.span(start)
		return class, nil
	}

	first, err := p.parseClassSetOperand()
	if err != nil {
		return nil, err
	}
	class.Body = []ClassElement{first}

	next, _ := p.pattern.nextNthCodeUnit(0)
	nextnext, _ := p.pattern.nextNthCodeUnit(1)
	switch {
	case next == '&' && nextnext == '&':
		class.Kind = ClassContentsIntersection
		class.Strings = mayContainStrings(first)
		for {
			opStart := p.pattern.offset()
			if !p.pattern.consumeString("&&") {
				return nil, p.setOperationError(opStart)
			}
			if next, _ := p.pattern.nextCodeUnit(); next == '&' {
				at := p.pattern.offset()
				return nil, p.newError(InvalidSetOperation, at, at+1, "invalid set operation in character class")
			}
			operand, err := p.parseClassSetOperandAfterOperator(opStart)
			if err != nil {
				return nil, err
			}
			class.Body = append(class.Body, operand)
			class.Strings = class.Strings && mayContainStrings(operand)
			if p.pattern.consumeNextCodeUnit(']') {
				break
			}
		}
	case next == '-' && nextnext == '-':
		class.Kind = ClassContentsSubtraction
		class.Strings = mayContainStrings(first)
		for {
			opStart := p.pattern.offset()
			if !p.pattern.consumeString("--") {
				return nil, p.setOperationError(opStart)
			}
			operand, err := p.parseClassSetOperandAfterOperator(opStart)
			if err != nil {
				return nil, err
			}
			class.Body = append(class.Body, operand)
			if p.pattern.consumeNextCodeUnit(']') {
				break
			}
		}
	default:
		class.Body = class.Body[:0]
		element := first
		for {
			// ClassSetRange allows only ClassSetCharacter operands
			next, _ := p.pattern.nextNthCodeUnit(0)
			nextnext, _ := p.pattern.nextNthCodeUnit(1)
			if lo, ok := element.(*Character); ok && next == '-' && nextnext != '-' {
				p.pattern.pos++
				hi, err := p.parseClassSetCharacter()
				if err != nil {
					return nil, err
				}
				if lo.Value > hi.Value {
					return nil, newSyntaxError(InvalidCharacterClass, Span{lo.Start, hi.End}, "range out of order in character class")
				}
				element = &CharacterClassRange{Span: Span{lo.Start, hi.End}, Min: lo, Max: hi}
			}
			class.Body = append(class.Body, element)
			class.Strings = class.Strings || mayContainStrings(element)

			if p.pattern.consumeNextCodeUnit(']') {
				break
			}
			if p.pattern.atEnd() {
				return nil, p.unterminatedClass()
			}
			next, _ = p.pattern.nextNthCodeUnit(0)
			nextnext, _ = p.pattern.nextNthCodeUnit(1)
			if (next == '&' && nextnext == '&') || (next == '-' && nextnext == '-') {
				at := p.pattern.offset()
				return nil, p.newError(InvalidSetOperation, at, at+2, "mixed set operations in character class")
			}
			if element, err = p.parseClassSetOperand(); err != nil {
				return nil, err
			}
		}
	}

	class.Span = p.span(start)
	if class.Negative && class.Strings {
		return nil, newSyntaxError(InvalidCharacterClass, class.Span, "negated character class may contain strings")
	}
	return class, nil
}

// setOperationError reports what follows an operand of an intersection or a
// subtraction when it is not the expected operator.
func (p *parser) setOperationError(at int) error {
	if p.pattern.atEnd() {
		return p.unterminatedClass()
	}
	return p.newError(InvalidSetOperation, at, at+1, "invalid set operation in character class")
}

func (p *parser) parseClassSetOperandAfterOperator(opStart int) (ClassElement, error) {
	if p.pattern.atEnd() {
		return nil, p.unterminatedClass()
	}
	if next, _ := p.pattern.nextCodeUnit(); next == ']' {
		return nil, p.newError(InvalidSetOperation, opStart, p.pattern.offset(), "missing operand in character class set operation")
	}
	return p.parseClassSetOperand()
}

func mayContainStrings(e ClassElement) bool {
	switch e := e.(type) {
	case *CharacterClass:
		return e.Strings
	case *ClassStringDisjunction:
		return e.Strings
	case *UnicodePropertyEscape:
		return e.Strings
	}
	return false
}

// parseClassSetOperand parses a nested class, a \q{...} disjunction, a class
// escape or a single ClassSetCharacter. The caller checks for the end of the
// class first.
func (p *parser) parseClassSetOperand() (ClassElement, error) {
	start := p.pattern.offset()
	switch p.pattern.nextNthCodeUnitUnsafe(0) {
	case '[':
		return p.parseClass()
	case '\\':
		className, ended := p.pattern.nextNthCodeUnit(1)
		if ended {
			return nil, p.unterminatedClass()
		}
		if className == 'q' {
			return p.parseClassStringDisjunction()
		}
		p.pattern.pos++
		atom, err := p.parseCharacterClassEscape(start)
		if err != nil {
			return nil, err
		}
		if atom != nil {
			return atom, nil
		}
		p.pattern.pos--
	}
	return p.parseClassSetCharacter()
}

// parseClassStringDisjunction parses `\q{...}`.
func (p *parser) parseClassStringDisjunction() (*ClassStringDisjunction, error) {
	start := p.pattern.offset()
	p.pattern.pos += 2
	if !p.pattern.consumeNextCodeUnit('{') {
		return nil, p.newError(InvalidCharacterClass, start, p.pattern.offset(), `expected { after \q`)
	}
	disjunction := &ClassStringDisjunction{}
	stringStart := p.pattern.offset()
	var chars []*Character
	for {
		if p.pattern.atEnd() {
			return nil, p.unterminatedClass()
		}
		end := p.pattern.offset()
		closing := p.pattern.consumeNextCodeUnit('}')
		if closing || p.pattern.consumeNextCodeUnit('|') {
			s := &ClassString{Span: p.sf.span(stringStart, end), Strings: len(chars) != 1, Body: chars}
			disjunction.Body = append(disjunction.Body, s)
			disjunction.Strings = disjunction.Strings || s.Strings
			if closing {
				break
			}
			stringStart = p.pattern.offset()
			chars = nil
			continue
		}
		c, err := p.parseClassSetCharacter()
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	disjunction.Span = p.span(start)
	return disjunction, nil
}

func (p *parser) parseClassSetCharacter() (*Character, error) {
	start := p.pattern.offset()
	char, ended := p.pattern.nextCodeUnit()
	if ended {
		return nil, p.unterminatedClass()
	}
	switch {
	case char == '\\':
		p.pattern.pos++
		nextChar, ended := p.pattern.nextCodeUnit()
		if ended {
			return nil, p.unterminatedClass()
		}
		if isClassSetReservedPunctuator(nextChar) {
			p.pattern.pos++
			return &Character{Span: p.span(start), Kind: CharacterIdentifier, Value: rune(nextChar)}, nil
		}
		if nextChar == 'b' {
			p.pattern.pos++
			// backspace
			return &Character{Span: p.span(start), Kind: CharacterSingleEscape, Value: '\u0008'}, nil
		}
		return p.parseCharacterEscape(start, true)
	case isClassSetSyntaxCharacter(char):
		return nil, p.newError(UnexpectedCharacter, start, start+1, "invalid character in character class")
	case isClassSetReservedDoublePunctuatorChar(char):
		if nextChar, ended := p.pattern.nextNthCodeUnit(1); !ended && nextChar == char {
			return nil, p.newError(InvalidSetOperation, start, start+2, "invalid set operation in character class")
		}
		p.pattern.pos++
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: rune(char)}, nil
	}
	r, _ := p.pattern.move(true)
	return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: r}, nil
}
