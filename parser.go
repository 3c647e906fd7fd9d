// Package resyntax is a parser for the syntax of ECMAScript regular expressions.
package resyntax

// Options configures ParsePattern.
type Options struct {
	// SpanOffset is the absolute offset of the first pattern character in
	// the enclosing text. Every span in the result is shifted by it.
	SpanOffset int

	// UnicodeMode selects the grammar of the "u" flag.
	UnicodeMode bool

	// UnicodeSetsMode selects the grammar of the "v" flag. It takes
	// precedence over UnicodeMode.
	UnicodeSetsMode bool
}

type parser struct {
	pattern stringSource
	mode    Mode
	sf      spanFactory

	// Results of the pre-scan over the whole pattern.
	totalCapturesCount int
	allNamedCaptures   map[string]struct{}

	// Group names declared so far on the current path through the
	// alternatives.
	namedCaptures map[string]struct{}
	// Names in namedCaptures in declaration order. Alternatives roll it back
	// to hide the names of their siblings.
	declaredNames []string

	// Offset of the '[' of the innermost class being parsed.
	classStart int
}

// ParsePattern parses the body of a regular expression. Spans count bytes of
// pattern.
//
// The first syntax error aborts the parse and is returned as a *SyntaxError.
// ParsePattern panics if opts.SpanOffset is negative.
func ParsePattern(pattern string, opts Options) (*Pattern, error) {
	return parsePattern(stringSource{utf8: []byte(pattern)}, opts)
}

// ParsePatternUtf16 is like ParsePattern, but for UTF-16 input. Spans count
// uint16 code units.
func ParsePatternUtf16(pattern []uint16, opts Options) (*Pattern, error) {
	return parsePattern(stringSource{utf16: pattern, isUtf16: true}, opts)
}

func parsePattern(pattern stringSource, opts Options) (*Pattern, error) {
	p := &parser{
		pattern:          pattern,
		mode:             ModeOf(opts.UnicodeMode, opts.UnicodeSetsMode),
		sf:               newSpanFactory(opts.SpanOffset),
		allNamedCaptures: map[string]struct{}{},
		namedCaptures:    map[string]struct{}{},
	}
	p.prescan()
	return p.parse()
}

func (p *parser) span(start int) Span {
	return p.sf.span(start, p.pattern.offset())
}

func (p *parser) newError(kind ErrorKind, start, end int, msg string) error {
	return newSyntaxError(kind, p.sf.span(start, end), msg)
}

func (p *parser) parse() (*Pattern, error) {
	body, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if !p.pattern.atEnd() {
		// a top-level disjunction only stops early at ')'
		start := p.pattern.offset()
		return nil, p.newError(UnexpectedCharacter, start, start+1, "unmatched ')'")
	}
	return &Pattern{Span: p.span(0), Body: body}, nil
}

// prescan counts capturing groups and collects group names, so references
// can point at groups declared after them.
func (p *parser) prescan() {
	patternCopy := p.pattern
	classDepth := 0
	for !p.pattern.atEnd() {
		switch p.pattern.nextNthCodeUnitUnsafe(0) {
		case '(':
			p.pattern.pos++
			if classDepth > 0 || p.pattern.atEnd() {
				continue
			}
			if p.pattern.nextNthCodeUnitUnsafe(0) != '?' {
				p.totalCapturesCount++
				continue
			}
			p.pattern.pos++
			next, _ := p.pattern.nextNthCodeUnit(0)
			nextnext, ended := p.pattern.nextNthCodeUnit(1)
			if !ended && next == '<' && nextnext != '=' && nextnext != '!' {
				p.totalCapturesCount++
				// invalid group name will be reported later
				if name, err := p.parseGroupName(); err == nil {
					p.allNamedCaptures[name] = struct{}{}
				}
				p.pattern.inPair = false
			}
		case '\\':
			p.pattern.pos++
			p.pattern.move(true)
		case '[':
			p.pattern.pos++
			if classDepth == 0 || p.mode == ModeUnicodeSets {
				classDepth++
			}
		case ']':
			p.pattern.pos++
			if classDepth > 0 {
				classDepth--
			}
		default:
			p.pattern.pos++
		}
	}
	p.pattern = patternCopy
}

func (p *parser) parseDisjunction() (*Disjunction, error) {
	start := p.pattern.offset()
	mark := len(p.declaredNames)

	alternative, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	alternatives := []*Alternative{alternative}

	var siblingNames []string
	for p.pattern.consumeNextCodeUnit('|') {
		// Names may repeat across alternatives, except with the "v" flag.
		if p.mode != ModeUnicodeSets {
			for _, name := range p.declaredNames[mark:] {
				delete(p.namedCaptures, name)
			}
			siblingNames = append(siblingNames, p.declaredNames[mark:]...)
			p.declaredNames = p.declaredNames[:mark]
		}
		alternative, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alternative)
	}
	for _, name := range siblingNames {
		p.namedCaptures[name] = struct{}{}
	}
	p.declaredNames = append(p.declaredNames, siblingNames...)
	return &Disjunction{Span: p.span(start), Alternatives: alternatives}, nil
}

func (p *parser) parseAlternative() (*Alternative, error) {
	start := p.pattern.offset()
	var terms []Term
	for {
		char, ended := p.pattern.nextCodeUnit()
		if ended || (!p.pattern.inPair && (char == '|' || char == ')')) {
			break
		}
		afterQuantifier := false
		if len(terms) > 0 {
			_, afterQuantifier = terms[len(terms)-1].(*Quantifier)
		}
		term, err := p.parseTerm(afterQuantifier)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return &Alternative{Span: p.span(start), Terms: terms}, nil
}

func (p *parser) parseTerm(afterQuantifier bool) (Term, error) {
	start := p.pattern.offset()
	assertion, err := p.parseAssertion()
	if err != nil {
		return nil, err
	}

	var atom Term
	if assertion != nil {
		// Annex B QuantifiableAssertion
		if la, ok := assertion.(*LookAroundAssertion); ok && p.mode == ModeLegacy &&
			(la.Kind == Lookahead || la.Kind == NegativeLookahead) {
			atom = assertion
		} else {
			quantifierStart := p.pattern.offset()
			_, found, err := p.parseQuantifier()
			if err != nil {
				return nil, err
			}
			if found {
				return nil, p.newError(InvalidQuantifierRange, quantifierStart, p.pattern.offset(), "nothing to repeat")
			}
			return assertion, nil
		}
	} else {
		atom, err = p.parseAtom(afterQuantifier)
		if err != nil {
			return nil, err
		}
	}

	bounds, found, err := p.parseQuantifier()
	if err != nil {
		return nil, err
	}
	if !found {
		return atom, nil
	}
	if p.mode.IsUnicode() {
		if next, ended := p.pattern.nextCodeUnit(); !ended && (next == '*' || next == '+' || next == '?' || next == '{') {
			at := p.pattern.offset()
			return nil, p.newError(InvalidQuantifierRange, at, at+1, "nothing to repeat")
		}
	}
	return &Quantifier{
		Span:   p.span(start),
		Min:    bounds.min,
		Max:    bounds.max,
		Greedy: bounds.greedy,
		Body:   atom,
	}, nil
}

type quantifierBounds struct {
	min, max int
	greedy   bool
}

// parseQuantifier reads a quantifier if one follows. In legacy mode a `{`
// that does not form a quantifier is left for the next atom.
func (p *parser) parseQuantifier() (quantifierBounds, bool, error) {
	var q quantifierBounds
	char, ended := p.pattern.nextCodeUnit()
	if ended || p.pattern.inPair {
		return q, false, nil
	}
	switch char {
	case '*':
		p.pattern.pos++
		q.min, q.max = 0, Unbounded
	case '+':
		p.pattern.pos++
		q.min, q.max = 1, Unbounded
	case '?':
		p.pattern.pos++
		q.min, q.max = 0, 1
	case '{':
		start := p.pattern.offset()
		patternCopy := p.pattern
		p.pattern.pos++
		n, ok := p.parseDecimalDigits()
		if !ok {
			if p.mode.IsUnicode() {
				return q, false, p.newError(InvalidQuantifierRange, start, start+1, "incomplete quantifier")
			}
			p.pattern = patternCopy
			return q, false, nil
		}
		q.min, q.max = n, n
		if p.pattern.consumeNextCodeUnit(',') {
			if m, ok := p.parseDecimalDigits(); ok {
				q.max = m
			} else {
				q.max = Unbounded
			}
		}
		if !p.pattern.consumeNextCodeUnit('}') {
			if p.mode.IsUnicode() {
				return q, false, p.newError(InvalidQuantifierRange, start, p.pattern.offset(), "incomplete quantifier")
			}
			p.pattern = patternCopy
			return q, false, nil
		}
		if q.max != Unbounded && q.min > q.max {
			return q, false, p.newError(InvalidQuantifierRange, start, p.pattern.offset(), "numbers out of order in {} quantifier")
		}
	default:
		return q, false, nil
	}
	q.greedy = !p.pattern.consumeNextCodeUnit('?')
	return q, true, nil
}

// Returns nil if the next term is not an assertion.
func (p *parser) parseAssertion() (Term, error) {
	if p.pattern.inPair {
		return nil, nil
	}
	// parseTerm won't be called at the end of the pattern
	start := p.pattern.offset()
	char := p.pattern.nextNthCodeUnitUnsafe(0)
	boundary := func(kind BoundaryAssertionKind, length int) Term {
		p.pattern.pos += length
		return &BoundaryAssertion{Span: p.span(start), Kind: kind}
	}
	switch char {
	case '^':
		return boundary(BoundaryStart, 1), nil
	case '$':
		return boundary(BoundaryEnd, 1), nil
	case '\\':
		next, _ := p.pattern.nextNthCodeUnit(1)
		switch next {
		case 'b':
			return boundary(BoundaryWord, 2), nil
		case 'B':
			return boundary(BoundaryNegativeWord, 2), nil
		}
		return nil, nil
	case '(':
		if next, _ := p.pattern.nextNthCodeUnit(1); next != '?' {
			return nil, nil
		}
		var kind LookAroundAssertionKind
		length := 3
		c2, _ := p.pattern.nextNthCodeUnit(2)
		c3, _ := p.pattern.nextNthCodeUnit(3)
		switch {
		case c2 == '=':
			kind = Lookahead
		case c2 == '!':
			kind = NegativeLookahead
		case c2 == '<' && c3 == '=':
			kind, length = Lookbehind, 4
		case c2 == '<' && c3 == '!':
			kind, length = NegativeLookbehind, 4
		default:
			return nil, nil
		}
		p.pattern.pos += length
		body, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		if !p.pattern.consumeNextCodeUnit(')') {
			return nil, p.newError(UnterminatedGroup, start, start+1, "unterminated group")
		}
		return &LookAroundAssertion{Span: p.span(start), Kind: kind, Body: body}, nil
	}
	return nil, nil
}

func (p *parser) parseAtom(afterQuantifier bool) (Term, error) {
	start := p.pattern.offset()
	if p.pattern.inPair {
		r, _ := p.pattern.move(false)
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: r}, nil
	}
	// parseTerm won't be called at the end of the pattern
	char := p.pattern.nextNthCodeUnitUnsafe(0)
	literal := func() Term {
		p.pattern.pos++
		return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: rune(char)}
	}

	switch char {
	case '.':
		p.pattern.pos++
		return &Dot{Span: p.span(start)}, nil
	case '[':
		return p.parseClass()
	case '(':
		return p.parseGroup()
	case '\\':
		return p.parseAtomEscape()
	case '*', '+', '?':
		if afterQuantifier && p.mode == ModeLegacy {
			return literal(), nil
		}
		return nil, p.newError(InvalidQuantifierRange, start, start+1, "nothing to repeat")
	case '{':
		if p.mode.IsUnicode() {
			return nil, p.newError(InvalidQuantifierRange, start, start+1, "nothing to repeat")
		}
		patternCopy := p.pattern
		if _, found, err := p.parseQuantifier(); found || err != nil {
			return nil, p.newError(InvalidQuantifierRange, start, p.pattern.offset(), "nothing to repeat")
		}
		p.pattern = patternCopy
		return literal(), nil
	case '}':
		if p.mode.IsUnicode() {
			return nil, p.newError(UnexpectedCharacter, start, start+1, "lone quantifier brackets")
		}
		return literal(), nil
	case ']':
		if p.mode.IsUnicode() {
			return nil, p.newError(UnexpectedCharacter, start, start+1, "lone ']'")
		}
		return literal(), nil
	}

	r, _ := p.pattern.move(p.mode.IsUnicode())
	return &Character{Span: p.span(start), Kind: CharacterSymbol, Value: r}, nil
}

// parseGroup parses a capturing group, a named capturing group or a
// non-capturing group. Lookarounds are handled by parseAssertion.
func (p *parser) parseGroup() (Term, error) {
	start := p.pattern.offset()
	p.pattern.pos++

	var name string
	var modifiers *Modifiers
	capturing := true
	if p.pattern.consumeNextCodeUnit('?') {
		next, ended := p.pattern.nextCodeUnit()
		if ended {
			return nil, p.newError(UnterminatedGroup, start, start+1, "unterminated group")
		}
		if next == '<' {
			nameStart := p.pattern.offset()
			var err error
			name, err = p.parseGroupName()
			if err != nil {
				return nil, err
			}
			if _, ok := p.namedCaptures[name]; ok {
				return nil, p.newError(DuplicateGroupName, nameStart, p.pattern.offset(), "duplicate capture group name")
			}
			p.namedCaptures[name] = struct{}{}
			p.declaredNames = append(p.declaredNames, name)
		} else {
			capturing = false
			var err error
			if modifiers, err = p.parseModifiers(start); err != nil {
				return nil, err
			}
		}
	}

	body, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if !p.pattern.consumeNextCodeUnit(')') {
		return nil, p.newError(UnterminatedGroup, start, start+1, "unterminated group")
	}
	if capturing {
		return &CapturingGroup{Span: p.span(start), Name: name, Body: body}, nil
	}
	return &IgnoreGroup{Span: p.span(start), Modifiers: modifiers, Body: body}, nil
}

// parseModifiers parses the part of `(?ims-ims:` after the question mark up
// to and including the colon. It returns nil for a plain `(?:`.
func (p *parser) parseModifiers(groupStart int) (*Modifiers, error) {
	start := p.pattern.offset()
	var enabling, disabling Flag
	foundDash := false
	for {
		next, ended := p.pattern.nextCodeUnit()
		if ended {
			return nil, p.newError(UnterminatedGroup, groupStart, groupStart+1, "unterminated group")
		}
		at := p.pattern.offset()
		var f Flag
		switch next {
		case 'i':
			f = FlagIgnoreCase
		case 'm':
			f = FlagMultiline
		case 's':
			f = FlagDotAll
		case '-':
			if foundDash {
				return nil, p.newError(InvalidModifiers, at, at+1, "invalid regular expression modifiers")
			}
			foundDash = true
			p.pattern.pos++
			continue
		case ':':
			if at == start {
				p.pattern.pos++
				return nil, nil
			}
			if enabling == 0 && disabling == 0 {
				return nil, p.newError(InvalidModifiers, start, at, "invalid regular expression modifiers")
			}
			m := &Modifiers{Span: p.sf.span(start, at), Enabling: enabling, Disabling: disabling}
			p.pattern.pos++
			return m, nil
		default:
			if foundDash || at != start {
				return nil, p.newError(InvalidModifiers, at, at+1, "invalid regular expression modifiers")
			}
			return nil, p.newError(UnexpectedCharacter, groupStart, at+1, "invalid group")
		}
		if (enabling|disabling)&f != 0 {
			return nil, p.newError(InvalidModifiers, at, at+1, "repeated regular expression modifier")
		}
		p.pattern.pos++
		if foundDash {
			disabling |= f
		} else {
			enabling |= f
		}
	}
}
