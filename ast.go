package resyntax

// Node is implemented by every syntax tree node. Nodes embed a Span, which
// provides Bounds.
type Node interface {
	Bounds() Span
}

// Term is an element of an Alternative: an assertion, an atom or a
// quantified atom.
type Term interface {
	Node
	isTerm()
}

// ClassElement is an element of a CharacterClass body.
type ClassElement interface {
	Node
	isClassElement()
}

// Unbounded is the Quantifier.Max of `*`, `+` and `{n,}`.
const Unbounded = -1

// Pattern is the root of the tree.
type Pattern struct {
	Span
	Body *Disjunction
}

// Disjunction is a list of alternatives separated by `|`.
type Disjunction struct {
	Span
	Alternatives []*Alternative
}

// Alternative is a sequence of terms.
type Alternative struct {
	Span
	Terms []Term
}

type BoundaryAssertionKind uint8

const (
	BoundaryStart BoundaryAssertionKind = iota
	BoundaryEnd
	BoundaryWord
	BoundaryNegativeWord
)

// BoundaryAssertion is one of `^`, `$`, `\b`, `\B`.
type BoundaryAssertion struct {
	Span
	Kind BoundaryAssertionKind
}

type LookAroundAssertionKind uint8

const (
	Lookahead LookAroundAssertionKind = iota
	NegativeLookahead
	Lookbehind
	NegativeLookbehind
)

// LookAroundAssertion is one of `(?=...)`, `(?!...)`, `(?<=...)`, `(?<!...)`.
type LookAroundAssertion struct {
	Span
	Kind LookAroundAssertionKind
	Body *Disjunction
}

// Quantifier repeats Body between Min and Max times. Max is Unbounded for
// `*`, `+` and `{n,}`; bounds that do not fit in an int saturate at
// math.MaxInt.
type Quantifier struct {
	Span
	Min    int
	Max    int
	Greedy bool
	Body   Term
}

type CharacterKind uint8

const (
	// A literal source character.
	CharacterSymbol CharacterKind = iota
	// \cX
	CharacterControlLetter
	// \xHH
	CharacterHexadecimalEscape
	// An identity escape such as \. or, in legacy mode, \a.
	CharacterIdentifier
	// \0
	CharacterNull
	// A legacy octal escape such as \12.
	CharacterOctal
	// \f \n \r \t \v and \b inside a class.
	CharacterSingleEscape
	// \uHHHH or \u{H...}
	CharacterUnicodeEscape
)

// Character matches a single code point (or, in legacy mode, code unit).
type Character struct {
	Span
	Kind  CharacterKind
	Value rune
}

// Dot is `.`.
type Dot struct {
	Span
}

type CharacterClassEscapeKind uint8

const (
	ClassEscapeDigit CharacterClassEscapeKind = iota
	ClassEscapeNegativeDigit
	ClassEscapeSpace
	ClassEscapeNegativeSpace
	ClassEscapeWord
	ClassEscapeNegativeWord
)

// CharacterClassEscape is one of `\d`, `\D`, `\s`, `\S`, `\w`, `\W`.
type CharacterClassEscape struct {
	Span
	Kind CharacterClassEscapeKind
}

// UnicodePropertyEscape is `\p{...}` or `\P{...}`. Name and Value are only
// checked for surface syntax. Strings is set for properties of strings,
// which may match more than one code point.
type UnicodePropertyEscape struct {
	Span
	Negative bool
	Strings  bool
	Name     string
	// Empty for the lone form `\p{Name}`.
	Value string
}

type CharacterClassContentsKind uint8

const (
	ClassContentsUnion CharacterClassContentsKind = iota
	// [a&&b], UnicodeSets mode only
	ClassContentsIntersection
	// [a--b], UnicodeSets mode only
	ClassContentsSubtraction
)

// CharacterClass is `[...]`. Nested classes, set operations and
// ClassStringDisjunction elements only appear in UnicodeSets mode.
type CharacterClass struct {
	Span
	Negative bool
	// Strings reports whether the class may match a string of length other
	// than one.
	Strings bool
	Kind    CharacterClassContentsKind
	Body    []ClassElement
}

// CharacterClassRange is `a-z` inside a class.
type CharacterClassRange struct {
	Span
	Min *Character
	Max *Character
}

// ClassStringDisjunction is `\q{abc|d}`.
type ClassStringDisjunction struct {
	Span
	Strings bool
	Body    []*ClassString
}

// ClassString is one alternative of a ClassStringDisjunction. Its characters
// match as a single unit.
type ClassString struct {
	Span
	// Strings is set when the string is not exactly one character long.
	Strings bool
	Body    []*Character
}

// CapturingGroup is `(...)` or `(?<name>...)`.
type CapturingGroup struct {
	Span
	// Empty for unnamed groups.
	Name string
	Body *Disjunction
}

// Modifiers is the `ims-ims` part of `(?ims-ims:...)`.
type Modifiers struct {
	Span
	Enabling  Flag
	Disabling Flag
}

// IgnoreGroup is a non-capturing group `(?:...)`, optionally with modifiers.
type IgnoreGroup struct {
	Span
	Modifiers *Modifiers
	Body      *Disjunction
}

// IndexedReference is a backreference such as `\1`.
type IndexedReference struct {
	Span
	Index int
}

// NamedReference is `\k<name>`.
type NamedReference struct {
	Span
	Name string
}

func (*BoundaryAssertion) isTerm()     {}
func (*LookAroundAssertion) isTerm()   {}
func (*Quantifier) isTerm()            {}
func (*Character) isTerm()             {}
func (*Dot) isTerm()                   {}
func (*CharacterClassEscape) isTerm()  {}
func (*UnicodePropertyEscape) isTerm() {}
func (*CharacterClass) isTerm()        {}
func (*CapturingGroup) isTerm()        {}
func (*IgnoreGroup) isTerm()           {}
func (*IndexedReference) isTerm()      {}
func (*NamedReference) isTerm()        {}

func (*Character) isClassElement()              {}
func (*CharacterClassEscape) isClassElement()   {}
func (*UnicodePropertyEscape) isClassElement()  {}
func (*CharacterClass) isClassElement()         {}
func (*CharacterClassRange) isClassElement()    {}
func (*ClassStringDisjunction) isClassElement() {}

func (k BoundaryAssertionKind) String() string {
	switch k {
	case BoundaryStart:
		return "Start"
	case BoundaryEnd:
		return "End"
	case BoundaryWord:
		return "Boundary"
	case BoundaryNegativeWord:
		return "NegativeBoundary"
	}
	return "?"
}

func (k LookAroundAssertionKind) String() string {
	switch k {
	case Lookahead:
		return "Lookahead"
	case NegativeLookahead:
		return "NegativeLookahead"
	case Lookbehind:
		return "Lookbehind"
	case NegativeLookbehind:
		return "NegativeLookbehind"
	}
	return "?"
}

func (k CharacterKind) String() string {
	switch k {
	case CharacterSymbol:
		return "Symbol"
	case CharacterControlLetter:
		return "ControlLetter"
	case CharacterHexadecimalEscape:
		return "HexadecimalEscape"
	case CharacterIdentifier:
		return "Identifier"
	case CharacterNull:
		return "Null"
	case CharacterOctal:
		return "Octal"
	case CharacterSingleEscape:
		return "SingleEscape"
	case CharacterUnicodeEscape:
		return "UnicodeEscape"
	}
	return "?"
}

func (k CharacterClassEscapeKind) String() string {
	return [...]string{`\d`, `\D`, `\s`, `\S`, `\w`, `\W`}[k]
}

func (k CharacterClassContentsKind) String() string {
	switch k {
	case ClassContentsUnion:
		return "Union"
	case ClassContentsIntersection:
		return "Intersection"
	case ClassContentsSubtraction:
		return "Subtraction"
	}
	return "?"
}
