package resyntax

import "strconv"

// ErrorKind classifies a SyntaxError by the production it violates.
type ErrorKind uint8

const (
	// Flags
	InvalidFlagCharacter ErrorKind = iota + 1
	DuplicateFlag
	IncompatibleFlags

	// Pattern
	UnexpectedCharacter
	UnterminatedClass
	UnterminatedGroup
	// Covers every misplaced or malformed quantifier: bounds out of order,
	// nothing to repeat, a quantifier after a quantifier or an assertion and
	// an unclosed braced quantifier in unicode mode.
	InvalidQuantifierRange
	InvalidBackreference
	DuplicateGroupName
	InvalidUnicodePropertyEscape
	InvalidSetOperation
	InvalidEscape
	InvalidGroupName
	InvalidCharacterClass
	InvalidModifiers
)

var errorKindNames = [...]string{
	InvalidFlagCharacter:         "InvalidFlagCharacter",
	DuplicateFlag:                "DuplicateFlag",
	IncompatibleFlags:            "IncompatibleFlags",
	UnexpectedCharacter:          "UnexpectedCharacter",
	UnterminatedClass:            "UnterminatedClass",
	UnterminatedGroup:            "UnterminatedGroup",
	InvalidQuantifierRange:       "InvalidQuantifierRange",
	InvalidBackreference:         "InvalidBackreference",
	DuplicateGroupName:           "DuplicateGroupName",
	InvalidUnicodePropertyEscape: "InvalidUnicodePropertyEscape",
	InvalidSetOperation:          "InvalidSetOperation",
	InvalidEscape:                "InvalidEscape",
	InvalidGroupName:             "InvalidGroupName",
	InvalidCharacterClass:        "InvalidCharacterClass",
	InvalidModifiers:             "InvalidModifiers",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) && errorKindNames[k] != "" {
		return errorKindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// SyntaxError describes the first syntax violation found by ParseFlags or
// ParsePattern. Span holds absolute offsets; turning them into lines and
// columns is left to the caller.
type SyntaxError struct {
	Kind    ErrorKind
	Span    Span
	Message string
}

// Offset returns the absolute offset the error points at.
func (e *SyntaxError) Offset() int {
	return e.Span.Start
}

func (e *SyntaxError) Error() string {
	return e.Message + " (at offset " + strconv.Itoa(e.Span.Start) + ")"
}

var _ error = (*SyntaxError)(nil)

func newSyntaxError(kind ErrorKind, span Span, msg string) *SyntaxError {
	return &SyntaxError{Kind: kind, Span: span, Message: msg}
}
