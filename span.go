package resyntax

import "fmt"

// Span is a half-open range [Start, End) of absolute offsets into the text
// the pattern was taken from. Offsets count code units of the parsed input:
// bytes for UTF-8 patterns and uint16 units for UTF-16 patterns.
type Span struct {
	Start int
	End   int
}

// Bounds returns the span itself. Every node embeds a Span, so Bounds is
// the common accessor of the Node interface.
func (s Span) Bounds() Span { return s }

// Len returns the number of code units covered by s.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// spanFactory turns pattern-local offsets into absolute ones. A single
// factory is created per parse call.
type spanFactory struct {
	base int
}

func newSpanFactory(base int) spanFactory {
	if base < 0 {
		panic("resyntax: negative span offset")
	}
	return spanFactory{base: base}
}

func (f spanFactory) span(start, end int) Span {
	if end < start {
		panic("resyntax: span end before start")
	}
	return Span{Start: f.base + start, End: f.base + end}
}
