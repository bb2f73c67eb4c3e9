package lang

import (
	"fmt"
	"strings"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Join returns the smallest span covering both s and o.
func (s Span) Join(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

// Slice returns the text covered by s, clamped to the bounds of source.
func (s Span) Slice(source string) string {
	start, end := s.clamp(len(source))

	return source[start:end]
}

func (s Span) String() string { return fmt.Sprintf("[%d,%d)", s.Start, s.End) }

func (s Span) clamp(n int) (start, end int) {
	start = min(max(s.Start, 0), n)
	end = min(max(s.End, start), n)

	return start, end
}

// Position is the human-readable location of a span within its line.
//
// Line is 1-based. StartColumn and EndColumn are byte offsets relative to the
// first byte of that line, with EndColumn clamped to the end of the line.
type Position struct {
	Line        int
	StartColumn int
	EndColumn   int
	LineStart   int
	LineEnd     int
}

// Locate computes the [Position] of span within source.
func Locate(source string, span Span) Position {
	start, end := span.clamp(len(source))

	lineStart := strings.LastIndexByte(source[:start], '\n') + 1

	lineEnd := len(source)
	if i := strings.IndexByte(source[start:], '\n'); i >= 0 {
		lineEnd = start + i
	}

	return Position{
		Line:        strings.Count(source[:start], "\n") + 1,
		StartColumn: start - lineStart,
		EndColumn:   min(end, lineEnd) - lineStart,
		LineStart:   lineStart,
		LineEnd:     lineEnd,
	}
}
