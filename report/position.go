package report

import "fmt"

// TextSpan represents a range or "span" of source text.  The line and column
// numbers are zero-indexed.  The start position is the first character in the
// span and the end column is one past the last character in the span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// String formats the span's starting position as a one-indexed `line:col`.
func (ts *TextSpan) String() string {
	return fmt.Sprintf("%d:%d", ts.StartLine+1, ts.StartCol+1)
}
