package buffer

import "strings"

// TextBuffer accumulates rendered output.
type TextBuffer struct {
	parts []string
	size  int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
	}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	if text == "" {
		return
	}
	tb.parts = append(tb.parts, text)
	tb.size += len(text)
}

// Len returns the current byte length.
func (tb *TextBuffer) Len() int {
	return tb.size
}

// TrailingNewlineCount counts trailing newline characters in the buffer.
func (tb *TextBuffer) TrailingNewlineCount() int {
	count := 0
	for i := len(tb.parts) - 1; i >= 0; i-- {
		part := tb.parts[i]
		for j := len(part) - 1; j >= 0; j-- {
			if part[j] == '\n' {
				count++
			} else {
				return count
			}
		}
	}
	return count
}

// EnsureNewlines makes sure the buffer ends with at least n newlines.
// Nothing is written into an empty buffer.
func (tb *TextBuffer) EnsureNewlines(n int) {
	if tb.size == 0 {
		return
	}
	if needed := n - tb.TrailingNewlineCount(); needed > 0 {
		tb.Write(strings.Repeat("\n", needed))
	}
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	if len(tb.parts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(tb.size)
	for _, p := range tb.parts {
		sb.WriteString(p)
	}
	return sb.String()
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.parts = tb.parts[:0]
	tb.size = 0
}
