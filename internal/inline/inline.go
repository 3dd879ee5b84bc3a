// Package inline splits block text into styled spans.
//
// Passes run in a fixed order: code, then bold, then italic. Each pass only
// sees the plain segments that earlier passes left unclaimed.
package inline

import (
	"regexp"
	"strings"

	"github.com/riverfjs/chatblocks-go/internal/types"
)

var (
	codeSpanRe = regexp.MustCompile("`([^`]+)`")
	italicRe   = regexp.MustCompile(`\*([^*]+)\*`)
)

const boldDelim = "**"

// Format converts text into an ordered list of spans. Unmatched delimiters
// stay in the plain text.
func Format(text string) []types.InlineSpan {
	spans := make([]types.InlineSpan, 0)
	for _, seg := range splitRegex(text, codeSpanRe, types.SpanCode) {
		if seg.Kind != types.SpanPlain {
			spans = append(spans, seg)
			continue
		}
		for _, b := range splitBold(seg.Text) {
			if b.Kind != types.SpanPlain || b.literal {
				spans = append(spans, b.InlineSpan)
				continue
			}
			spans = append(spans, splitRegex(b.Text, italicRe, types.SpanItalic)...)
		}
	}
	return mergePlain(spans)
}

// splitRegex 将 text 按正则匹配拆分：匹配部分（去掉定界符）为 kind，其余为 plain
func splitRegex(text string, re *regexp.Regexp, kind types.SpanKind) []types.InlineSpan {
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []types.InlineSpan{{Kind: types.SpanPlain, Text: text}}
	}

	out := make([]types.InlineSpan, 0, len(matches)*2+1)
	cursor := 0
	for _, m := range matches {
		out = append(out, types.InlineSpan{Kind: types.SpanPlain, Text: text[cursor:m[0]]})
		out = append(out, types.InlineSpan{Kind: kind, Text: text[m[2]:m[3]]})
		cursor = m[1]
	}
	out = append(out, types.InlineSpan{Kind: types.SpanPlain, Text: text[cursor:]})
	return out
}

// boldPiece is a splitBold result. literal pieces are plain text that the
// italic pass must not scan.
type boldPiece struct {
	types.InlineSpan
	literal bool
}

// splitBold pairs each ** with the nearest following **. An empty pair
// (****) is left as literal plain text.
func splitBold(text string) []boldPiece {
	out := make([]boldPiece, 0, 1)
	rest := text
	for {
		open := strings.Index(rest, boldDelim)
		if open < 0 {
			break
		}
		body := rest[open+len(boldDelim):]
		end := strings.Index(body, boldDelim)
		if end < 0 {
			break
		}
		consumed := open + len(boldDelim) + end + len(boldDelim)
		out = append(out, boldPiece{InlineSpan: types.InlineSpan{Kind: types.SpanPlain, Text: rest[:open]}})
		if end == 0 {
			out = append(out, boldPiece{
				InlineSpan: types.InlineSpan{Kind: types.SpanPlain, Text: rest[open:consumed]},
				literal:    true,
			})
		} else {
			out = append(out, boldPiece{InlineSpan: types.InlineSpan{Kind: types.SpanBold, Text: body[:end]}})
		}
		rest = rest[consumed:]
	}
	out = append(out, boldPiece{InlineSpan: types.InlineSpan{Kind: types.SpanPlain, Text: rest}})
	return out
}

// mergePlain drops empty spans and joins adjacent plain spans.
func mergePlain(spans []types.InlineSpan) []types.InlineSpan {
	out := make([]types.InlineSpan, 0, len(spans))
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		if sp.Kind == types.SpanPlain && len(out) > 0 && out[len(out)-1].Kind == types.SpanPlain {
			out[len(out)-1].Text += sp.Text
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Text concatenates the span texts.
func Text(spans []types.InlineSpan) string {
	var sb strings.Builder
	for _, sp := range spans {
		sb.WriteString(sp.Text)
	}
	return sb.String()
}
