package inline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/riverfjs/chatblocks-go/internal/types"
)

func plain(s string) types.InlineSpan  { return types.InlineSpan{Kind: types.SpanPlain, Text: s} }
func bold(s string) types.InlineSpan   { return types.InlineSpan{Kind: types.SpanBold, Text: s} }
func italic(s string) types.InlineSpan { return types.InlineSpan{Kind: types.SpanItalic, Text: s} }
func code(s string) types.InlineSpan   { return types.InlineSpan{Kind: types.SpanCode, Text: s} }

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.InlineSpan
	}{
		{
			name:  "mixed",
			input: "**bold** and *italic* and `code`",
			want:  []types.InlineSpan{bold("bold"), plain(" and "), italic("italic"), plain(" and "), code("code")},
		},
		{
			name:  "unmatched bold",
			input: "a ** b",
			want:  []types.InlineSpan{plain("a ** b")},
		},
		{
			name:  "unmatched italic",
			input: "5 * 3 = 15",
			want:  []types.InlineSpan{plain("5 * 3 = 15")},
		},
		{
			name:  "empty",
			input: "",
			want:  []types.InlineSpan{},
		},
		{
			name:  "plain only",
			input: "just words",
			want:  []types.InlineSpan{plain("just words")},
		},
		{
			name:  "empty bold pair stays plain",
			input: "****",
			want:  []types.InlineSpan{plain("****")},
		},
		{
			name:  "empty bold pair then text",
			input: "****x**",
			want:  []types.InlineSpan{plain("****x**")},
		},
		{
			name:  "empty bold pair does not close italic",
			input: "****x*",
			want:  []types.InlineSpan{plain("****x*")},
		},
		{
			name:  "italic after empty bold pair",
			input: "x****y*z*",
			want:  []types.InlineSpan{plain("x****y"), italic("z")},
		},
		{
			name:  "leftmost shortest bold",
			input: "**a** x **b**",
			want:  []types.InlineSpan{bold("a"), plain(" x "), bold("b")},
		},
		{
			name:  "bold encloses italic markers",
			input: "**a *b* c**",
			want:  []types.InlineSpan{bold("a *b* c")},
		},
		{
			name:  "code claims asterisks",
			input: "run `a**b` now **ok**",
			want:  []types.InlineSpan{plain("run "), code("a**b"), plain(" now "), bold("ok")},
		},
		{
			name:  "empty code span",
			input: "a `` b",
			want:  []types.InlineSpan{plain("a `` b")},
		},
		{
			name:  "unclosed code",
			input: "a `b",
			want:  []types.InlineSpan{plain("a `b")},
		},
		{
			name:  "code inside bold delimiters",
			input: "**a `b` c**",
			want:  []types.InlineSpan{plain("**a "), code("b"), plain(" c**")},
		},
		{
			name:  "adjacent spans",
			input: "`x`**y***z*",
			want:  []types.InlineSpan{code("x"), bold("y"), italic("z")},
		},
		{
			name:  "unicode",
			input: "**粗体** 与 *斜体* 📌",
			want:  []types.InlineSpan{bold("粗体"), plain(" 与 "), italic("斜体"), plain(" 📌")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

// TestFormat_Reconstructs 去掉定界符后，拼接的文本与原文一致
func TestFormat_Reconstructs(t *testing.T) {
	inputs := []string{
		"a ** b",
		"no markup at all",
		"*",
		"**",
		"***",
		"`",
		"trailing *star",
		"x **",
	}
	for _, in := range inputs {
		if got := Text(Format(in)); got != in {
			t.Errorf("Text(Format(%q)) = %q, want input unchanged", in, got)
		}
	}

	in := "**bold** and *italic* and `code`"
	want := "bold and italic and code"
	if got := Text(Format(in)); got != want {
		t.Errorf("Text(Format(%q)) = %q, want %q", in, got, want)
	}
}

// TestFormat_NoEmptySpans 不输出空片段
func TestFormat_NoEmptySpans(t *testing.T) {
	for _, in := range []string{"****", "**a**", "`x`", "*a*", "**a****b**"} {
		for _, sp := range Format(in) {
			if sp.Text == "" {
				t.Errorf("Format(%q) produced an empty %s span", in, sp.Kind)
			}
		}
	}
}

// TestFormat_Idempotent 相同输入两次结果一致
func TestFormat_Idempotent(t *testing.T) {
	in := "**a** `b` *c* ** d"
	if diff := cmp.Diff(Format(in), Format(in)); diff != "" {
		t.Errorf("Format() not idempotent:\n%s", diff)
	}
}

// TestFormat_Contiguous 相邻的 plain 片段会被合并
func TestFormat_Contiguous(t *testing.T) {
	spans := Format("a ** b ** c *d")
	for i := 1; i < len(spans); i++ {
		if spans[i].Kind == types.SpanPlain && spans[i-1].Kind == types.SpanPlain {
			t.Errorf("adjacent plain spans at %d: %q %q", i, spans[i-1].Text, spans[i].Text)
		}
	}
	if !strings.HasSuffix(Text(spans), "*d") {
		t.Errorf("Text() = %q, want unmatched *d kept", Text(spans))
	}
}
