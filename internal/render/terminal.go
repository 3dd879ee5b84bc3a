package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riverfjs/chatblocks-go/internal/buffer"
	"github.com/riverfjs/chatblocks-go/internal/inline"
	"github.com/riverfjs/chatblocks-go/internal/types"
)

// Colors
var (
	Primary = lipgloss.Color("#2E7D32")
	Accent  = lipgloss.Color("#8BC34A")
	Muted   = lipgloss.Color("#9E9E9E")
	CodeFg  = lipgloss.Color("#66BB6A")
)

// Styles holds the lipgloss styles used by the terminal renderer.
type Styles struct {
	Heading     [6]lipgloss.Style
	Bold        lipgloss.Style
	Italic      lipgloss.Style
	Code        lipgloss.Style
	CodeBlock   lipgloss.Style
	Bullet      lipgloss.Style
	Rule        lipgloss.Style
	TableHeader lipgloss.Style
}

// DefaultStyles returns the default terminal styles.
func DefaultStyles() Styles {
	h := lipgloss.NewStyle().Bold(true).Foreground(Primary)
	return Styles{
		Heading: [6]lipgloss.Style{
			h.Underline(true),
			h,
			h.Foreground(Accent),
			h.Foreground(Accent),
			lipgloss.NewStyle().Italic(true).Foreground(Accent),
			lipgloss.NewStyle().Italic(true).Foreground(Muted),
		},
		Bold:        lipgloss.NewStyle().Bold(true),
		Italic:      lipgloss.NewStyle().Italic(true),
		Code:        lipgloss.NewStyle().Foreground(CodeFg),
		CodeBlock:   lipgloss.NewStyle().Foreground(CodeFg),
		Bullet:      lipgloss.NewStyle().Foreground(Accent),
		Rule:        lipgloss.NewStyle().Foreground(Muted),
		TableHeader: lipgloss.NewStyle().Bold(true),
	}
}

// Terminal renders blocks with ANSI styling. Styling degrades to plain text
// when the output has no color support.
type Terminal struct {
	config *types.RenderConfig
	styles Styles
}

// NewTerminal creates a terminal renderer.
func NewTerminal(config *types.RenderConfig, styles Styles) *Terminal {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	return &Terminal{config: config, styles: styles}
}

// Render implements Renderer.
func (t *Terminal) Render(blocks []types.Block) string {
	buf := buffer.New()
	symbol := t.config.MarkdownSymbol
	if symbol == nil {
		symbol = types.DefaultSymbol()
	}

	for _, b := range blocks {
		if _, ok := b.(types.Break); ok {
			buf.EnsureNewlines(2)
			continue
		}
		buf.EnsureNewlines(1)

		switch v := b.(type) {
		case types.Paragraph:
			buf.Write(t.spans(v.Text))

		case types.Heading:
			text := spanText(v.Text)
			if s := symbol.Heading(v.Level); s != "" {
				text = s + " " + text
			}
			level := min(max(v.Level, 1), 6)
			buf.Write(t.styles.Heading[level-1].Render(text))

		case types.ListGroup:
			for i, item := range v.Items {
				if i > 0 {
					buf.Write("\n")
				}
				marker := symbol.Bullet
				if v.Kind == types.ListOrdered {
					marker = fmt.Sprintf("%d.", v.Start+i)
				}
				buf.Write("  " + t.styles.Bullet.Render(marker) + " " + t.spans(item))
			}

		case types.CodeBlock:
			lines := make([]string, len(v.Lines))
			for i, line := range v.Lines {
				lines[i] = "  " + t.styles.CodeBlock.Render(line)
			}
			buf.Write(strings.Join(lines, "\n"))

		case types.Table:
			lines := formatTable(v.Header, v.Rows, func(s string) string { return t.styles.TableHeader.Render(s) })
			buf.Write(strings.Join(lines, "\n"))

		case types.Rule:
			rule := symbol.Rule
			if t.config.Width > 0 {
				rule = strings.Repeat("─", t.config.Width)
			}
			buf.Write(t.styles.Rule.Render(rule))
		}
	}

	return strings.TrimRight(buf.String(), "\n")
}

func (t *Terminal) spans(text string) string {
	var sb strings.Builder
	for _, sp := range inline.Format(text) {
		switch sp.Kind {
		case types.SpanBold:
			sb.WriteString(t.styles.Bold.Render(sp.Text))
		case types.SpanItalic:
			sb.WriteString(t.styles.Italic.Render(sp.Text))
		case types.SpanCode:
			sb.WriteString(t.styles.Code.Render(sp.Text))
		default:
			sb.WriteString(sp.Text)
		}
	}
	return sb.String()
}
