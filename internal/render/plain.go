package render

import (
	"fmt"
	"strings"

	"github.com/riverfjs/chatblocks-go/internal/buffer"
	"github.com/riverfjs/chatblocks-go/internal/types"
)

// Plain renders blocks as plain text: heading symbols, bullet and numbered
// lists, aligned tables and verbatim code. Inline delimiters are dropped.
type Plain struct {
	config *types.RenderConfig
}

// NewPlain creates a plain text renderer.
func NewPlain(config *types.RenderConfig) *Plain {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	return &Plain{config: config}
}

// Render implements Renderer.
func (p *Plain) Render(blocks []types.Block) string {
	buf := buffer.New()
	symbol := p.config.MarkdownSymbol
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
			buf.Write(spanText(v.Text))

		case types.Heading:
			if s := symbol.Heading(v.Level); s != "" {
				buf.Write(s + " ")
			}
			buf.Write(spanText(v.Text))

		case types.ListGroup:
			for i, item := range v.Items {
				if i > 0 {
					buf.Write("\n")
				}
				if v.Kind == types.ListOrdered {
					buf.Write(fmt.Sprintf("%d. ", v.Start+i))
				} else {
					buf.Write(symbol.Bullet + " ")
				}
				buf.Write(spanText(item))
			}

		case types.CodeBlock:
			buf.Write(v.Code())

		case types.Table:
			buf.Write(strings.Join(formatTable(v.Header, v.Rows, nil), "\n"))

		case types.Rule:
			buf.Write(symbol.Rule)
		}
	}

	return strings.TrimRight(buf.String(), "\n")
}
