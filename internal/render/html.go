package render

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"

	"github.com/riverfjs/chatblocks-go/internal/inline"
	"github.com/riverfjs/chatblocks-go/internal/types"
)

// HTML renders blocks as an HTML fragment. All text is escaped.
type HTML struct{}

// NewHTML creates an HTML renderer.
func NewHTML() *HTML {
	return &HTML{}
}

// Render implements Renderer.
func (h *HTML) Render(blocks []types.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch v := b.(type) {
		case types.Paragraph:
			sb.WriteString("<p>")
			writeSpans(&sb, v.Text)
			sb.WriteString("</p>\n")

		case types.Heading:
			tag := "h" + strconv.Itoa(v.Level)
			sb.WriteString("<" + tag + ">")
			writeSpans(&sb, v.Text)
			sb.WriteString("</" + tag + ">\n")

		case types.ListGroup:
			if v.Kind == types.ListOrdered {
				if v.Start != 1 {
					sb.WriteString(`<ol start="` + strconv.Itoa(v.Start) + `">` + "\n")
				} else {
					sb.WriteString("<ol>\n")
				}
			} else {
				sb.WriteString("<ul>\n")
			}
			for _, item := range v.Items {
				sb.WriteString("<li>")
				writeSpans(&sb, item)
				sb.WriteString("</li>\n")
			}
			if v.Kind == types.ListOrdered {
				sb.WriteString("</ol>\n")
			} else {
				sb.WriteString("</ul>\n")
			}

		case types.CodeBlock:
			sb.WriteString("<pre><code")
			if v.Language != "" {
				sb.WriteString(` class="language-`)
				sb.Write(util.EscapeHTML([]byte(v.Language)))
				sb.WriteString(`"`)
			}
			sb.WriteString(">")
			sb.Write(util.EscapeHTML([]byte(v.Code())))
			sb.WriteString("</code></pre>\n")

		case types.Table:
			sb.WriteString("<table>\n<thead>\n<tr>\n")
			for _, cell := range v.Header {
				sb.WriteString("<th>")
				writeSpans(&sb, cell)
				sb.WriteString("</th>\n")
			}
			sb.WriteString("</tr>\n</thead>\n")
			if len(v.Rows) > 0 {
				sb.WriteString("<tbody>\n")
				for _, row := range v.Rows {
					sb.WriteString("<tr>\n")
					for _, cell := range row {
						sb.WriteString("<td>")
						writeSpans(&sb, cell)
						sb.WriteString("</td>\n")
					}
					sb.WriteString("</tr>\n")
				}
				sb.WriteString("</tbody>\n")
			}
			sb.WriteString("</table>\n")

		case types.Rule:
			sb.WriteString("<hr>\n")

		case types.Break:
			sb.WriteString("<br>\n")
		}
	}
	return sb.String()
}

func writeSpans(sb *strings.Builder, text string) {
	for _, sp := range inline.Format(text) {
		escaped := util.EscapeHTML([]byte(sp.Text))
		switch sp.Kind {
		case types.SpanBold:
			sb.WriteString("<strong>")
			sb.Write(escaped)
			sb.WriteString("</strong>")
		case types.SpanItalic:
			sb.WriteString("<em>")
			sb.Write(escaped)
			sb.WriteString("</em>")
		case types.SpanCode:
			sb.WriteString("<code>")
			sb.Write(escaped)
			sb.WriteString("</code>")
		default:
			sb.Write(escaped)
		}
	}
}
