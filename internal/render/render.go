// Package render maps blocks and inline spans to output formats.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/riverfjs/chatblocks-go/internal/inline"
	"github.com/riverfjs/chatblocks-go/internal/types"
)

// Format names an output format.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatHTML     Format = "html"
	FormatTerminal Format = "terminal"
)

// ErrUnknownFormat is returned by New for unsupported formats.
var ErrUnknownFormat = errors.New("unknown render format")

// Renderer turns a block sequence into a string.
type Renderer interface {
	Render(blocks []types.Block) string
}

// New returns the renderer for format. A nil config uses the defaults.
func New(format Format, config *types.RenderConfig) (Renderer, error) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	switch format {
	case FormatPlain, "":
		return NewPlain(config), nil
	case FormatHTML:
		return NewHTML(), nil
	case FormatTerminal:
		return NewTerminal(config, DefaultStyles()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// spanText returns text with inline delimiters removed.
func spanText(text string) string {
	return inline.Text(inline.Format(text))
}

// formatTable lays out header and rows as left-justified columns joined by
// " | ", with a "-+-" separator line after the header. Widths are measured
// in terminal cells so wide characters stay aligned.
func formatTable(header []string, rows [][]string, cell func(string) string) []string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)

	numCols := 0
	for _, row := range all {
		if len(row) > numCols {
			numCols = len(row)
		}
	}
	if numCols == 0 {
		return nil
	}

	texts := make([][]string, len(all))
	colWidths := make([]int, numCols)
	for r, row := range all {
		texts[r] = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			if i < len(row) {
				texts[r][i] = spanText(row[i])
			}
			if w := lipgloss.Width(texts[r][i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(all)+1)
	for r, row := range texts {
		cells := make([]string, numCols)
		for i, text := range row {
			padded := text + strings.Repeat(" ", colWidths[i]-lipgloss.Width(text))
			if r == 0 && cell != nil {
				padded = cell(padded)
			}
			cells[i] = padded
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " | "), " "))

		if r == 0 {
			sepCells := make([]string, numCols)
			for i := range sepCells {
				sepCells[i] = strings.Repeat("-", colWidths[i])
			}
			lines = append(lines, strings.Join(sepCells, "-+-"))
		}
	}
	return lines
}
