package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riverfjs/chatblocks-go/internal/types"
)

const fence = "```"

var (
	orderedItemRe   = regexp.MustCompile(`^(\d+)\.\s+(.*)`)
	unorderedItemRe = regexp.MustCompile(`^[-*+]\s+(.*)`)

	// 分隔行：只包含 - : | 和空白
	separatorRowRe = regexp.MustCompile(`^[\s|\-:]*$`)
)

// Parse 逐行扫描文本，生成有序的块列表
//
// 单次前向扫描，列表、表格、代码块的累积状态都是本次调用的局部变量。
// 任何输入都会返回结果，不会出错。
func Parse(text string) []types.Block {
	s := newScanner()
	if text == "" {
		return s.blocks
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		// 末尾换行在未闭合的代码块里不算一行代码
		if i == len(lines)-1 && line == "" && s.inCodeBlock {
			break
		}
		next := ""
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		s.scanLine(line, next)
	}
	return s.finish()
}

// scanner 保存一次扫描中的累积状态
type scanner struct {
	blocks []types.Block

	// Code block state
	inCodeBlock bool
	codeLang    string
	codeLines   []string

	// Table state
	inTable     bool
	hasHeader   bool
	tableHeader []string
	tableRows   [][]string

	// List state
	listOpen  bool
	listKind  types.ListKind
	listStart int
	listItems []string
}

func newScanner() *scanner {
	return &scanner{
		blocks: make([]types.Block, 0),
	}
}

func (s *scanner) scanLine(line, next string) {
	trimmed := strings.TrimSpace(line)

	// --- Code fence ---
	if s.inCodeBlock {
		if trimmed == fence {
			s.onEndCodeBlock()
			return
		}
		s.codeLines = append(s.codeLines, line)
		return
	}
	if lang, ok := openingFence(trimmed); ok {
		s.onStartCodeBlock(lang)
		return
	}

	// --- Table ---
	if s.isTableRow(trimmed, next) {
		s.onTableRow(trimmed)
		return
	}
	s.flushTable()

	// --- Heading ---
	if level, text, ok := parseHeading(trimmed); ok {
		s.flushList()
		s.emit(types.Heading{Level: level, Text: text})
		return
	}

	// --- Rule ---
	if trimmed == "---" || trimmed == "***" || trimmed == "___" {
		s.flushList()
		s.emit(types.Rule{})
		return
	}

	// --- Lists ---
	if m := orderedItemRe.FindStringSubmatch(trimmed); m != nil {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			start = 1
		}
		s.onListItem(types.ListOrdered, start, m[2])
		return
	}
	if m := unorderedItemRe.FindStringSubmatch(trimmed); m != nil {
		s.onListItem(types.ListUnordered, 0, m[1])
		return
	}
	s.flushList()

	// --- Blank line ---
	if trimmed == "" {
		s.onBlank()
		return
	}

	s.emit(types.Paragraph{Text: trimmed})
}

func (s *scanner) finish() []types.Block {
	if s.inCodeBlock {
		// 未闭合的代码块仍然输出
		s.onEndCodeBlock()
	}
	s.flushList()
	s.flushTable()
	return s.blocks
}

func (s *scanner) emit(b types.Block) {
	s.blocks = append(s.blocks, b)
}

// --- Code block ---

func (s *scanner) onStartCodeBlock(lang string) {
	s.flushList()
	s.flushTable()
	s.inCodeBlock = true
	s.codeLang = lang
	s.codeLines = make([]string, 0)
}

func (s *scanner) onEndCodeBlock() {
	s.emit(types.CodeBlock{
		Language: s.codeLang,
		Lines:    s.codeLines,
	})
	s.inCodeBlock = false
	s.codeLang = ""
	s.codeLines = nil
}

// openingFence reports whether trimmed opens a fence and returns its language.
func openingFence(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, fence) {
		return "", false
	}
	info := trimmed[len(fence):]
	if strings.Contains(info, "`") {
		return "", false
	}
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "", true
	}
	lang := strings.TrimSpace(strings.Split(fields[0], ",")[0])
	return lang, true
}

// --- Table ---

// isTableRow 判断当前行是否为表格行
//
// 含两个及以上 | 的行总是表格行。只含一个 | 的行（如 "A|B"）在表格已打开，
// 或下一行是分隔行时也视为表格行。
func (s *scanner) isTableRow(trimmed, next string) bool {
	pipes := strings.Count(trimmed, "|")
	if pipes >= 2 {
		return true
	}
	if pipes == 0 {
		return false
	}
	if s.inTable {
		return true
	}
	return isSeparatorLine(strings.TrimSpace(next))
}

func (s *scanner) onTableRow(trimmed string) {
	s.flushList()
	s.inTable = true

	if separatorRowRe.MatchString(trimmed) {
		return
	}

	cells := splitCells(trimmed)
	if !s.hasHeader {
		s.tableHeader = cells
		s.hasHeader = true
		s.tableRows = make([][]string, 0)
		return
	}
	s.tableRows = append(s.tableRows, cells)
}

func (s *scanner) flushTable() {
	if !s.inTable {
		return
	}
	if s.hasHeader {
		s.emit(types.Table{
			Header: s.tableHeader,
			Rows:   s.tableRows,
		})
	}
	s.inTable = false
	s.hasHeader = false
	s.tableHeader = nil
	s.tableRows = nil
}

// splitCells 按 | 拆分，去掉首尾 | 产生的空单元格
func splitCells(trimmed string) []string {
	parts := strings.Split(trimmed, "|")
	if strings.HasPrefix(trimmed, "|") {
		parts = parts[1:]
	}
	if strings.HasSuffix(trimmed, "|") && len(parts) > 0 {
		parts = parts[:len(parts)-1]
	}
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorLine(trimmed string) bool {
	return strings.Contains(trimmed, "|") &&
		strings.Contains(trimmed, "-") &&
		separatorRowRe.MatchString(trimmed)
}

// --- Heading ---

func parseHeading(trimmed string) (int, string, bool) {
	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n == 0 || n >= len(trimmed) || trimmed[n] != ' ' {
		return 0, "", false
	}
	return min(n, 6), trimmed[n+1:], true
}

// --- Lists ---

func (s *scanner) onListItem(kind types.ListKind, start int, text string) {
	s.flushTable()
	if s.listOpen && s.listKind != kind {
		s.flushList()
	}
	if !s.listOpen {
		s.listOpen = true
		s.listKind = kind
		s.listStart = start
		s.listItems = make([]string, 0)
	}
	s.listItems = append(s.listItems, text)
}

func (s *scanner) flushList() {
	if !s.listOpen {
		return
	}
	s.emit(types.ListGroup{
		Kind:  s.listKind,
		Start: s.listStart,
		Items: s.listItems,
	})
	s.listOpen = false
	s.listStart = 0
	s.listItems = nil
}

// --- Blank line ---

// onBlank 连续空行只产生一个 Break，文本开头的空行不产生 Break
func (s *scanner) onBlank() {
	if len(s.blocks) == 0 {
		return
	}
	if _, ok := s.blocks[len(s.blocks)-1].(types.Break); ok {
		return
	}
	s.emit(types.Break{})
}
