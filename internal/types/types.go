package types

import "strings"

// BlockType 表示块的种类
type BlockType int

const (
	BlockParagraph BlockType = iota
	BlockHeading
	BlockList
	BlockCode
	BlockTable
	BlockRule
	BlockBreak
)

// String returns the string representation of BlockType.
func (bt BlockType) String() string {
	switch bt {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockList:
		return "list"
	case BlockCode:
		return "code_block"
	case BlockTable:
		return "table"
	case BlockRule:
		return "rule"
	case BlockBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Block 是一个结构化单元。实现仅限于本包中的类型。
type Block interface {
	GetBlockType() BlockType
	isBlock()
}

// Paragraph 普通段落，Text 已去除首尾空白
type Paragraph struct {
	Text string
}

// Heading 标题，Level 取值 1..6
type Heading struct {
	Level int
	Text  string
}

// ListKind 区分有序与无序列表
type ListKind int

const (
	ListUnordered ListKind = iota
	ListOrdered
)

// String returns the string representation of ListKind.
func (k ListKind) String() string {
	if k == ListOrdered {
		return "ordered"
	}
	return "unordered"
}

// ListGroup 连续的同类列表项。Start 为有序列表首项的编号，无序列表为 0。
type ListGroup struct {
	Kind  ListKind
	Start int
	Items []string
}

// CodeBlock 围栏代码块，Lines 保持原样
type CodeBlock struct {
	Language string
	Lines    []string
}

// Code joins the verbatim lines with newlines.
func (c CodeBlock) Code() string {
	return strings.Join(c.Lines, "\n")
}

// Table 表格：表头加零或多行数据，分隔行不保存
type Table struct {
	Header []string
	Rows   [][]string
}

// Rule 水平分隔线
type Rule struct{}

// Break 单个空行标记
type Break struct{}

func (Paragraph) GetBlockType() BlockType { return BlockParagraph }
func (Heading) GetBlockType() BlockType   { return BlockHeading }
func (ListGroup) GetBlockType() BlockType { return BlockList }
func (CodeBlock) GetBlockType() BlockType { return BlockCode }
func (Table) GetBlockType() BlockType     { return BlockTable }
func (Rule) GetBlockType() BlockType      { return BlockRule }
func (Break) GetBlockType() BlockType     { return BlockBreak }

func (Paragraph) isBlock() {}
func (Heading) isBlock()   {}
func (ListGroup) isBlock() {}
func (CodeBlock) isBlock() {}
func (Table) isBlock()     {}
func (Rule) isBlock()      {}
func (Break) isBlock()     {}

// SpanKind 行内样式
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
)

// String returns the string representation of SpanKind.
func (k SpanKind) String() string {
	switch k {
	case SpanPlain:
		return "plain"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanCode:
		return "code"
	default:
		return "unknown"
	}
}

// InlineSpan 块文本中带单一样式的连续片段
type InlineSpan struct {
	Kind SpanKind
	Text string
}

// Symbol 定义渲染时各元素的显示符号
type Symbol struct {
	HeadingLevel1 string
	HeadingLevel2 string
	HeadingLevel3 string
	HeadingLevel4 string
	HeadingLevel5 string
	HeadingLevel6 string
	Bullet        string
	Rule          string
}

// Heading returns the symbol configured for a heading level.
func (s *Symbol) Heading(level int) string {
	switch level {
	case 1:
		return s.HeadingLevel1
	case 2:
		return s.HeadingLevel2
	case 3:
		return s.HeadingLevel3
	case 4:
		return s.HeadingLevel4
	case 5:
		return s.HeadingLevel5
	case 6:
		return s.HeadingLevel6
	}
	return ""
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() *Symbol {
	return &Symbol{
		HeadingLevel1: "📌",
		HeadingLevel2: "📝",
		HeadingLevel3: "📋",
		HeadingLevel4: "📄",
		HeadingLevel5: "📃",
		HeadingLevel6: "🔖",
		Bullet:        "⦁",
		Rule:          "————————",
	}
}

// RenderConfig 渲染配置
type RenderConfig struct {
	MarkdownSymbol *Symbol
	// Width 终端渲染时分隔线的宽度，0 表示使用 Symbol.Rule
	Width int
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol: DefaultSymbol(),
	}
}
