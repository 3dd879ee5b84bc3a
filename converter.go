package chatblocks

import (
	"github.com/riverfjs/chatblocks-go/internal/inline"
	"github.com/riverfjs/chatblocks-go/internal/parser"
	"github.com/riverfjs/chatblocks-go/internal/types"
)

// 导出类型别名
type (
	Block      = types.Block
	BlockType  = types.BlockType
	Paragraph  = types.Paragraph
	Heading    = types.Heading
	ListKind   = types.ListKind
	ListGroup  = types.ListGroup
	CodeBlock  = types.CodeBlock
	Table      = types.Table
	Rule       = types.Rule
	Break      = types.Break
	SpanKind   = types.SpanKind
	InlineSpan = types.InlineSpan
)

const (
	BlockParagraph = types.BlockParagraph
	BlockHeading   = types.BlockHeading
	BlockList      = types.BlockList
	BlockCode      = types.BlockCode
	BlockTable     = types.BlockTable
	BlockRule      = types.BlockRule
	BlockBreak     = types.BlockBreak

	ListUnordered = types.ListUnordered
	ListOrdered   = types.ListOrdered

	SpanPlain  = types.SpanPlain
	SpanBold   = types.SpanBold
	SpanItalic = types.SpanItalic
	SpanCode   = types.SpanCode
)

// SegmentBlocks 将文本拆分为有序的块列表
//
// 对任何输入都返回结果，空字符串返回空列表。每次调用都构建新的结果，
// 调用之间没有共享状态。
func SegmentBlocks(text string) []Block {
	return parser.Parse(text)
}

// FormatInline 将块文本拆分为行内片段
//
// 只用于 Paragraph、Heading、列表项和表格单元格的文本，不用于 CodeBlock。
// 未配对的定界符保留在 plain 文本中。
func FormatInline(text string) []InlineSpan {
	return inline.Format(text)
}

// SpanText 拼接片段文本（即去掉定界符后的文本）
func SpanText(spans []InlineSpan) string {
	return inline.Text(spans)
}
