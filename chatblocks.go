// Package chatblocks 将模型生成的文本转换为结构化的块和行内片段
//
// 输入是一段完整的文本（标题、列表、表格、围栏代码、强调），输出是有序的
// Block 列表；每个包含文本的块可以再拆分为 InlineSpan（bold、italic、code、plain）。
//
// 核心功能：
//   - SegmentBlocks(): 单次逐行扫描，生成 Paragraph、Heading、ListGroup、
//     CodeBlock、Table、Rule、Break
//   - FormatInline(): 分层提取 code、bold、italic 片段
//   - Render(): 渲染为纯文本、HTML 或终端样式
//   - ExtractCode(): 将代码块提取为文件
//
// 示例：
//
//	blocks := chatblocks.SegmentBlocks(reply)
//	for _, b := range blocks {
//	    switch v := b.(type) {
//	    case chatblocks.Heading:
//	        spans := chatblocks.FormatInline(v.Text)
//	        // ...
//	    case chatblocks.CodeBlock:
//	        // v.Lines 原样保留
//	    }
//	}
//
//	out, err := chatblocks.Render(reply, chatblocks.WithFormat(chatblocks.FormatHTML))
package chatblocks

import (
	"go.uber.org/zap"

	"github.com/riverfjs/chatblocks-go/internal/render"
)

// Render 分段并渲染文本
//
// 参数：
//   - text: 完整的模型输出文本
//   - opts: 渲染选项，默认纯文本格式和默认配置
//
// 返回：
//   - string: 渲染结果
//   - error: 格式不支持时返回 ErrUnknownFormat
func Render(text string, opts ...Option) (string, error) {
	options := applyOptions(opts...)
	r, err := render.New(options.Format, options.Config)
	if err != nil {
		return "", err
	}
	blocks := SegmentBlocks(text)
	Logger.Debug("render",
		zap.String("format", string(options.Format)),
		zap.Int("blocks", len(blocks)),
		zap.Int("input_len", len(text)))
	return r.Render(blocks), nil
}
