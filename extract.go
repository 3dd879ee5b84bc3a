package chatblocks

import (
	"go.uber.org/zap"

	"github.com/riverfjs/chatblocks-go/internal/util"
)

// File 提取出的代码文件
type File struct {
	Name     string
	Data     []byte
	Language string
}

// ExtractCode 将行数不少于 minLines 的代码块提取为文件
//
// 文件名优先使用代码前两行中出现的文件名（需与语言扩展名一致），
// 否则为 readable.<ext>；重名时追加 -2、-3 等后缀。
func ExtractCode(blocks []Block, minLines int) []File {
	namer := util.NewNamer()
	files := make([]File, 0)
	for _, b := range blocks {
		code, ok := b.(CodeBlock)
		if !ok || len(code.Lines) < minLines {
			continue
		}
		name := namer.Unique(util.Filename(code.Lines, code.Language))
		files = append(files, File{
			Name:     name,
			Data:     []byte(code.Code()),
			Language: code.Language,
		})
		Logger.Debug("extracted code block",
			zap.String("name", name),
			zap.Int("lines", len(code.Lines)))
	}
	return files
}
