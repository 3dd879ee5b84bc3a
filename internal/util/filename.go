package util

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// LanguageExt maps fence languages to file extensions.
var LanguageExt = map[string]string{
	"python":     "py",
	"py":         "py",
	"javascript": "js",
	"js":         "js",
	"typescript": "ts",
	"ts":         "ts",
	"jsx":        "jsx",
	"tsx":        "tsx",
	"java":       "java",
	"kotlin":     "kt",
	"c":          "c",
	"c++":        "cpp",
	"cpp":        "cpp",
	"go":         "go",
	"rust":       "rs",
	"ruby":       "rb",
	"php":        "php",
	"bash":       "sh",
	"sh":         "sh",
	"shell":      "sh",
	"html":       "html",
	"css":        "css",
	"json":       "json",
	"yaml":       "yaml",
	"yml":        "yaml",
	"toml":       "toml",
	"xml":        "xml",
	"sql":        "sql",
	"markdown":   "md",
	"md":         "md",
	"latex":      "tex",
	"tex":        "tex",
	"r":          "r",
	"dockerfile": "dockerfile",
	"plaintext":  "txt",
	"text":       "txt",
}

var filenameRe = regexp.MustCompile(`[a-zA-Z0-9_\-.]+\.[a-zA-Z0-9]+`)

// Ext returns the file extension for a fence language, "txt" when unknown.
func Ext(language string) string {
	if ext, ok := LanguageExt[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}
	return "txt"
}

// sniffFilename looks for something shaped like a filename in the first two
// non-empty lines, e.g. a "// main.go" header comment.
func sniffFilename(lines []string) string {
	seen := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, m := range filenameRe.FindAllString(strings.ReplaceAll(line, `\`, ""), -1) {
			if filepath.Ext(m) != "" && !strings.HasPrefix(m, ".") {
				return m
			}
		}
		if seen++; seen == 2 {
			break
		}
	}
	return ""
}

// Filename picks a file name for a code block: a sniffed name when it carries
// the language's extension and is short, else readable.<ext>.
func Filename(lines []string, language string) string {
	ext := Ext(language)
	name := sniffFilename(lines)
	if name != "" && strings.HasSuffix(name, "."+ext) && len(name) <= 24 {
		return name
	}
	return "readable." + ext
}

// Namer hands out unique file names.
type Namer struct {
	used map[string]int
}

// NewNamer creates an empty Namer.
func NewNamer() *Namer {
	return &Namer{used: make(map[string]int)}
}

// Unique returns name, or name with a numeric suffix if it was already taken.
func (n *Namer) Unique(name string) string {
	count := n.used[name]
	n.used[name] = count + 1
	if count == 0 {
		return name
	}
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), count+1, ext)
}
