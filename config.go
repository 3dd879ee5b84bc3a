package chatblocks

import (
	"sync"

	"github.com/riverfjs/chatblocks-go/internal/types"
)

// 导出类型别名
type Symbol = types.Symbol
type RenderConfig = types.RenderConfig

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
// Treat it as read-only; build a custom config with NewConfig.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}

// NewConfig returns a fresh copy of the default configuration.
func NewConfig() *RenderConfig {
	return types.DefaultRenderConfig()
}
