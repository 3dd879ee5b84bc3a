package chatblocks

import "github.com/riverfjs/chatblocks-go/internal/render"

// Format selects the output of Render.
type Format = render.Format

const (
	FormatPlain    = render.FormatPlain
	FormatHTML     = render.FormatHTML
	FormatTerminal = render.FormatTerminal
)

// ErrUnknownFormat is returned by Render for unsupported formats.
var ErrUnknownFormat = render.ErrUnknownFormat

// RenderOptions holds options for rendering.
type RenderOptions struct {
	Format Format
	Config *RenderConfig
}

// Option is a function that configures RenderOptions.
type Option func(*RenderOptions)

// WithFormat sets the output format.
func WithFormat(format Format) Option {
	return func(opts *RenderOptions) {
		opts.Format = format
	}
}

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *RenderOptions) {
		if config != nil {
			opts.Config = config
		}
	}
}

// defaultRenderOptions returns the default rendering options.
func defaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Format: FormatPlain,
		Config: DefaultConfig(),
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *RenderOptions {
	options := defaultRenderOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
