// Command chatblocks renders model replies and asks the study assistant
// questions from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/riverfjs/chatblocks-go"
	"github.com/riverfjs/chatblocks-go/internal/config"
)

// app holds state shared by the subcommands.
type app struct {
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "chatblocks",
		Short: "Segment, format and render model-generated text",
		Long: `chatblocks splits model replies into blocks (headings, lists, tables,
fenced code, paragraphs) and renders them as plain text, HTML or styled
terminal output. It can also ask an OpenRouter model a study question and
keeps a short list of recent activity.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			if a.verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			} else {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			}
			logger, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			chatblocks.SetLogger(logger)

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("config loaded",
				zap.String("path", a.configPath),
				zap.String("model", cfg.Provider.Model))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath(), "Path to the YAML config file")

	root.AddCommand(
		newRenderCmd(a),
		newAskCmd(a),
		newRecentCmd(a),
	)
	return root
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return dir + string(os.PathSeparator) + "chatblocks" + string(os.PathSeparator) + "config.yaml"
}

// renderOptions builds render options from the config and a format override.
func (a *app) renderOptions(format string) []chatblocks.Option {
	if format == "" {
		format = a.cfg.Render.Format
	}
	rc := chatblocks.NewConfig()
	rc.Width = a.cfg.Render.Width
	return []chatblocks.Option{
		chatblocks.WithFormat(chatblocks.Format(format)),
		chatblocks.WithConfig(rc),
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
