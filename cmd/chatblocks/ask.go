package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/riverfjs/chatblocks-go"
	"github.com/riverfjs/chatblocks-go/internal/activity"
	"github.com/riverfjs/chatblocks-go/internal/capture"
	"github.com/riverfjs/chatblocks-go/internal/config"
	"github.com/riverfjs/chatblocks-go/internal/generation"
)

func newAskCmd(a *app) *cobra.Command {
	var (
		imagePath string
		model     string
		format    string
		noSave    bool
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the study assistant a question",
		Long: `Sends a question, optionally with an image of an exercise, and renders
the reply. With no question, reads one question per line from stdin and
keeps a conversation; "/reset" starts over.

Example:
  chatblocks ask "explain the pythagorean theorem"
  chatblocks ask --image homework.jpg "solve number 3"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			client := generation.NewClient(generationConfig(a.cfg), a.logger)
			defer client.Close()
			conv := generation.NewConversation(client)

			var store *activity.Store
			if !noSave {
				s, err := activity.Open(a.cfg.Storage.DatabasePath, a.logger)
				if err != nil {
					return err
				}
				defer s.Close()
				store = s
			}

			s := &session{
				app:   a,
				conv:  conv,
				store: store,
				model: model,
				opts:  a.renderOptions(format),
				out:   cmd.OutOrStdout(),
				errw:  cmd.ErrOrStderr(),
			}

			if len(args) > 0 || imagePath != "" {
				var img *capture.Image
				if imagePath != "" {
					loaded, err := loadImage(a.cfg, imagePath)
					if err != nil {
						return err
					}
					img = loaded
				}
				return s.ask(ctx, strings.Join(args, " "), img)
			}
			return s.loop(ctx, cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVarP(&imagePath, "image", "i", "", "Attach an image (JPG, PNG or WebP, max 10 MB)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "Model override")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: plain, html, terminal (default from config)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record recent activity")
	return cmd
}

func generationConfig(cfg *config.Config) generation.Config {
	return generation.Config{
		APIKey:       cfg.Provider.APIKey,
		BaseURL:      cfg.Provider.BaseURL,
		Model:        cfg.Provider.Model,
		Referer:      cfg.Provider.Referer,
		Title:        cfg.Provider.Title,
		Timeout:      cfg.GetTimeout(),
		Temperature:  cfg.Generation.Temperature,
		MaxTokens:    cfg.Generation.MaxTokens,
		TopP:         cfg.Generation.TopP,
		SystemPrompt: cfg.Generation.SystemPrompt,
		Disclaimer:   cfg.Generation.Disclaimer,
	}
}

func loadImage(cfg *config.Config, path string) (*capture.Image, error) {
	img, err := capture.Load(path)
	if err != nil {
		return nil, err
	}
	return capture.Resize(img, cfg.Image.MaxWidth, cfg.Image.Quality)
}

// session is one ask invocation.
type session struct {
	*app
	conv  *generation.Conversation
	store *activity.Store
	model string
	opts  []chatblocks.Option
	out   io.Writer
	errw  io.Writer
}

func (s *session) ask(ctx context.Context, text string, img *capture.Image) error {
	record := activity.NewRecord(text, img != nil, time.Now())
	s.save(ctx, record)

	msg, err := s.conv.Send(ctx, generation.Request{
		UserText: generation.EnhancePrompt(text, img != nil),
		Image:    img,
		Model:    s.model,
	})
	if err != nil {
		record.ResultPreview = activity.FailedPreview
		s.save(context.WithoutCancel(ctx), record)

		var genErr *generation.Error
		if errors.As(err, &genErr) {
			fmt.Fprintln(s.errw, genErr.UserMessage())
		}
		return err
	}

	record.HasResult = true
	record.ResultPreview = activity.Preview(msg.Content)
	s.save(ctx, record)

	out, err := chatblocks.Render(msg.Content, s.opts...)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, out)
	return nil
}

// loop reads questions line by line until EOF.
func (s *session) loop(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/reset":
			s.conv.Reset()
			fmt.Fprintln(s.out, "(conversation reset)")
			continue
		}
		if err := s.ask(ctx, line, nil); err != nil {
			if ctx.Err() != nil {
				return err
			}
			s.logger.Warn("question failed", zap.Error(err))
		}
	}
	return scanner.Err()
}

func (s *session) save(ctx context.Context, r activity.Record) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, r); err != nil {
		s.logger.Warn("failed to save activity", zap.Error(err))
	}
}
