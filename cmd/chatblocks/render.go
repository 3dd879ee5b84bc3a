package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/riverfjs/chatblocks-go"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		format      string
		extractDir  string
		minLines    int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "render [file...]",
		Short: "Render text files (or stdin) as plain, html or terminal output",
		Long: `Reads each file, segments it into blocks and renders it. With no files,
reads stdin. Files are processed concurrently and printed in argument order.

Example:
  chatblocks render --format html reply.md
  cat reply.md | chatblocks render --extract-code ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := renderInputs(cmd, args, a.renderOptions(format), concurrency)
			if err != nil {
				return err
			}

			outputs := make([]string, len(docs))
			var all []chatblocks.Block
			for i, d := range docs {
				outputs[i] = d.output
				all = append(all, d.blocks...)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(outputs, "\n\n"))

			if extractDir != "" {
				return writeFiles(a, extractDir, chatblocks.ExtractCode(all, minLines))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: plain, html, terminal (default from config)")
	cmd.Flags().StringVar(&extractDir, "extract-code", "", "Write fenced code blocks to files in this directory")
	cmd.Flags().IntVar(&minLines, "min-lines", 1, "Minimum lines for a code block to be extracted")
	cmd.Flags().IntVar(&concurrency, "jobs", 4, "Number of files rendered in parallel")
	return cmd
}

type document struct {
	blocks []chatblocks.Block
	output string
}

func renderDocument(text string, opts []chatblocks.Option) (document, error) {
	out, err := chatblocks.Render(text, opts...)
	if err != nil {
		return document{}, err
	}
	return document{blocks: chatblocks.SegmentBlocks(text), output: out}, nil
}

// renderInputs reads and renders the named files concurrently, or stdin
// when none are given. Results keep the argument order.
func renderInputs(cmd *cobra.Command, paths []string, opts []chatblocks.Option, limit int) ([]document, error) {
	if len(paths) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		d, err := renderDocument(string(data), opts)
		if err != nil {
			return nil, err
		}
		return []document{d}, nil
	}

	docs := make([]document, len(paths))
	g, ctx := errgroup.WithContext(cmd.Context())
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			d, err := renderDocument(string(data), opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", path, err)
			}
			docs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func writeFiles(a *app, dir string, files []chatblocks.File) error {
	if len(files) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		a.logger.Info("wrote code block", zap.String("path", path), zap.String("language", f.Language))
	}
	return nil
}
