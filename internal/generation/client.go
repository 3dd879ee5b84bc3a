// Package generation talks to an OpenRouter-compatible chat completions API.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/riverfjs/chatblocks-go/internal/capture"
)

const maxResponseSize = 10 * 1024 * 1024

// Config configures a Client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Referer string
	Title   string
	Timeout time.Duration

	Temperature float64
	MaxTokens   int
	TopP        float64

	SystemPrompt string // empty uses DefaultSystemPrompt
	Disclaimer   string // appended after a rule to non-empty replies
}

// DefaultConfig returns the default sampling settings.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:      apiKey,
		BaseURL:     "https://openrouter.ai/api/v1",
		Model:       "openai/gpt-4o-mini",
		Title:       "chatblocks study assistant",
		Timeout:     120 * time.Second,
		Temperature: 0.3,
		MaxTokens:   2500,
		TopP:        0.9,
	}
}

// Request is one question.
type Request struct {
	SystemPrompt string // overrides Config.SystemPrompt
	UserText     string
	Image        *capture.Image
	Model        string // overrides Config.Model
}

// Client sends requests. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. A nil logger disables logging.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("generation"),
	}
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	TopP        float64       `json:"top_p"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Send posts the request and returns the reply text. An empty reply is
// replaced by a fallback message; a non-empty one gets the configured
// disclaimer. Failures are *Error values, except cancellation, which
// returns an error wrapping the context's error.
func (c *Client) Send(ctx context.Context, req Request) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	system := req.SystemPrompt
	if system == "" {
		system = c.cfg.SystemPrompt
	}
	if system == "" {
		system = DefaultSystemPrompt
	}

	parts := []contentPart{{Type: "text", Text: req.UserText}}
	if req.Image != nil {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: req.Image.DataURL(), Detail: "high"},
		})
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: parts},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		TopP:        c.cfg.TopP,
	})
	if err != nil {
		return "", &Error{Kind: KindUnknownTransport, Err: fmt.Errorf("marshal request: %w", err)}
	}

	start := time.Now()
	c.logger.Debug("sending request",
		zap.String("model", model),
		zap.Int("text_len", len(req.UserText)),
		zap.Bool("image", req.Image != nil))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindUnknownTransport, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if c.cfg.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	}
	if c.cfg.Title != "" {
		httpReq.Header.Set("X-Title", c.cfg.Title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Debug("request aborted", zap.Error(ctxErr))
			return "", fmt.Errorf("request aborted: %w", ctxErr)
		}
		return "", &Error{Kind: KindUnknownTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("request aborted: %w", ctxErr)
		}
		return "", &Error{Kind: KindUnknownTransport, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := errorForStatus(resp.StatusCode, strings.TrimSpace(string(data)))
		c.logger.Warn("request failed",
			zap.String("kind", string(e.Kind)),
			zap.Int("status", resp.StatusCode),
			zap.Duration("elapsed", time.Since(start)))
		return "", e
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", &Error{Kind: KindUnknownTransport, Status: resp.StatusCode, Err: fmt.Errorf("parse response: %w", err)}
	}
	if out.Error != nil {
		return "", &Error{Kind: KindUnknownTransport, Status: resp.StatusCode, Body: out.Error.Message}
	}

	reply := ""
	if len(out.Choices) > 0 {
		reply = out.Choices[0].Message.Content
	}
	c.logger.Info("request completed",
		zap.String("model", model),
		zap.Int("reply_len", len(reply)),
		zap.Duration("elapsed", time.Since(start)))

	return finalize(reply, req.Image != nil, c.cfg.Disclaimer), nil
}
