package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/riverfjs/chatblocks-go/internal/capture"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	cfg := DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL
	cfg.Referer = "https://example.com"
	cfg.Title = "test title"
	for _, fn := range mutate {
		fn(&cfg)
	}
	c := NewClient(cfg, nil)
	t.Cleanup(func() {
		c.Close()
		srv.Close()
	})
	return c
}

func reply(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
	})
}

func TestClient_Send_RequestShape(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "https://example.com", r.Header.Get("HTTP-Referer"))
		assert.Equal(t, "test title", r.Header.Get("X-Title"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		reply(w, "# Answer")
	}, func(cfg *Config) {
		cfg.Disclaimer = "*check your work*"
	})

	img := &capture.Image{MIME: "image/png", Data: []byte{1, 2, 3}}
	out, err := c.Send(context.Background(), Request{UserText: "what is this?", Image: img, Model: "custom/model"})
	require.NoError(t, err)
	assert.Equal(t, "# Answer\n\n---\n*check your work*", out)

	assert.Equal(t, "custom/model", got["model"])
	assert.Equal(t, 0.3, got["temperature"])
	assert.Equal(t, float64(2500), got["max_tokens"])
	assert.Equal(t, 0.9, got["top_p"])

	messages := got["messages"].([]any)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, DefaultSystemPrompt, system["content"])

	user := messages[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, map[string]any{"type": "text", "text": "what is this?"}, parts[0])
	assert.Equal(t, map[string]any{
		"type":      "image_url",
		"image_url": map[string]any{"url": img.DataURL(), "detail": "high"},
	}, parts[1])
}

func TestClient_Send_StatusKinds(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
		target error
	}{
		{http.StatusTooManyRequests, KindRateLimited, ErrRateLimited},
		{http.StatusUnauthorized, KindUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, KindUnauthorized, ErrUnauthorized},
		{http.StatusBadRequest, KindMalformedRequest, ErrMalformedRequest},
		{http.StatusInternalServerError, KindUnknownTransport, ErrUnknownTransport},
		{http.StatusBadGateway, KindUnknownTransport, ErrUnknownTransport},
	}
	messages := map[Kind]string{}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "provider says no", tt.status)
			})
			_, err := c.Send(context.Background(), Request{UserText: "q"})

			var genErr *Error
			require.ErrorAs(t, err, &genErr)
			assert.Equal(t, tt.kind, genErr.Kind)
			assert.Equal(t, tt.status, genErr.Status)
			assert.Equal(t, "provider says no", genErr.Body)
			assert.ErrorIs(t, err, tt.target)
			assert.NotEmpty(t, genErr.UserMessage())
			messages[tt.kind] = genErr.UserMessage()
		})
	}

	seen := map[string]bool{}
	for _, msg := range messages {
		assert.False(t, seen[msg], "duplicate user message %q", msg)
		seen[msg] = true
	}
}

func TestClient_Send_Fallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		reply(w, "   \n")
	}, func(cfg *Config) {
		cfg.Disclaimer = "disclaimer"
	})

	out, err := c.Send(context.Background(), Request{UserText: "q"})
	require.NoError(t, err)
	assert.Equal(t, fallbackText, out)

	out, err = c.Send(context.Background(), Request{UserText: "q", Image: &capture.Image{MIME: "image/png"}})
	require.NoError(t, err)
	assert.Equal(t, fallbackImage, out)
}

func TestClient_Send_NoChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	out, err := c.Send(context.Background(), Request{UserText: "q"})
	require.NoError(t, err)
	assert.Equal(t, fallbackText, out)
}

func TestClient_Send_BadResponse(t *testing.T) {
	tests := map[string]string{
		"not json":       `<html>oops</html>`,
		"provider error": `{"error":{"message":"model overloaded"}}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.Send(context.Background(), Request{UserText: "q"})
			assert.ErrorIs(t, err, ErrUnknownTransport)
		})
	}
}

func TestClient_Send_MissingKey(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}, func(cfg *Config) {
		cfg.APIKey = ""
	})

	_, err := c.Send(context.Background(), Request{UserText: "q"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, hits.Load())
}

func TestClient_Send_Cancel(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := c.Send(ctx, Request{UserText: "q"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 2*time.Second)

	var genErr *Error
	assert.False(t, errors.As(err, &genErr))
}
