package generation

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSuperseded is returned for a request that was replaced by a newer
// Send or cancelled by Reset. Its reply, if any, is discarded.
var ErrSuperseded = errors.New("request superseded by a newer one")

// Sender sends a single request.
type Sender interface {
	Send(ctx context.Context, req Request) (string, error)
}

// Role is the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a Conversation.
type Message struct {
	ID       string
	Role     Role
	Content  string
	HasImage bool
	Time     time.Time
}

// Conversation keeps at most one request in flight. Starting a new Send
// cancels the pending one, so replies are appended in request order.
type Conversation struct {
	sender Sender

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	history []Message
}

// NewConversation creates an empty conversation.
func NewConversation(sender Sender) *Conversation {
	return &Conversation{sender: sender}
}

// Send records the user turn, cancels any pending request and sends req.
// The assistant reply is appended to the history and returned unless a
// later Send or Reset superseded it.
func (c *Conversation) Send(ctx context.Context, req Request) (Message, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	c.cancel = cancel
	c.history = append(c.history, Message{
		ID:       uuid.NewString(),
		Role:     RoleUser,
		Content:  req.UserText,
		HasImage: req.Image != nil,
		Time:     time.Now(),
	})
	c.mu.Unlock()

	reply, err := c.sender.Send(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return Message{}, ErrSuperseded
	}
	c.cancel = nil
	if err != nil {
		return Message{}, err
	}

	msg := Message{
		ID:      uuid.NewString(),
		Role:    RoleAssistant,
		Content: reply,
		Time:    time.Now(),
	}
	c.history = append(c.history, msg)
	return msg, nil
}

// Reset cancels any pending request and clears the history.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.history = nil
}

// History returns a copy of the turns so far.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.history))
	copy(out, c.history)
	return out
}
