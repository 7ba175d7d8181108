package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

type Chat struct {
	Created  time.Time `json:"created,omitempty"`
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
	// Blocks is set by backends which speak in ordered content blocks. When
	// non-empty it is the authoritative content of the turn.
	Blocks     []Block `json:"blocks,omitempty"`
	ToolCalls  []Call  `json:"tool_calls,omitempty"`
	ToolCallID string  `json:"tool_call_id,omitempty"`
}

// Text returns the textual content of the message. For block messages it's
// the concatenation of all text blocks, in order.
func (m Message) Text() string {
	if len(m.Blocks) == 0 {
		return m.Content
	}
	var sb strings.Builder
	for _, b := range m.Blocks {
		if tb, ok := b.(TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	return sb.String()
}

func (m Message) String() string {
	return m.Text()
}

// Append the message to the chat. This is the only way a chat is mutated.
func (c *Chat) Append(msgs ...Message) {
	c.Messages = append(c.Messages, msgs...)
}

func (c *Chat) LastOfRole(role string) (Message, int, error) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.Role == role {
			return msg, i, nil
		}
	}
	return Message{}, -1, fmt.Errorf("failed to find any %v message", role)
}
