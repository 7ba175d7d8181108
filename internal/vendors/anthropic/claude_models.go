package anthropic

import (
	"encoding/json"

	"github.com/baalimago/tutor/internal/tools"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

type claudeReqMessage struct {
	Role    string             `json:"role"`
	Content []pub_models.Block `json:"content"`
}

type claudeReq struct {
	Model       string                  `json:"model"`
	Messages    []claudeReqMessage      `json:"messages"`
	MaxTokens   int                     `json:"max_tokens"`
	System      string                  `json:"system,omitempty"`
	Temperature *float64                `json:"temperature,omitempty"`
	Tools       []tools.InputSchemaTool `json:"tools,omitempty"`
}

type ClaudeResponse struct {
	Content      []responseBlock `json:"content"`
	ID           string          `json:"id"`
	Model        string          `json:"model"`
	Role         string          `json:"role"`
	StopReason   string          `json:"stop_reason"`
	StopSequence any             `json:"stop_sequence"`
	Type         string          `json:"type"`
	Usage        TokenInfo       `json:"usage"`
}

// responseBlock is the wire form of every block type. Only the fields of
// the block's type are set.
type responseBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type TokenInfo struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}
