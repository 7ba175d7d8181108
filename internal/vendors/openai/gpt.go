package openai

import (
	"context"
	"fmt"

	"github.com/baalimago/tutor/internal/models"
	"github.com/baalimago/tutor/internal/text/generic"
	"github.com/baalimago/tutor/internal/tools"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

var GptDefault = ChatGPT{
	Model:       "gpt-4o-mini",
	Temperature: 1.0,
	URL:         ChatURL,
}

// ChatGPT speaks the chat completions protocol, where tool calls are a flat
// list on the assistant message and every result is its own 'tool' message.
type ChatGPT struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   *int    `json:"max_tokens"` // Use a pointer to allow null value
	URL         string  `json:"url"`

	client generic.Client
}

func (g *ChatGPT) Setup() error {
	g.client.URL = g.URL
	err := g.client.Setup("OPENAI_API_KEY", ChatURL, "DEBUG_OPENAI", generic.BearerAuth)
	if err != nil {
		return fmt.Errorf("failed to setup openai client: %w", err)
	}
	g.client.Limiter = generic.NewRateLimiter("x-ratelimit-remaining-tokens", "x-ratelimit-reset-tokens")
	return nil
}

func (g *ChatGPT) Complete(ctx context.Context, chat pub_models.Chat, specs []pub_models.Specification) (models.Completion, error) {
	req := chatRequest{
		Model:       g.Model,
		Messages:    toChatMessages(chat.Messages),
		Temperature: &g.Temperature,
		MaxTokens:   g.MaxTokens,
	}
	if len(specs) > 0 {
		req.Tools = tools.FunctionTools(specs)
		req.ToolChoice = "auto"
	}
	body, err := g.client.PostJSON(ctx, req, nil)
	if err != nil {
		return models.Completion{}, fmt.Errorf("openai request failed: %w", err)
	}
	return parseResponse(body)
}

// ToolResultMessages returns one 'tool' message per result.
func (g *ChatGPT) ToolResultMessages(results []models.ToolResult) []pub_models.Message {
	ret := make([]pub_models.Message, 0, len(results))
	for _, r := range results {
		ret = append(ret, pub_models.Message{
			Role:       pub_models.RoleTool,
			Content:    r.Content,
			ToolCallID: r.Call.ID,
		})
	}
	return ret
}
