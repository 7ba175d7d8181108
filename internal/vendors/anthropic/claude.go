package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/tutor/internal/models"
	"github.com/baalimago/tutor/internal/text/generic"
	"github.com/baalimago/tutor/internal/tools"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

const ClaudeURL = "https://api.anthropic.com/v1/messages"

// Claude speaks the messages protocol, where a turn is an ordered list of
// content blocks and all tool results go back in one 'user' turn.
type Claude struct {
	Model            string  `json:"model"`
	MaxTokens        int     `json:"max_tokens"`
	Url              string  `json:"url"`
	AnthropicVersion string  `json:"anthropic-version"`
	Temperature      float64 `json:"temperature"`

	client generic.Client
}

var ClaudeDefault = Claude{
	Model:            "claude-3-5-sonnet-latest",
	Url:              ClaudeURL,
	AnthropicVersion: "2023-06-01",
	Temperature:      0.7,
	MaxTokens:        1024,
}

func apiKeyAuth(apiKey string) (string, string) {
	return "x-api-key", apiKey
}

func (c *Claude) Setup() error {
	c.client.URL = c.Url
	err := c.client.Setup("ANTHROPIC_API_KEY", ClaudeURL, "DEBUG_ANTHROPIC", apiKeyAuth)
	if err != nil {
		return fmt.Errorf("failed to setup anthropic client: %w", err)
	}
	c.client.Limiter = generic.NewRateLimiter(
		"anthropic-ratelimit-input-tokens-remaining",
		"anthropic-ratelimit-input-tokens-reset",
	)
	if c.AnthropicVersion == "" {
		c.AnthropicVersion = ClaudeDefault.AnthropicVersion
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = ClaudeDefault.MaxTokens
	}
	return nil
}

func (c *Claude) Complete(ctx context.Context, chat pub_models.Chat, specs []pub_models.Specification) (models.Completion, error) {
	system, msgs := claudifyMessages(chat.Messages)
	req := claudeReq{
		Model:       c.Model,
		Messages:    msgs,
		MaxTokens:   c.MaxTokens,
		System:      system,
		Temperature: &c.Temperature,
	}
	if len(specs) > 0 {
		req.Tools = tools.InputSchemaTools(specs)
	}
	body, err := c.client.PostJSON(ctx, req, map[string]string{
		"anthropic-version": c.AnthropicVersion,
	})
	if err != nil {
		return models.Completion{}, fmt.Errorf("anthropic request failed: %w", err)
	}
	return c.parseResponse(body)
}

// ToolResultMessages returns a single 'user' message holding one
// tool_result block per result, in the order given.
func (c *Claude) ToolResultMessages(results []models.ToolResult) []pub_models.Message {
	blocks := make([]pub_models.Block, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, pub_models.ToolResultBlock{
			ToolUseID: r.Call.ID,
			Content:   r.Content,
			IsError:   r.IsError,
		})
	}
	return []pub_models.Message{{Role: pub_models.RoleUser, Blocks: blocks}}
}

func (c *Claude) parseResponse(body []byte) (models.Completion, error) {
	var res ClaudeResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return models.Completion{}, &models.MalformedResponseError{Raw: string(body), Err: err}
	}

	blocks := make([]pub_models.Block, 0, len(res.Content))
	calls := make([]pub_models.Call, 0)
	texts := make([]string, 0, len(res.Content))
	for _, rb := range res.Content {
		switch rb.Type {
		case pub_models.BlockText:
			texts = append(texts, rb.Text)
			blocks = append(blocks, pub_models.TextBlock{Text: rb.Text})
		case pub_models.BlockToolUse:
			input, err := parseInput(rb.Input)
			if err != nil {
				return models.Completion{}, &models.MalformedResponseError{
					CallID: rb.ID,
					Tool:   rb.Name,
					Raw:    string(rb.Input),
					Err:    err,
				}
			}
			block := pub_models.ToolUseBlock{ID: rb.ID, Name: rb.Name, Input: input}
			blocks = append(blocks, block)
			calls = append(calls, pub_models.CallFromBlock(block))
		default:
			if c.client.Debug() {
				ancli.PrintWarn(fmt.Sprintf("skipping content block of type: '%v'\n", rb.Type))
			}
		}
	}

	ret := models.Completion{
		Text: strings.Join(texts, "\n"),
		Message: pub_models.Message{
			Role:   pub_models.RoleAssistant,
			Blocks: blocks,
		},
	}
	if len(calls) > 0 {
		ret.ToolCalls = calls
	}
	return ret, nil
}

func parseInput(raw json.RawMessage) (pub_models.Input, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return pub_models.Input{}, nil
	}
	var input pub_models.Input
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, err
	}
	return input, nil
}
