package vendors

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baalimago/tutor/internal/models"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
	"github.com/google/uuid"
)

// MockToolDirective makes the Mock request a tool call. A line in the last
// user message of the form '/tool <name> <json-args>' becomes one call.
const MockToolDirective = "/tool "

// Mock is a Completer which echoes the last user message. It needs no
// credentials and is selected with the model 'test'.
type Mock struct{}

func (m *Mock) Setup() error {
	return nil
}

func (m *Mock) Complete(ctx context.Context, chat pub_models.Chat, specs []pub_models.Specification) (models.Completion, error) {
	if err := ctx.Err(); err != nil {
		return models.Completion{}, err
	}
	if len(chat.Messages) == 0 {
		return reply(""), nil
	}

	last := chat.Messages[len(chat.Messages)-1]
	if last.Role == pub_models.RoleTool {
		results := make([]string, 0)
		for i := len(chat.Messages) - 1; i >= 0 && chat.Messages[i].Role == pub_models.RoleTool; i-- {
			results = append([]string{chat.Messages[i].Content}, results...)
		}
		return reply(strings.Join(results, "\n")), nil
	}

	uMsg, _, err := chat.LastOfRole(pub_models.RoleUser)
	if err != nil {
		return reply(""), nil
	}
	calls, err := parseDirectives(uMsg.Text())
	if err != nil {
		return models.Completion{}, err
	}
	if len(calls) == 0 {
		return reply(uMsg.Text()), nil
	}
	return models.Completion{
		ToolCalls: calls,
		Message: pub_models.Message{
			Role:      pub_models.RoleAssistant,
			ToolCalls: calls,
		},
	}, nil
}

func (m *Mock) ToolResultMessages(results []models.ToolResult) []pub_models.Message {
	ret := make([]pub_models.Message, 0, len(results))
	for _, r := range results {
		ret = append(ret, pub_models.Message{
			Role:       pub_models.RoleTool,
			ToolCallID: r.Call.ID,
			Content:    r.Content,
		})
	}
	return ret
}

func reply(text string) models.Completion {
	return models.Completion{
		Text: text,
		Message: pub_models.Message{
			Role:    pub_models.RoleAssistant,
			Content: text,
		},
	}
}

func parseDirectives(text string) ([]pub_models.Call, error) {
	var calls []pub_models.Call
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, MockToolDirective) {
			continue
		}
		name, args, _ := strings.Cut(strings.TrimPrefix(line, MockToolDirective), " ")
		input := pub_models.Input{}
		if strings.TrimSpace(args) != "" {
			if err := json.Unmarshal([]byte(args), &input); err != nil {
				return nil, &models.MalformedResponseError{
					Tool: name,
					Raw:  args,
					Err:  fmt.Errorf("failed to parse mock directive: %w", err),
				}
			}
		}
		calls = append(calls, pub_models.Call{
			ID:        "call_" + uuid.NewString(),
			Name:      name,
			Inputs:    input,
			Arguments: args,
		})
	}
	return calls, nil
}
