package openai

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/baalimago/tutor/internal/models"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

func strPtr(s string) *string {
	return &s
}

// toChatMessages converts the chat into the flat protocol. Block messages
// are flattened: text blocks become content, tool_use blocks become
// tool_calls and every tool_result block becomes its own 'tool' message.
func toChatMessages(msgs []pub_models.Message) []chatMessage {
	ret := make([]chatMessage, 0, len(msgs))
	for _, msg := range msgs {
		if len(msg.Blocks) == 0 {
			ret = append(ret, flatMessage(msg.Role, msg.Content, msg.ToolCalls, msg.ToolCallID))
			continue
		}

		calls := make([]pub_models.Call, 0)
		for _, b := range msg.Blocks {
			switch block := b.(type) {
			case pub_models.ToolUseBlock:
				calls = append(calls, pub_models.CallFromBlock(block))
			case pub_models.ToolResultBlock:
				ret = append(ret, flatMessage(pub_models.RoleTool, block.Content, nil, block.ToolUseID))
			}
		}
		text := msg.Text()
		if text == "" && len(calls) == 0 {
			continue
		}
		ret = append(ret, flatMessage(msg.Role, text, calls, ""))
	}
	return ret
}

func flatMessage(role, content string, calls []pub_models.Call, toolCallID string) chatMessage {
	cm := chatMessage{
		Role:       role,
		Content:    strPtr(content),
		ToolCallID: toolCallID,
	}
	if len(calls) > 0 {
		if content == "" {
			cm.Content = nil
		}
		for _, c := range calls {
			cm.ToolCalls = append(cm.ToolCalls, toolCall{
				ID:   c.ID,
				Type: "function",
				Function: functionCall{
					Name:      c.Name,
					Arguments: c.ArgumentsJSON(),
				},
			})
		}
	}
	return cm
}

func parseResponse(body []byte) (models.Completion, error) {
	var res chatResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return models.Completion{}, &models.MalformedResponseError{Raw: string(body), Err: err}
	}
	if len(res.Choices) == 0 {
		return models.Completion{}, &models.MalformedResponseError{
			Raw: string(body),
			Err: errors.New("response contains no choices"),
		}
	}
	return parseMessage(res.Choices[0].Message)
}

func parseMessage(msg chatMessage) (models.Completion, error) {
	text := ""
	if msg.Content != nil {
		text = *msg.Content
	}
	calls := make([]pub_models.Call, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		input, err := parseArguments(tc.Function.Arguments)
		if err != nil {
			return models.Completion{}, &models.MalformedResponseError{
				CallID: tc.ID,
				Tool:   tc.Function.Name,
				Raw:    tc.Function.Arguments,
				Err:    err,
			}
		}
		calls = append(calls, pub_models.Call{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Inputs:    input,
			Arguments: tc.Function.Arguments,
		})
	}

	ret := models.Completion{
		Text: text,
		Message: pub_models.Message{
			Role:    pub_models.RoleAssistant,
			Content: text,
		},
	}
	if len(calls) > 0 {
		ret.ToolCalls = calls
		ret.Message.ToolCalls = calls
	}
	return ret, nil
}

// parseArguments decodes the argument text of a call. Empty arguments are
// an empty object.
func parseArguments(raw string) (pub_models.Input, error) {
	if strings.TrimSpace(raw) == "" {
		return pub_models.Input{}, nil
	}
	var input pub_models.Input
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil, err
	}
	if input == nil {
		input = pub_models.Input{}
	}
	return input, nil
}
