package anthropic

import (
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// claudifyMessages converts the chat into the block protocol. The leading
// system message is lifted out and returned on its own.
func claudifyMessages(msgs []pub_models.Message) (string, []claudeReqMessage) {
	system := ""
	if len(msgs) > 0 && msgs[0].Role == pub_models.RoleSystem {
		system = msgs[0].Text()
		msgs = msgs[1:]
	}

	claudeMsgs := make([]claudeReqMessage, 0, len(msgs))
	for _, msg := range msgs {
		role, blocks := toBlocks(msg)
		if len(blocks) == 0 {
			continue
		}
		last := len(claudeMsgs) - 1
		// Merge consecutive messages of the same role, the api demands alternation
		if last >= 0 && claudeMsgs[last].Role == role {
			claudeMsgs[last].Content = append(claudeMsgs[last].Content, blocks...)
			continue
		}
		claudeMsgs = append(claudeMsgs, claudeReqMessage{Role: role, Content: blocks})
	}
	return system, claudeMsgs
}

func toBlocks(msg pub_models.Message) (string, []pub_models.Block) {
	role := msg.Role
	switch role {
	case pub_models.RoleTool:
		role = pub_models.RoleUser
	case pub_models.RoleSystem:
		role = pub_models.RoleAssistant
	}

	if len(msg.Blocks) > 0 {
		cpy := make([]pub_models.Block, len(msg.Blocks))
		copy(cpy, msg.Blocks)
		return role, cpy
	}

	blocks := make([]pub_models.Block, 0, 1+len(msg.ToolCalls))
	if msg.Role == pub_models.RoleTool {
		return role, append(blocks, pub_models.ToolResultBlock{
			ToolUseID: msg.ToolCallID,
			Content:   msg.Content,
		})
	}
	if msg.Content != "" {
		blocks = append(blocks, pub_models.TextBlock{Text: msg.Content})
	}
	for _, c := range msg.ToolCalls {
		blocks = append(blocks, pub_models.ToolUseBlock{
			ID:    c.ID,
			Name:  c.Name,
			Input: c.Inputs,
		})
	}
	return role, blocks
}
