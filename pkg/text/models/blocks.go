package models

import "encoding/json"

const (
	BlockText       = "text"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// Block is one entry of an ordered content block list. It's implemented by
// TextBlock, ToolUseBlock and ToolResultBlock only.
type Block interface {
	BlockType() string
	isBlock()
}

type TextBlock struct {
	Text string
}

type ToolUseBlock struct {
	ID    string
	Name  string
	Input Input
}

type ToolResultBlock struct {
	ToolUseID string
	Content   string
	IsError   bool
}

func (TextBlock) BlockType() string       { return BlockText }
func (ToolUseBlock) BlockType() string    { return BlockToolUse }
func (ToolResultBlock) BlockType() string { return BlockToolResult }

func (TextBlock) isBlock()       {}
func (ToolUseBlock) isBlock()    {}
func (ToolResultBlock) isBlock() {}

func (b TextBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{BlockText, b.Text})
}

func (b ToolUseBlock) MarshalJSON() ([]byte, error) {
	inp := b.Input
	if inp == nil {
		inp = Input{}
	}
	return json.Marshal(struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Name  string `json:"name"`
		Input Input  `json:"input"`
	}{BlockToolUse, b.ID, b.Name, inp})
}

func (b ToolResultBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      string `json:"type"`
		ToolUseID string `json:"tool_use_id"`
		Content   string `json:"content"`
		IsError   bool   `json:"is_error,omitempty"`
	}{BlockToolResult, b.ToolUseID, b.Content, b.IsError})
}

// CallFromBlock converts a tool use block into the generic Call representation.
func CallFromBlock(b ToolUseBlock) Call {
	inp := b.Input
	if inp == nil {
		inp = Input{}
	}
	return Call{
		ID:     b.ID,
		Name:   b.Name,
		Inputs: inp,
	}
}
