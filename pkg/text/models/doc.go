// Package models contains the public data structures shared by the
// agent loop, the tool registry and the backend adapters. These types are
// intentionally small and decoupled from any vendor wire format so that the
// loop never needs to know which backend produced a turn.
//
// The main entry points are:
//
//   - Chat:    a conversation consisting of ordered, append-only Messages.
//   - Message: a single role-tagged turn, carrying plain text, ordered
//     content Blocks, tool calls, or the id of the call it answers.
//   - Block:   the tagged union of TextBlock, ToolUseBlock and
//     ToolResultBlock used by content-block backends.
//   - Call, Input: a tool request emitted by the model and its arguments.
//   - LLMTool, Specification, InputSchema, ParameterObject: types that
//     describe tools to the model and validate incoming arguments.
package models
