package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// LLMTool is a capability which the model may request to have executed.
type LLMTool interface {
	// Call the tool with already validated Input. The result may be a string,
	// which is passed on as is, or any value which can be encoded as JSON.
	Call(Input) (any, error)

	// Specification which is advertised to the model and used to validate
	// Input before Call is invoked.
	Specification() Specification
}

type Input map[string]any

// Call is a tool request emitted by the model inside an assistant turn.
type Call struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Inputs Input  `json:"inputs,omitempty"`
	// Arguments is the raw argument text, as sent by backends which encode
	// the arguments as a string.
	Arguments string `json:"arguments,omitempty"`
}

// ArgumentsJSON returns the raw arguments if present, otherwise the inputs
// encoded as JSON.
func (c Call) ArgumentsJSON() string {
	if c.Arguments != "" {
		return c.Arguments
	}
	inp := c.Inputs
	if inp == nil {
		inp = Input{}
	}
	b, err := json.Marshal(inp)
	if err != nil {
		return fmt.Sprintf("ERROR: Failed to marshal: %v", err)
	}
	return string(b)
}

// PrettyPrint the call, showing name and what input params is used
// on a concise way
func (c Call) PrettyPrint() string {
	keys := make([]string, 0, len(c.Inputs))
	for k := range c.Inputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	paramStr := ""
	for i, flag := range keys {
		paramStr += fmt.Sprintf("'%v': '%v'", flag, c.Inputs[flag])
		if i < len(keys)-1 {
			paramStr += ","
		}
	}

	return fmt.Sprintf("Call: '%s', inputs: [ %s ]", c.Name, paramStr)
}

type Specification struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Inputs      *InputSchema `json:"input_schema,omitempty"`
}

type InputSchema struct {
	Type       string                     `json:"type"`
	Required   []string                   `json:"required"`
	Properties map[string]ParameterObject `json:"properties"`
}

// Patch the input schema, making sure every field is initialized so that
// all vendors accept it
func (is *InputSchema) Patch() {
	if is.Required == nil {
		is.Required = make([]string, 0)
	}
	if is.Properties == nil {
		is.Properties = make(map[string]ParameterObject)
	}
	if is.Type == "" {
		is.Type = "object"
	}
}

// IsOk checks if the input schema is ok
func (is *InputSchema) IsOk() bool {
	for _, p := range is.Properties {
		if p.Type == "array" && p.Items == nil {
			return false
		}
	}
	return true
}

type ParameterObject struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Enum        []string         `json:"enum,omitempty"`
	Items       *ParameterObject `json:"items,omitempty"`
	Minimum     *float64         `json:"minimum,omitempty"`
	Maximum     *float64         `json:"maximum,omitempty"`
	Default     any              `json:"default,omitempty"`
}
