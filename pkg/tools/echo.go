package tools

import (
	"fmt"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

type EchoTool pub_models.Specification

var Echo = EchoTool{
	Name:        "echo",
	Description: "Echo the provided text back. Useful for checking that tool calling works.",
	Inputs: &pub_models.InputSchema{
		Type: "object",
		Properties: map[string]pub_models.ParameterObject{
			"text": {
				Type:        "string",
				Description: "The text to echo back.",
			},
		},
		Required: []string{"text"},
	},
}

func (e EchoTool) Call(input pub_models.Input) (any, error) {
	text, ok := input["text"].(string)
	if !ok {
		return "", fmt.Errorf("text must be a string")
	}
	return text, nil
}

func (e EchoTool) Specification() pub_models.Specification {
	return pub_models.Specification(Echo)
}
