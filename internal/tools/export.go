package tools

import (
	"encoding/json"
	"fmt"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Format selects the wire shape of an exported tool catalog.
type Format int

const (
	// FormatFunction is the flat tool-call shape:
	// {"type":"function","function":{"name","description","parameters"}}
	FormatFunction Format = iota
	// FormatInputSchema is the content-block shape:
	// {"name","description","input_schema"}
	FormatInputSchema
)

func (f Format) String() string {
	switch f {
	case FormatFunction:
		return "function"
	case FormatInputSchema:
		return "input_schema"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

type FunctionTool struct {
	Type     string       `json:"type"`
	Function FunctionDecl `json:"function"`
}

type FunctionDecl struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  pub_models.InputSchema `json:"parameters"`
}

type InputSchemaTool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	InputSchema pub_models.InputSchema `json:"input_schema"`
}

func schemaOf(spec pub_models.Specification) pub_models.InputSchema {
	if spec.Inputs == nil {
		empty := &pub_models.InputSchema{}
		empty.Patch()
		return *empty
	}
	s := *spec.Inputs
	s.Patch()
	return s
}

// FunctionTools converts the specifications into the flat tool-call shape.
func FunctionTools(specs []pub_models.Specification) []FunctionTool {
	ret := make([]FunctionTool, 0, len(specs))
	for _, s := range specs {
		ret = append(ret, FunctionTool{
			Type: "function",
			Function: FunctionDecl{
				Name:        s.Name,
				Description: s.Description,
				Parameters:  schemaOf(s),
			},
		})
	}
	return ret
}

// InputSchemaTools converts the specifications into the content-block shape.
func InputSchemaTools(specs []pub_models.Specification) []InputSchemaTool {
	ret := make([]InputSchemaTool, 0, len(specs))
	for _, s := range specs {
		ret = append(ret, InputSchemaTool{
			Name:        s.Name,
			Description: s.Description,
			InputSchema: schemaOf(s),
		})
	}
	return ret
}

// Export the specifications in the given format.
func Export(specs []pub_models.Specification, format Format) ([]any, error) {
	ret := make([]any, 0, len(specs))
	switch format {
	case FormatFunction:
		for _, t := range FunctionTools(specs) {
			ret = append(ret, t)
		}
	case FormatInputSchema:
		for _, t := range InputSchemaTools(specs) {
			ret = append(ret, t)
		}
	default:
		return nil, fmt.Errorf("unknown export format: %v", format)
	}
	return ret, nil
}

// Export every registered tool in the given format, in registration order.
func (r *Registry) Export(format Format) ([]any, error) {
	return Export(r.Specifications(), format)
}

// RequiredFields decodes an exported catalog and returns the required field
// names per tool name.
func RequiredFields(exported []byte, format Format) (map[string][]string, error) {
	ret := make(map[string][]string)
	switch format {
	case FormatFunction:
		var tools []FunctionTool
		if err := json.Unmarshal(exported, &tools); err != nil {
			return nil, fmt.Errorf("failed to decode function catalog: %w", err)
		}
		for _, t := range tools {
			ret[t.Function.Name] = t.Function.Parameters.Required
		}
	case FormatInputSchema:
		var tools []InputSchemaTool
		if err := json.Unmarshal(exported, &tools); err != nil {
			return nil, fmt.Errorf("failed to decode input_schema catalog: %w", err)
		}
		for _, t := range tools {
			ret[t.Name] = t.InputSchema.Required
		}
	default:
		return nil, fmt.Errorf("unknown export format: %v", format)
	}
	return ret, nil
}
