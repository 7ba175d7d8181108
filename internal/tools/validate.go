package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Validate the input against the input schema of spec. It returns a copy of
// the input where absent optional fields with a declared default are filled
// in, and where explicit nulls for optional fields are dropped.
func Validate(spec pub_models.Specification, input pub_models.Input) (pub_models.Input, error) {
	ret := make(pub_models.Input, len(input))
	for k, v := range input {
		ret[k] = v
	}
	if spec.Inputs == nil {
		return ret, nil
	}
	schema := spec.Inputs

	fieldsMissing := make([]string, 0)
	for _, req := range schema.Required {
		if v, exists := ret[req]; !exists || v == nil {
			fieldsMissing = append(fieldsMissing, req)
		}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	problems := make([]string, 0)
	for _, name := range names {
		prop := schema.Properties[name]
		v, exists := ret[name]
		if exists && v == nil {
			delete(ret, name)
			exists = false
		}
		if !exists {
			if prop.Default != nil {
				ret[name] = prop.Default
			}
			continue
		}
		if err := validateParameter(prop, v); err != nil {
			problems = append(problems, fmt.Sprintf("'%v' %v", name, err))
		}
	}

	if len(fieldsMissing) > 0 || len(problems) > 0 {
		return nil, NewValidationError(spec.Name, fieldsMissing, problems)
	}
	return ret, nil
}

func validateParameter(prop pub_models.ParameterObject, v any) error {
	if err := validateType(prop.Type, v); err != nil {
		return err
	}
	if len(prop.Enum) > 0 {
		str, _ := v.(string)
		if !slices.Contains(prop.Enum, str) {
			return fmt.Errorf("must be one of %v, got: '%v'", prop.Enum, v)
		}
	}
	if prop.Minimum != nil || prop.Maximum != nil {
		f, ok := asFloat(v)
		if !ok {
			return fmt.Errorf("expected a number, got %T", v)
		}
		if prop.Minimum != nil && f < *prop.Minimum {
			return fmt.Errorf("must be >= %v, got: %v", *prop.Minimum, f)
		}
		if prop.Maximum != nil && f > *prop.Maximum {
			return fmt.Errorf("must be <= %v, got: %v", *prop.Maximum, f)
		}
	}
	if prop.Type == "array" && prop.Items != nil {
		for i, item := range v.([]any) {
			if err := validateParameter(*prop.Items, item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func validateType(expected string, v any) error {
	switch expected {
	case "", "any":
		return nil
	case "string":
		if _, ok := v.(string); ok {
			return nil
		}
	case "number":
		if _, ok := asFloat(v); ok {
			return nil
		}
	case "integer":
		if f, ok := asFloat(v); ok && math.Trunc(f) == f {
			return nil
		}
	case "boolean":
		if _, ok := v.(bool); ok {
			return nil
		}
	case "object":
		switch v.(type) {
		case map[string]any, pub_models.Input:
			return nil
		}
	case "array":
		if _, ok := v.([]any); ok {
			return nil
		}
	default:
		return fmt.Errorf("unsupported schema type '%v'", expected)
	}
	return fmt.Errorf("expected %v, got %T", expected, v)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
