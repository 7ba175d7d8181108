package tools

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrToolNotFound is returned when invoking a name which isn't registered.
var ErrToolNotFound = errors.New("tool not found")

// ToolInfo is the display form of a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ValidationError is returned when the input of a call doesn't match the
// input schema of the tool.
type ValidationError struct {
	Tool          string
	FieldsMissing []string
	Problems      []string
}

func NewValidationError(tool string, fieldsMissing, problems []string) *ValidationError {
	// Sort for deterministic error print
	slices.Sort(fieldsMissing)
	slices.Sort(problems)
	return &ValidationError{Tool: tool, FieldsMissing: fieldsMissing, Problems: problems}
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(v.FieldsMissing) > 0 {
		parts = append(parts, fmt.Sprintf("fields missing: %v", v.FieldsMissing))
	}
	if len(v.Problems) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %v", strings.Join(v.Problems, "; ")))
	}
	return fmt.Sprintf("tool '%v': validation error, %v", v.Tool, strings.Join(parts, ", "))
}

// ExecutionError wraps an error returned by the tool itself.
type ExecutionError struct {
	Tool string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool '%v': %v", e.Tool, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
