package tools

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/baalimago/tutor/internal/utils"
)

// SubCmd prints the tools of the registry. With a tool name as first
// argument, the full specification of that tool is printed instead.
func SubCmd(w io.Writer, r *Registry, args []string) error {
	if len(args) > 0 {
		toolName := args[0]
		tool, exists := r.Get(toolName)
		if !exists {
			return fmt.Errorf("%w: '%s'", ErrToolNotFound, toolName)
		}
		jsonSpec, err := json.MarshalIndent(tool.Specification(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tool specification: %w", err)
		}
		fmt.Fprintf(w, "%s\n", string(jsonSpec))
		return nil
	}

	fmt.Fprintf(w, "Available Tools:\n")
	for _, info := range r.DescribeAll() {
		prefix := fmt.Sprintf("- %s: ", info.Name)
		maybeShortenedDesc, err := utils.WidthAppropriateStringTrunc(info.Description, prefix, 5)
		if err != nil {
			return fmt.Errorf("failed to truncate description: %w", err)
		}
		fmt.Fprintln(w, maybeShortenedDesc)
	}
	fmt.Fprintln(w, "\nRun 'tutor tools <tool-name>' for more details.")
	return nil
}
