package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/baalimago/tutor/internal/tools"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// validateEcho invokes the echo tool through the registry, without any
// model involved.
func validateEcho(w io.Writer, r *tools.Registry) error {
	payload := pub_models.Input{"text": "tool called correctly"}
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}
	fmt.Fprintf(w, "Tool call: echo -> %v\n", string(b))
	out, err := r.Invoke("echo", payload)
	if err != nil {
		return fmt.Errorf("echo tool failed: %w", err)
	}
	fmt.Fprintln(w, out)
	return nil
}
