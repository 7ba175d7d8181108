package tools

import (
	"encoding/json"
	"fmt"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// intInput returns the named field as an int. Decoded JSON numbers arrive as
// float64.
func intInput(input pub_models.Input, name string) (int, error) {
	switch n := input[name].(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%v must be an integer: %w", name, err)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("%v must be an integer, got %T", name, input[name])
}
