// This file contains tests intended to be used by the implementations of the
// Completer interface
package models

import (
	"context"
	"testing"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Completer_Context_Test ensures that Complete returns once the context is
// cancelled.
func Completer_Context_Test(t *testing.T, c Completer) {
	testboil.ReturnsOnContextCancel(t, func(ctx context.Context) {
		c.Complete(ctx, pub_models.Chat{}, nil)
	}, time.Second)
}

// Completer_ToolResults_Test ensures that every result is answered with
// its call id, in order.
func Completer_ToolResults_Test(t *testing.T, c Completer) {
	t.Helper()
	results := []ToolResult{
		{Call: pub_models.Call{ID: "call_a", Name: "user_name"}, Content: "Alicia"},
		{Call: pub_models.Call{ID: "call_b", Name: "mistakes_search"}, Content: "No mistakes found."},
	}
	ids := make([]string, 0)
	for _, msg := range c.ToolResultMessages(results) {
		if msg.ToolCallID != "" {
			ids = append(ids, msg.ToolCallID)
		}
		for _, b := range msg.Blocks {
			if tr, ok := b.(pub_models.ToolResultBlock); ok {
				ids = append(ids, tr.ToolUseID)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "call_a" || ids[1] != "call_b" {
		t.Fatalf("expected result ids [call_a call_b], got: %v", ids)
	}
}
