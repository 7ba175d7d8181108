package agent

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/tutor/internal/models"
	"github.com/baalimago/tutor/internal/tools"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// loop alternates between model requests and tool dispatch until the model
// replies without tool calls, or until maxTurns requests have been sent.
func (c *Conversation) loop(ctx context.Context, maxTurns int) (string, error) {
	a := c.agent
	specs := a.registry.Specifications()
	for step := 1; step <= maxTurns; step++ {
		if a.verbose {
			a.printSection(fmt.Sprintf("--- Request to model (step %d) ---", step), map[string]any{
				"messages": c.chat.Messages,
			})
		}
		comp, err := a.completer.Complete(ctx, c.chat, specs)
		if err != nil {
			return "", fmt.Errorf("failed to complete step %d: %w", step, err)
		}
		if a.verbose {
			a.printSection("--- Response from model ---", comp.Message)
		}

		c.chat.Append(comp.Message)
		if len(comp.ToolCalls) == 0 {
			answer := strings.TrimSpace(comp.Text)
			if a.transcript != nil {
				a.transcript.LogAgent(answer)
			}
			return answer, nil
		}
		if a.transcript != nil {
			a.transcript.LogAgent(comp.Text)
		}

		results := make([]models.ToolResult, 0, len(comp.ToolCalls))
		for _, call := range comp.ToolCalls {
			res, err := a.dispatch(call)
			if err != nil {
				// No results may follow the dangling tool calls, so drop the turn.
				c.chat.Messages = c.chat.Messages[:len(c.chat.Messages)-1]
				return "", fmt.Errorf("failed to dispatch tool call '%v' at step %d: %w", call.ID, step, err)
			}
			results = append(results, res)
		}
		c.chat.Append(a.completer.ToolResultMessages(results)...)
	}
	return "", fmt.Errorf("%w (max turns: %d)", ErrLoopExceeded, maxTurns)
}

// dispatch invokes the call. Validation and execution failures are returned
// as text, so that the model may recover from them. A call to a tool which
// isn't registered is a configuration error and is returned as error.
func (a *Agent) dispatch(call pub_models.Call) (models.ToolResult, error) {
	args := call.ArgumentsJSON()
	if misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.PrintOK(fmt.Sprintf("received tool call: %v\n", call.PrettyPrint()))
	}
	if a.verbose {
		fmt.Fprintf(a.out, "%v %v with args %v\n", ancli.ColoredMessage(ancli.BLUE, "Calling tool"), call.Name, args)
	}
	if a.transcript != nil {
		a.transcript.LogToolCall(call.Name, args)
	}

	res := models.ToolResult{Call: call}
	out, err := a.registry.Invoke(call.Name, call.Inputs)
	if errors.Is(err, tools.ErrToolNotFound) {
		if a.transcript != nil {
			a.transcript.LogToolResult(call.ID, err.Error())
		}
		return res, err
	}
	if err != nil {
		out = fmt.Sprintf("Tool %v failed: %v", call.Name, err)
		res.IsError = true
		if a.verbose {
			fmt.Fprintln(a.out, out)
		}
	}
	res.Content = limitToolOutput(out, a.toolOutputRuneLimit)

	if a.verbose {
		fmt.Fprintf(a.out, "%v (%v): %v\n", ancli.ColoredMessage(ancli.MAGENTA, "Tool result"), call.ID, res.Content)
	}
	if a.transcript != nil {
		a.transcript.LogToolResult(call.ID, res.Content)
	}
	return res, nil
}

func limitToolOutput(out string, limit int) string {
	if limit <= 0 {
		return out
	}
	amRunes := utf8.RuneCountInString(out)
	if amRunes <= limit {
		return out
	}
	return fmt.Sprintf(
		"%v... and %v more characters. The tool's output has been restricted as it's too long.",
		string([]rune(out)[:limit]), amRunes-limit)
}

func (a *Agent) printSection(title string, v any) {
	fmt.Fprintln(a.out, ancli.ColoredMessage(ancli.CYAN, title))
	fmt.Fprintln(a.out, debug.IndentedJsonFmt(v))
}
