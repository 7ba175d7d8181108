package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/tutor/internal/models"
	"github.com/baalimago/tutor/internal/vendors/vendorstest"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

func Test_claudifyMessages(t *testing.T) {
	tests := []struct {
		name       string
		msgs       []pub_models.Message
		wantSystem string
		want       []claudeReqMessage
	}{
		{
			name: "Single text message",
			msgs: []pub_models.Message{
				{Role: "user", Content: "Hello"},
			},
			want: []claudeReqMessage{
				{Role: "user", Content: []pub_models.Block{pub_models.TextBlock{Text: "Hello"}}},
			},
		},
		{
			name: "Multiple text messages same role",
			msgs: []pub_models.Message{
				{Role: "user", Content: "Hello"},
				{Role: "user", Content: "World"},
			},
			want: []claudeReqMessage{
				{Role: "user", Content: []pub_models.Block{
					pub_models.TextBlock{Text: "Hello"},
					pub_models.TextBlock{Text: "World"},
				}},
			},
		},
		{
			name: "Flat tool call and results",
			msgs: []pub_models.Message{
				{Role: "assistant", ToolCalls: []pub_models.Call{
					{Name: "user_name", ID: "tool1", Inputs: pub_models.Input{}},
					{Name: "mistakes_search", ID: "tool2", Inputs: pub_models.Input{"topic": "ser"}},
				}},
				{Role: "tool", ToolCallID: "tool1", Content: "Alicia"},
				{Role: "tool", ToolCallID: "tool2", Content: "No mistakes found."},
			},
			want: []claudeReqMessage{
				{Role: "assistant", Content: []pub_models.Block{
					pub_models.ToolUseBlock{ID: "tool1", Name: "user_name", Input: pub_models.Input{}},
					pub_models.ToolUseBlock{ID: "tool2", Name: "mistakes_search", Input: pub_models.Input{"topic": "ser"}},
				}},
				{Role: "user", Content: []pub_models.Block{
					pub_models.ToolResultBlock{ToolUseID: "tool1", Content: "Alicia"},
					pub_models.ToolResultBlock{ToolUseID: "tool2", Content: "No mistakes found."},
				}},
			},
		},
		{
			name: "System message lifted",
			msgs: []pub_models.Message{
				{Role: "system", Content: "system message"},
				{Role: "user", Content: "Hello"},
			},
			wantSystem: "system message",
			want: []claudeReqMessage{
				{Role: "user", Content: []pub_models.Block{pub_models.TextBlock{Text: "Hello"}}},
			},
		},
		{
			name: "Block messages kept as is",
			msgs: []pub_models.Message{
				{Role: "user", Content: "Teach me"},
				{Role: "assistant", Blocks: []pub_models.Block{
					pub_models.TextBlock{Text: "Checking"},
					pub_models.ToolUseBlock{ID: "tu1", Name: "user_name", Input: pub_models.Input{}},
				}},
				{Role: "user", Blocks: []pub_models.Block{
					pub_models.ToolResultBlock{ToolUseID: "tu1", Content: "Alicia"},
				}},
			},
			want: []claudeReqMessage{
				{Role: "user", Content: []pub_models.Block{pub_models.TextBlock{Text: "Teach me"}}},
				{Role: "assistant", Content: []pub_models.Block{
					pub_models.TextBlock{Text: "Checking"},
					pub_models.ToolUseBlock{ID: "tu1", Name: "user_name", Input: pub_models.Input{}},
				}},
				{Role: "user", Content: []pub_models.Block{
					pub_models.ToolResultBlock{ToolUseID: "tu1", Content: "Alicia"},
				}},
			},
		},
		{
			name: "Empty messages dropped",
			msgs: []pub_models.Message{
				{Role: "user", Content: "Hello"},
				{Role: "assistant", Content: ""},
				{Role: "user", Content: "Again"},
			},
			want: []claudeReqMessage{
				{Role: "user", Content: []pub_models.Block{
					pub_models.TextBlock{Text: "Hello"},
					pub_models.TextBlock{Text: "Again"},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSystem, got := claudifyMessages(tt.msgs)
			if gotSystem != tt.wantSystem {
				t.Errorf("system = %q, want %q", gotSystem, tt.wantSystem)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("claudifyMessages() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newTestClaude(t *testing.T, handler http.HandlerFunc) *Claude {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("ANTHROPIC_API_KEY", "test-key")
	c := ClaudeDefault
	c.Url = srv.URL
	if err := c.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return &c
}

func respondWith(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func TestSetup(t *testing.T) {
	vendorstest.RunSetupTests(t, "ANTHROPIC_API_KEY", true, func() models.Completer {
		c := ClaudeDefault
		return &c
	})
}

func TestComplete_Blocks(t *testing.T) {
	c := newTestClaude(t, respondWith(`{"role":"assistant","stop_reason":"tool_use","content":[
		{"type":"thinking","thinking":"hmm"},
		{"type":"text","text":"Let me look."},
		{"type":"tool_use","id":"tu_1","name":"user_name","input":{}},
		{"type":"text","text":"And search."},
		{"type":"tool_use","id":"tu_2","name":"mistakes_search","input":{"topic":"ser/estar"}}
	]}`))

	got, err := c.Complete(context.Background(), pub_models.Chat{}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, got.Text, "Let me look.\nAnd search.")
	if len(got.ToolCalls) != 2 || got.ToolCalls[0].ID != "tu_1" || got.ToolCalls[1].ID != "tu_2" {
		t.Fatalf("unexpected tool calls: %+v", got.ToolCalls)
	}
	if got.ToolCalls[1].Inputs["topic"] != "ser/estar" {
		t.Fatalf("unexpected inputs: %+v", got.ToolCalls[1].Inputs)
	}
	// Order of text and tool_use blocks is kept, unknown block types skipped
	if len(got.Message.Blocks) != 4 {
		t.Fatalf("expected 4 blocks, got: %+v", got.Message.Blocks)
	}
	if _, ok := got.Message.Blocks[1].(pub_models.ToolUseBlock); !ok {
		t.Fatalf("expected tool_use as second block, got: %T", got.Message.Blocks[1])
	}
}

func TestComplete_EmptyContent(t *testing.T) {
	c := newTestClaude(t, respondWith(`{"role":"assistant","content":[]}`))
	got, err := c.Complete(context.Background(), pub_models.Chat{}, nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Text != "" || len(got.ToolCalls) != 0 {
		t.Fatalf("expected empty completion, got: %+v", got)
	}
}

func TestComplete_MalformedInput(t *testing.T) {
	c := newTestClaude(t, respondWith(`{"content":[{"type":"tool_use","id":"tu_1","name":"mistakes_store","input":"not an object"}]}`))
	_, err := c.Complete(context.Background(), pub_models.Chat{}, nil)
	var malformed *models.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got: %v", err)
	}
	if malformed.CallID != "tu_1" {
		t.Fatalf("unexpected call id: %v", malformed.CallID)
	}
}

func TestComplete_Request(t *testing.T) {
	var got map[string]any
	var apiKey, version string
	c := newTestClaude(t, func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("x-api-key")
		version = r.Header.Get("anthropic-version")
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		io.WriteString(w, `{"content":[{"type":"text","text":"ok"}]}`)
	})

	chat := pub_models.Chat{Messages: []pub_models.Message{
		{Role: pub_models.RoleSystem, Content: "be a tutor"},
		{Role: pub_models.RoleUser, Content: "teach me"},
	}}
	specs := []pub_models.Specification{{Name: "user_name", Description: "name"}}
	if _, err := c.Complete(context.Background(), chat, specs); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, apiKey, "test-key")
	testboil.FailTestIfDiff(t, version, "2023-06-01")
	if got["system"] != "be a tutor" {
		t.Fatalf("expected system to be lifted, got: %v", got["system"])
	}
	msgs := got["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got: %v", msgs)
	}
	toolsJSON, _ := json.Marshal(got["tools"])
	testboil.FailTestIfDiff(t, string(toolsJSON), `[{"name":"user_name","description":"name","input_schema":{"type":"object","required":[],"properties":{}}}]`)
}

func TestToolResultMessages(t *testing.T) {
	c := &Claude{}
	models.Completer_ToolResults_Test(t, c)

	msgs := c.ToolResultMessages([]models.ToolResult{
		{Call: pub_models.Call{ID: "a"}, Content: "1"},
		{Call: pub_models.Call{ID: "b"}, Content: "2"},
		{Call: pub_models.Call{ID: "c"}, Content: "3"},
	})
	if len(msgs) != 1 || msgs[0].Role != pub_models.RoleUser || len(msgs[0].Blocks) != 3 {
		t.Fatalf("expected one user message with 3 blocks, got: %+v", msgs)
	}
}

func TestToolResultMessages_MarksFailures(t *testing.T) {
	c := &Claude{}
	msgs := c.ToolResultMessages([]models.ToolResult{
		{Call: pub_models.Call{ID: "ok"}, Content: "Alicia"},
		{Call: pub_models.Call{ID: "bad"}, Content: "Tool echo failed: missing 'text'", IsError: true},
	})
	b, err := json.Marshal(msgs[0].Blocks)
	if err != nil {
		t.Fatalf("failed to marshal blocks: %v", err)
	}
	testboil.FailTestIfDiff(t, string(b),
		`[{"type":"tool_result","tool_use_id":"ok","content":"Alicia"},`+
			`{"type":"tool_result","tool_use_id":"bad","content":"Tool echo failed: missing 'text'","is_error":true}]`)
}
