package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
	"github.com/baalimago/tutor/internal/models"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

var testSpecs = []pub_models.Specification{
	{
		Name:        "user_name",
		Description: "Retrieve the learner's preferred name.",
	},
}

func newTestGpt(t *testing.T, handler http.HandlerFunc) *ChatGPT {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("OPENAI_API_KEY", "test-key")
	g := GptDefault
	g.URL = srv.URL
	if err := g.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return &g
}

func respondWith(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}
}

func TestComplete_Text(t *testing.T) {
	g := newTestGpt(t, respondWith(`{"choices":[{"message":{"role":"assistant","content":"  Hola Alicia  "}}]}`))

	got, err := g.Complete(context.Background(), pub_models.Chat{}, testSpecs)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	testboil.FailTestIfDiff(t, got.Text, "  Hola Alicia  ")
	if len(got.ToolCalls) != 0 {
		t.Fatalf("expected no tool calls, got: %v", got.ToolCalls)
	}
	if got.Message.Role != pub_models.RoleAssistant {
		t.Fatalf("expected assistant message, got: %v", got.Message.Role)
	}
}

func TestComplete_ToolCalls(t *testing.T) {
	g := newTestGpt(t, respondWith(`{"choices":[{"message":{"role":"assistant","content":null,"tool_calls":[
		{"id":"call_1","type":"function","function":{"name":"user_name","arguments":""}},
		{"id":"call_2","type":"function","function":{"name":"mistakes_search","arguments":"{\"topic\":\"ser/estar\",\"limit\":3}"}}
	]}}]}`))

	got, err := g.Complete(context.Background(), pub_models.Chat{}, testSpecs)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Text != "" {
		t.Fatalf("expected empty text, got: %q", got.Text)
	}
	if len(got.ToolCalls) != 2 {
		t.Fatalf("expected 2 calls, got: %d", len(got.ToolCalls))
	}
	first, second := got.ToolCalls[0], got.ToolCalls[1]
	if first.ID != "call_1" || first.Name != "user_name" || len(first.Inputs) != 0 || first.Inputs == nil {
		t.Fatalf("unexpected first call: %+v", first)
	}
	if second.ID != "call_2" || second.Inputs["topic"] != "ser/estar" || second.Inputs["limit"] != 3.0 {
		t.Fatalf("unexpected second call: %+v", second)
	}
	if len(got.Message.ToolCalls) != 2 {
		t.Fatal("expected the assistant message to carry the tool calls")
	}
}

func TestComplete_MalformedArguments(t *testing.T) {
	g := newTestGpt(t, respondWith(`{"choices":[{"message":{"role":"assistant","tool_calls":[
		{"id":"call_1","type":"function","function":{"name":"mistakes_store","arguments":"{\"topic\":"}}
	]}}]}`))

	_, err := g.Complete(context.Background(), pub_models.Chat{}, testSpecs)
	var malformed *models.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got: %v", err)
	}
	if malformed.CallID != "call_1" || malformed.Tool != "mistakes_store" {
		t.Fatalf("unexpected error content: %+v", malformed)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	g := newTestGpt(t, respondWith(`{"choices":[]}`))
	_, err := g.Complete(context.Background(), pub_models.Chat{}, nil)
	var malformed *models.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got: %v", err)
	}
}

func TestComplete_BadStatus(t *testing.T) {
	g := newTestGpt(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":"bad key"}`)
	})
	_, err := g.Complete(context.Background(), pub_models.Chat{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	testboil.AssertStringContains(t, err.Error(), "401")
	testboil.AssertStringContains(t, err.Error(), "bad key")
}

func TestComplete_RateLimited(t *testing.T) {
	g := newTestGpt(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":"slow down"}`)
	})
	_, err := g.Complete(context.Background(), pub_models.Chat{}, nil)
	var rl *models.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %v", err)
	}
}

func TestComplete_Request(t *testing.T) {
	var got map[string]any
	var authHeader string
	g := newTestGpt(t, func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`)
	})

	chat := pub_models.Chat{Messages: []pub_models.Message{
		{Role: pub_models.RoleSystem, Content: "be a tutor"},
		{Role: pub_models.RoleUser, Content: "teach me"},
		{Role: pub_models.RoleAssistant, ToolCalls: []pub_models.Call{
			{ID: "call_1", Name: "user_name", Inputs: pub_models.Input{}, Arguments: ""},
		}},
		{Role: pub_models.RoleTool, Content: "Alicia", ToolCallID: "call_1"},
	}}
	if _, err := g.Complete(context.Background(), chat, testSpecs); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	testboil.FailTestIfDiff(t, authHeader, "Bearer test-key")
	if got["tool_choice"] != "auto" || got["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected request: %v", got)
	}

	msgs := got["messages"].([]any)
	if len(msgs) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(msgs))
	}
	if msgs[0].(map[string]any)["role"] != "system" {
		t.Fatal("expected the system message to be sent first, verbatim")
	}
	assistant := msgs[2].(map[string]any)
	if assistant["content"] != nil {
		t.Fatalf("expected null content for tool call only message, got: %v", assistant["content"])
	}
	call := assistant["tool_calls"].([]any)[0].(map[string]any)
	if call["function"].(map[string]any)["arguments"] != "{}" {
		t.Fatalf("expected empty arguments to be sent as {}, got: %v", call["function"])
	}
	tool := msgs[3].(map[string]any)
	if tool["tool_call_id"] != "call_1" || tool["content"] != "Alicia" {
		t.Fatalf("unexpected tool message: %v", tool)
	}

	toolsJSON, _ := json.Marshal(got["tools"])
	testboil.AssertStringContains(t, string(toolsJSON), `"type":"function"`)
	testboil.AssertStringContains(t, string(toolsJSON), `"parameters":{`)
}

func Test_toChatMessages_FlattensBlocks(t *testing.T) {
	msgs := []pub_models.Message{
		{Role: pub_models.RoleAssistant, Blocks: []pub_models.Block{
			pub_models.TextBlock{Text: "Let me check."},
			pub_models.ToolUseBlock{ID: "tu_1", Name: "user_name"},
		}},
		{Role: pub_models.RoleUser, Blocks: []pub_models.Block{
			pub_models.ToolResultBlock{ToolUseID: "tu_1", Content: "Alicia"},
		}},
	}
	got := toChatMessages(msgs)
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(got), got)
	}
	if *got[0].Content != "Let me check." || got[0].ToolCalls[0].ID != "tu_1" {
		t.Fatalf("unexpected assistant message: %+v", got[0])
	}
	if got[1].Role != pub_models.RoleTool || got[1].ToolCallID != "tu_1" || !strings.Contains(*got[1].Content, "Alicia") {
		t.Fatalf("unexpected tool message: %+v", got[1])
	}
}

func TestComplete_ContextCancel(t *testing.T) {
	block := make(chan struct{})
	g := newTestGpt(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(block) })
	models.Completer_Context_Test(t, g)
}
