package tools

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

type mockLLMTool struct {
	spec  pub_models.Specification
	out   any
	err   error
	calls int
	last  pub_models.Input
}

func (m *mockLLMTool) Call(input pub_models.Input) (any, error) {
	m.calls++
	m.last = input
	return m.out, m.err
}

func (m *mockLLMTool) Specification() pub_models.Specification {
	return m.spec
}

func newMockTool(name string) *mockLLMTool {
	return &mockLLMTool{
		spec: pub_models.Specification{Name: name},
		out:  "mock output",
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.tools == nil {
		t.Error("registry.tools is nil")
	}
	if len(r.tools) != 0 {
		t.Errorf("expected empty registry, got %d tools", len(r.tools))
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	tool := newMockTool("test-tool")

	r.Register(tool)

	if len(r.tools) != 1 {
		t.Errorf("expected 1 tool, got %d", len(r.tools))
	}
	stored, ok := r.tools["test-tool"]
	if !ok {
		t.Fatal("tool not found in registry")
	}
	if stored != tool {
		t.Error("stored tool doesn't match original")
	}
}

func TestRegistry_LastRegistrationWins(t *testing.T) {
	first := newMockTool("dup")
	first.out = "first"
	second := newMockTool("dup")
	second.out = "second"
	r := NewRegistry(newMockTool("a"), first, newMockTool("b"), second)

	got, err := r.Invoke("dup", pub_models.Input{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "second" {
		t.Fatalf("expected 'second', got: %q", got)
	}
	if first.calls != 0 {
		t.Fatal("overwritten tool should never be called")
	}
	names := make([]string, 0)
	for _, info := range r.DescribeAll() {
		names = append(names, info.Name)
	}
	if got := strings.Join(names, ", "); got != "a, dup, b" {
		t.Fatalf("expected order of first registration, got: %q", got)
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	tool := newMockTool("test")
	r.Register(tool)

	got, ok := r.Get("test")
	if !ok {
		t.Error("Get() returned false for existing tool")
	}
	if got != tool {
		t.Error("Get() returned wrong tool")
	}

	_, ok = r.Get("nonexistent")
	if ok {
		t.Error("Get() returned true for non-existent tool")
	}
}

func TestRegistry_DescribeAll(t *testing.T) {
	b := newMockTool("b")
	b.spec.Description = "second"
	a := newMockTool("a")
	a.spec.Description = "first"
	r := NewRegistry(b, a)

	got := r.DescribeAll()
	want := []ToolInfo{{Name: "b", Description: "second"}, {Name: "a", Description: "first"}}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestRegistry_Invoke(t *testing.T) {
	t.Run("unknown tool", func(t *testing.T) {
		r := NewRegistry()
		_, err := r.Invoke("nope", pub_models.Input{})
		if !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("expected ErrToolNotFound, got: %v", err)
		}
	})

	t.Run("missing required field never runs tool", func(t *testing.T) {
		tool := newMockTool("mistakes_store")
		tool.spec.Inputs = &pub_models.InputSchema{
			Type:     "object",
			Required: []string{"topic", "detail"},
			Properties: map[string]pub_models.ParameterObject{
				"topic":  {Type: "string"},
				"detail": {Type: "string"},
			},
		}
		r := NewRegistry(tool)

		_, err := r.Invoke("mistakes_store", pub_models.Input{"topic": "x"})
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected ValidationError, got: %v", err)
		}
		if tool.calls != 0 {
			t.Fatal("tool body ran on invalid input")
		}
		if valErr.Tool != "mistakes_store" {
			t.Fatalf("expected tool name in error, got: %q", valErr.Tool)
		}
		if len(valErr.FieldsMissing) != 1 || valErr.FieldsMissing[0] != "detail" {
			t.Fatalf("expected 'detail' missing, got: %v", valErr.FieldsMissing)
		}
	})

	t.Run("execution error is wrapped", func(t *testing.T) {
		tool := newMockTool("broken")
		tool.err = errors.New("boom")
		r := NewRegistry(tool)

		_, err := r.Invoke("broken", pub_models.Input{})
		var execErr *ExecutionError
		if !errors.As(err, &execErr) {
			t.Fatalf("expected ExecutionError, got: %v", err)
		}
		if !errors.Is(err, tool.err) {
			t.Fatal("expected the tool error to be unwrappable")
		}
		if err.Error() != "tool 'broken': boom" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})

	t.Run("non string result is json encoded", func(t *testing.T) {
		tool := newMockTool("structured")
		tool.out = map[string]any{"b": 2, "a": 1}
		r := NewRegistry(tool)

		got, err := r.Invoke("structured", pub_models.Input{})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != `{"a":1,"b":2}` {
			t.Fatalf("unexpected result: %q", got)
		}
	})

	t.Run("stringer result is used as is", func(t *testing.T) {
		tool := newMockTool("stringer")
		tool.out = stringerOut("hello")
		r := NewRegistry(tool)

		got, err := r.Invoke("stringer", pub_models.Input{})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != "hello" {
			t.Fatalf("unexpected result: %q", got)
		}
	})

	t.Run("defaults are applied on a copy", func(t *testing.T) {
		tool := newMockTool("search")
		tool.spec.Inputs = &pub_models.InputSchema{
			Type: "object",
			Properties: map[string]pub_models.ParameterObject{
				"limit": {Type: "integer", Default: 5},
			},
		}
		r := NewRegistry(tool)
		in := pub_models.Input{}

		if _, err := r.Invoke("search", in); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if tool.last["limit"] != 5 {
			t.Fatalf("expected default limit 5, got: %v", tool.last["limit"])
		}
		if _, exists := in["limit"]; exists {
			t.Fatal("caller input was mutated")
		}
	})
}

type stringerOut string

func (s stringerOut) String() string { return string(s) }

func TestRegistry_Specifications(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 3; i++ {
		r.Register(newMockTool(fmt.Sprintf("tool_%d", i)))
	}
	specs := r.Specifications()
	for i, s := range specs {
		if want := fmt.Sprintf("tool_%d", i); s.Name != want {
			t.Errorf("expected %v at index %d, got: %v", want, i, s.Name)
		}
	}
}
