package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Registry maps tool names to LLMTools. Registering a name twice overwrites
// the earlier tool, while listings keep the order of first registration.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]pub_models.LLMTool
	order []string
	debug bool
}

// NewRegistry returns a registry holding the given tools.
func NewRegistry(tools ...pub_models.LLMTool) *Registry {
	r := &Registry{
		tools: make(map[string]pub_models.LLMTool),
		debug: misc.Truthy(os.Getenv("DEBUG")),
	}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register the tool under the name of its specification.
func (r *Registry) Register(t pub_models.LLMTool) {
	name := t.Specification().Name
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.debug {
		ancli.Okf("adding tool to registry, name: %v\n", name)
	}
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (pub_models.LLMTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// DescribeAll lists name and description of every tool in registration order.
func (r *Registry) DescribeAll() []ToolInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, ToolInfo{
			Name:        name,
			Description: r.tools[name].Specification().Description,
		})
	}
	return ret
}

// Specifications of every tool in registration order.
func (r *Registry) Specifications() []pub_models.Specification {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ret := make([]pub_models.Specification, 0, len(r.order))
	for _, name := range r.order {
		ret = append(ret, r.tools[name].Specification())
	}
	return ret
}

// Invoke the tool registered under name. The input is validated against the
// tool's input schema before the tool is called, so invalid input never
// reaches the tool. Non-string results are encoded as JSON.
func (r *Registry) Invoke(name string, input pub_models.Input) (string, error) {
	t, exists := r.Get(name)
	if !exists {
		return "", fmt.Errorf("%w: '%v'", ErrToolNotFound, name)
	}
	if r.debug || misc.Truthy(os.Getenv("DEBUG_CALL")) {
		ancli.Noticef("invoke tool: %v, input: %v", name, debug.IndentedJsonFmt(input))
	}
	validated, err := Validate(t.Specification(), input)
	if err != nil {
		return "", err
	}
	out, err := t.Call(validated)
	if err != nil {
		return "", &ExecutionError{Tool: name, Err: err}
	}
	str, err := stringify(out)
	if err != nil {
		return "", &ExecutionError{Tool: name, Err: err}
	}
	return str, nil
}

func stringify(out any) (string, error) {
	switch cast := out.(type) {
	case string:
		return cast, nil
	case fmt.Stringer:
		return cast.String(), nil
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to encode tool result: %w", err)
	}
	return string(b), nil
}
