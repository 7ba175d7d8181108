package agent

import (
	"io"
	"os"
	"time"

	"github.com/baalimago/tutor/internal/models"
	"github.com/baalimago/tutor/internal/prompt"
	"github.com/baalimago/tutor/internal/tools"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
	"github.com/google/uuid"
)

const (
	DefaultMaxTurns     = 15
	DefaultChatMaxTurns = 6
)

// Sink records the session. It's implemented by *transcript.Writer.
type Sink interface {
	LogUser(text string)
	LogAgent(text string)
	LogToolCall(name, args string)
	LogToolResult(callID, result string)
}

type Agent struct {
	completer models.Completer
	registry  *tools.Registry
	prompts   prompt.Set

	maxTurns            int
	chatMaxTurns        int
	toolOutputRuneLimit int
	verbose             bool
	out                 io.Writer
	transcript          Sink
}

type Option func(*Agent)

func New(completer models.Completer, registry *tools.Registry, options ...Option) *Agent {
	a := &Agent{
		completer:    completer,
		registry:     registry,
		prompts:      prompt.Default(),
		maxTurns:     DefaultMaxTurns,
		chatMaxTurns: DefaultChatMaxTurns,
		out:          os.Stdout,
	}
	if a.registry == nil {
		a.registry = tools.NewRegistry()
	}
	for _, o := range options {
		o(a)
	}
	return a
}

// WithMaxTurns sets the turn budget of Run. Values below 1 are ignored.
func WithMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxTurns = n
		}
	}
}

// WithChatMaxTurns sets the turn budget of Conversation.Ask. Values below 1
// are ignored.
func WithChatMaxTurns(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.chatMaxTurns = n
		}
	}
}

// WithToolOutputLimit truncates tool results longer than limit runes. Zero
// disables truncation.
func WithToolOutputLimit(limit int) Option {
	return func(a *Agent) {
		a.toolOutputRuneLimit = limit
	}
}

// WithVerbose prints every request, response and tool call to the output.
func WithVerbose(verbose bool) Option {
	return func(a *Agent) {
		a.verbose = verbose
	}
}

func WithOutputTo(out io.Writer) Option {
	return func(a *Agent) {
		a.out = out
	}
}

func WithPrompts(p prompt.Set) Option {
	return func(a *Agent) {
		a.prompts = p
	}
}

func WithTranscript(s Sink) Option {
	return func(a *Agent) {
		a.transcript = s
	}
}

// StartConversation seeds a new conversation with the system prompt.
func (a *Agent) StartConversation() *Conversation {
	now := time.Now()
	c := &Conversation{
		agent: a,
		chat: pub_models.Chat{
			Created: now,
			ID:      uuid.NewString(),
			Messages: []pub_models.Message{
				{Role: pub_models.RoleSystem, Content: a.prompts.System},
			},
		},
	}
	if a.verbose {
		a.printSection("Tool definitions provided to the model:", map[string]any{
			"tools": a.registry.Specifications(),
		})
	}
	return c
}
