package text

import (
	"context"
	"errors"
	"fmt"

	"github.com/baalimago/tutor/internal"
	"github.com/baalimago/tutor/internal/tools"
	"github.com/baalimago/tutor/pkg/agent"
	"github.com/baalimago/tutor/pkg/text/models"
	pub_tools "github.com/baalimago/tutor/pkg/tools"
)

// FullResponse text querier, as opposed to returning a stream or something
type FullResponse interface {
	Setup(context.Context) error

	// Query the tutor with the last user message of the chat. The returned
	// chat has the final answer appended. Will cancel on context cancel.
	Query(context.Context, models.Chat) (models.Chat, error)
}

type publicQuerier struct {
	model       string
	learnerName string
	maxTurns    int
	llmTools    []models.LLMTool
	store       *pub_tools.MistakeStore

	agent *agent.Agent
}

// Option configures a publicQuerier.
type Option func(*publicQuerier)

func WithModel(model string) Option {
	return func(pq *publicQuerier) {
		pq.model = model
	}
}

func WithLearnerName(name string) Option {
	return func(pq *publicQuerier) {
		pq.learnerName = name
	}
}

func WithMaxTurns(n int) Option {
	return func(pq *publicQuerier) {
		pq.maxTurns = n
	}
}

// WithMistakeStore shares a mistake store between queriers. Each querier has
// its own store otherwise.
func WithMistakeStore(store *pub_tools.MistakeStore) Option {
	return func(pq *publicQuerier) {
		pq.store = store
	}
}

// WithLLMTools injects tools which are registered after the built-in tools.
// A tool with the name of a built-in tool replaces it.
func WithLLMTools(tools ...models.LLMTool) Option {
	return func(pq *publicQuerier) {
		pq.llmTools = append(pq.llmTools, tools...)
	}
}

// NewFullResponseQuerier constructs a FullResponse using the default
// model 'gpt-4o-mini' plus optional functional options.
func NewFullResponseQuerier(opts ...Option) FullResponse {
	pq := &publicQuerier{
		model:       internal.DEFAULT.Model,
		learnerName: internal.DEFAULT.LearnerName,
		maxTurns:    internal.DEFAULT.RunMaxTurns,
	}
	for _, opt := range opts {
		opt(pq)
	}
	if pq.store == nil {
		pq.store = pub_tools.NewMistakeStore()
	}
	return pq
}

func (pq *publicQuerier) Setup(ctx context.Context) error {
	completer, err := internal.CreateCompleter(pq.model, "")
	if err != nil {
		return fmt.Errorf("publicQuerier.Setup failed to CreateCompleter: %w", err)
	}
	registry := tools.NewDefault(pq.store, pq.learnerName)
	for _, t := range pq.llmTools {
		registry.Register(t)
	}
	pq.agent = agent.New(completer, registry, agent.WithMaxTurns(pq.maxTurns))
	return nil
}

func (pq *publicQuerier) Query(ctx context.Context, chat models.Chat) (models.Chat, error) {
	if pq.agent == nil {
		if err := pq.Setup(ctx); err != nil {
			return models.Chat{}, err
		}
	}
	msg, _, err := chat.LastOfRole(models.RoleUser)
	if err != nil {
		return models.Chat{}, errors.New("chat has no user message to query with")
	}
	answer, err := pq.agent.Run(ctx, msg.Text())
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to run tutor: %w", err)
	}
	msgs := make([]models.Message, len(chat.Messages), len(chat.Messages)+1)
	copy(msgs, chat.Messages)
	chat.Messages = msgs
	chat.Append(models.Message{Role: models.RoleAssistant, Content: answer})
	return chat, nil
}
