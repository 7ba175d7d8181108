package agent

import (
	"context"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Conversation holds the growing chat of one tutoring session. The first
// user input is wrapped in the goal template, later inputs are sent as is.
// A Conversation is not safe for concurrent use.
type Conversation struct {
	agent          *Agent
	chat           pub_models.Chat
	hasPrimaryGoal bool
}

// Run a single conversation for the goal, with the budget of WithMaxTurns.
func (a *Agent) Run(ctx context.Context, goal string) (string, error) {
	return a.StartConversation().AskWithBudget(ctx, goal, a.maxTurns)
}

// Ask the tutor, with the budget of WithChatMaxTurns.
func (c *Conversation) Ask(ctx context.Context, input string) (string, error) {
	return c.AskWithBudget(ctx, input, c.agent.chatMaxTurns)
}

// AskWithBudget appends the input as a user turn and runs the loop for at
// most maxTurns model requests.
func (c *Conversation) AskWithBudget(ctx context.Context, input string, maxTurns int) (string, error) {
	content := input
	if !c.hasPrimaryGoal {
		content = c.agent.prompts.Wrap(input)
		c.hasPrimaryGoal = true
	}
	c.chat.Append(pub_models.Message{Role: pub_models.RoleUser, Content: content})
	if c.agent.transcript != nil {
		c.agent.transcript.LogUser(input)
	}
	return c.loop(ctx, maxTurns)
}

// ID of the chat backing the conversation.
func (c *Conversation) ID() string {
	return c.chat.ID
}

// Messages returns a copy of the turns so far.
func (c *Conversation) Messages() []pub_models.Message {
	ret := make([]pub_models.Message, len(c.chat.Messages))
	copy(ret, c.chat.Messages)
	return ret
}
