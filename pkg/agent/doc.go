// agent runs a tutor: a control loop which asks a model for a reply,
// invokes the tools the model requests and feeds the results back, until the
// model answers without requesting any more tools.
//
// The loop is backend agnostic. It sees only the normalized completions of a
// models.Completer, and lets the completer shape the tool results into the
// turns its protocol expects.
package agent
