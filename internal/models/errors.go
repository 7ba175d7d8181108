package models

import (
	"fmt"
	"time"
)

// MalformedResponseError is returned when a backend reply can't be parsed,
// such as tool call arguments which aren't a JSON object.
type MalformedResponseError struct {
	CallID string
	Tool   string
	Raw    string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("malformed response: %v", e.Err)
	}
	return fmt.Sprintf("malformed arguments for tool '%v' (call id: '%v'): %v, raw: %q", e.Tool, e.CallID, e.Err, e.Raw)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ErrRateLimit is returned when the backend refuses a request due to rate
// limiting.
type ErrRateLimit struct {
	ResetAt         time.Time
	TokensRemaining int
	Body            string
}

func NewRateLimitError(resetAt time.Time, tokensRemaining int, body string) error {
	return &ErrRateLimit{
		ResetAt:         resetAt,
		TokensRemaining: tokensRemaining,
		Body:            body,
	}
}

func (erl *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited, reset at: %v, tokens remaining: %v, body: %v", erl.ResetAt, erl.TokensRemaining, erl.Body)
}
