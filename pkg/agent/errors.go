package agent

import "errors"

// ErrLoopExceeded is returned when the model keeps requesting tools after
// the turn budget is spent.
var ErrLoopExceeded = errors.New("agent exceeded maximum number of turns without producing a final answer")
