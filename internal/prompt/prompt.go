package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// GoalPlaceholder is replaced by the learner's goal in the goal template.
const GoalPlaceholder = "{goal}"

var ErrMissingPlaceholder = errors.New("goal template is missing the '{goal}' placeholder")

// Set is the instruction set of a tutor. System seeds every conversation,
// Goal wraps the first user turn.
type Set struct {
	System string `toml:"system"`
	Goal   string `toml:"goal"`
}

// Default returns the built-in instruction set.
func Default() Set {
	return Set{
		System: systemPrompt,
		Goal:   goalPrompt,
	}
}

// Wrap the goal into the goal template.
func (s Set) Wrap(goal string) string {
	return strings.ReplaceAll(s.Goal, GoalPlaceholder, goal)
}

// Validate the set. An empty system prompt is allowed, a goal template
// without placeholder is not since the goal would be dropped silently.
func (s Set) Validate() error {
	if !strings.Contains(s.Goal, GoalPlaceholder) {
		return ErrMissingPlaceholder
	}
	return nil
}

// Load a set from a toml file with the keys 'system' and 'goal'. Keys absent
// from the file keep the built-in value.
func Load(path string) (Set, error) {
	ret := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read prompt file: %w", err)
	}
	md, err := toml.Decode(string(b), &ret)
	if err != nil {
		return Set{}, fmt.Errorf("failed to decode prompt file: '%v': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Set{}, fmt.Errorf("unknown keys in prompt file: '%v': %v", path, undecoded)
	}
	if err := ret.Validate(); err != nil {
		return Set{}, fmt.Errorf("invalid prompt file: '%v': %w", path, err)
	}
	return ret, nil
}

// LoadOrDefault loads the set at path, or returns the built-in set if path
// is empty or the file doesn't exist.
func LoadOrDefault(path string) (Set, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}
