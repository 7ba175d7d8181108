package tools

import (
	"fmt"
	"strings"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

const (
	defaultSearchLimit = 5
	noMistakesFound    = "No mistakes found."
)

var (
	minSearchLimit = 1.0
	maxSearchLimit = 20.0
)

var mistakesSearchSpec = pub_models.Specification{
	Name:        "mistakes_search",
	Description: "Search for similar concepts the user has made mistakes with in the past.",
	Inputs: &pub_models.InputSchema{
		Type: "object",
		Properties: map[string]pub_models.ParameterObject{
			"topic": {
				Type:        "string",
				Description: "Optional topic filter. Return all mistakes if omitted.",
			},
			"limit": {
				Type:        "integer",
				Description: "Maximum number of mistakes to return.",
				Minimum:     &minSearchLimit,
				Maximum:     &maxSearchLimit,
				Default:     defaultSearchLimit,
			},
		},
		Required: []string{},
	},
}

// MistakesSearchTool lists stored mistakes, optionally filtered by topic.
type MistakesSearchTool struct {
	store *MistakeStore
}

func NewMistakesSearch(store *MistakeStore) MistakesSearchTool {
	return MistakesSearchTool{store: store}
}

func (m MistakesSearchTool) Call(input pub_models.Input) (any, error) {
	topic := ""
	if t, exists := input["topic"]; exists {
		str, ok := t.(string)
		if !ok {
			return "", fmt.Errorf("topic must be a string")
		}
		topic = str
	}
	limit := defaultSearchLimit
	if _, exists := input["limit"]; exists {
		l, err := intInput(input, "limit")
		if err != nil {
			return "", err
		}
		limit = l
	}

	matches := m.store.Search(topic, limit)
	if len(matches) == 0 {
		return noMistakesFound, nil
	}
	lines := make([]string, 0, len(matches))
	for _, rec := range matches {
		lines = append(lines, fmt.Sprintf("- %v: %v", rec.Topic, rec.Detail))
	}
	return strings.Join(lines, "\n"), nil
}

func (m MistakesSearchTool) Specification() pub_models.Specification {
	return mistakesSearchSpec
}
