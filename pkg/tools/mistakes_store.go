package tools

import (
	"fmt"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

var mistakesStoreSpec = pub_models.Specification{
	Name:        "mistakes_store",
	Description: "Store a mistake or concept the user has evidently struggled with for later retrieval.",
	Inputs: &pub_models.InputSchema{
		Type: "object",
		Properties: map[string]pub_models.ParameterObject{
			"topic": {
				Type:        "string",
				Description: "Subject area for the learner mistake.",
			},
			"detail": {
				Type:        "string",
				Description: "Description of what went wrong.",
			},
		},
		Required: []string{"topic", "detail"},
	},
}

// MistakesStoreTool appends a mistake to its store.
type MistakesStoreTool struct {
	store *MistakeStore
}

func NewMistakesStore(store *MistakeStore) MistakesStoreTool {
	return MistakesStoreTool{store: store}
}

func (m MistakesStoreTool) Call(input pub_models.Input) (any, error) {
	topic, ok := input["topic"].(string)
	if !ok {
		return "", fmt.Errorf("topic must be a string")
	}
	detail, ok := input["detail"].(string)
	if !ok {
		return "", fmt.Errorf("detail must be a string")
	}
	m.store.Add(MistakeRecord{Topic: topic, Detail: detail})
	return fmt.Sprintf("Stored mistake for topic '%v'.", topic), nil
}

func (m MistakesStoreTool) Specification() pub_models.Specification {
	return mistakesStoreSpec
}
