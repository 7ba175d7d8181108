package tools

import pub_models "github.com/baalimago/tutor/pkg/text/models"

const DefaultLearnerName = "Alicia"

var userNameSpec = pub_models.Specification{
	Name:        "user_name",
	Description: "Retrieve the learner's preferred name for the conversation.",
	Inputs: &pub_models.InputSchema{
		Type:       "object",
		Required:   make([]string, 0),
		Properties: map[string]pub_models.ParameterObject{},
	},
}

// UserNameTool returns the configured name of the learner.
type UserNameTool struct {
	name string
}

// NewUserName returns a UserNameTool answering with name, or with
// DefaultLearnerName if name is empty.
func NewUserName(name string) UserNameTool {
	if name == "" {
		name = DefaultLearnerName
	}
	return UserNameTool{name: name}
}

func (u UserNameTool) Call(input pub_models.Input) (any, error) {
	return u.name, nil
}

func (u UserNameTool) Specification() pub_models.Specification {
	return userNameSpec
}
