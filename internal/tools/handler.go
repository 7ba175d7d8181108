package tools

import (
	"github.com/baalimago/tutor/pkg/tools"
)

// NewDefault returns a registry holding every tutor tool. Both mistake tools
// share the given store.
func NewDefault(store *tools.MistakeStore, learnerName string) *Registry {
	return NewRegistry(
		tools.NewMistakesSearch(store),
		tools.NewMistakesStore(store),
		tools.NewUserName(learnerName),
		tools.Echo,
		tools.WebsiteText,
	)
}
