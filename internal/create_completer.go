package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/tutor/internal/models"
	"github.com/baalimago/tutor/internal/vendors"
	"github.com/baalimago/tutor/internal/vendors/anthropic"
	"github.com/baalimago/tutor/internal/vendors/openai"
)

// selectCompleter by checking the model for which vendor to use. Models
// containing 'claude' speak in content blocks, 'test' is the echo mock and
// everything else uses flat tool calls.
func selectCompleter(model, baseURL string) models.Completer {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("selecting completer for model: '%v'\n", model))
	}
	switch {
	case model == "test":
		return &vendors.Mock{}
	case strings.Contains(model, "claude"):
		c := anthropic.ClaudeDefault
		c.Model = model
		if baseURL != "" {
			c.Url = baseURL
		}
		return &c
	default:
		g := openai.GptDefault
		g.Model = model
		if baseURL != "" {
			g.URL = baseURL
		}
		return &g
	}
}

// CreateCompleter selects and sets up the completer of the model. Setup
// fails before any request is sent if credentials are missing.
func CreateCompleter(model, baseURL string) (models.Completer, error) {
	c := selectCompleter(model, baseURL)
	if err := c.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup completer for model '%v': %w", model, err)
	}
	return c, nil
}
