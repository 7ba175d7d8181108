package utils

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// Theme holds ANSI color configuration for terminal output.
// Values are raw ANSI escape sequences (e.g. "\u001b[38;2;120;140;160m").
//
// Loaded from <tutor-config-dir>/theme.json on startup. If NO_COLOR is set
// truthy, all colorization is disabled.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Breadtext string `json:"breadtext"`

	RoleSystem    string `json:"roleSystem"`
	RoleUser      string `json:"roleUser"`
	RoleAssistant string `json:"roleAssistant"`
	RoleTool      string `json:"roleTool"`
	RoleOther     string `json:"roleOther"`
}

func defaultTheme() *Theme {
	// Muted gray-blue palette.
	return &Theme{
		Primary:   "\u001b[38;2;110;130;150m",
		Secondary: "\u001b[38;2;140;165;190m",
		Breadtext: "\u001b[38;2;200;210;220m",

		RoleSystem:    "\u001b[34m",
		RoleUser:      "\u001b[36m",
		RoleAssistant: "\u001b[32m",
		RoleTool:      "\u001b[35m",
		RoleOther:     "\u001b[34m",
	}
}

var globalTheme = *defaultTheme()

// LoadTheme loads (and possibly creates) the theme.json file within the config dir.
func LoadTheme(configDirPath string) error {
	conf, err := LoadConfigFromFile(configDirPath, "theme.json", defaultTheme())
	if err != nil {
		return fmt.Errorf("load theme config: %w", err)
	}
	globalTheme = conf
	return nil
}

// NoColor reports whether color output should be disabled.
func NoColor() bool {
	return misc.Truthy(os.Getenv("NO_COLOR"))
}

const ansiReset = "\u001b[0m"

// Colorize wraps s with the given ANSI color code unless NO_COLOR is set or color is empty.
func Colorize(color, s string) string {
	if NoColor() || color == "" {
		return s
	}
	return color + s + ansiReset
}

// RoleColor returns the theme color for a chat role.
func RoleColor(role string) string {
	switch role {
	case pub_models.RoleTool:
		return globalTheme.RoleTool
	case pub_models.RoleUser:
		return globalTheme.RoleUser
	case pub_models.RoleAssistant:
		return globalTheme.RoleAssistant
	case pub_models.RoleSystem:
		return globalTheme.RoleSystem
	default:
		return globalTheme.RoleOther
	}
}

func ThemePrimaryColor() string   { return globalTheme.Primary }
func ThemeSecondaryColor() string { return globalTheme.Secondary }
func ThemeBreadtextColor() string { return globalTheme.Breadtext }
