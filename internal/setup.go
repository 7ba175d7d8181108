package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/tutor/internal/prompt"
	"github.com/baalimago/tutor/internal/tools"
	"github.com/baalimago/tutor/internal/utils"
	pub_tools "github.com/baalimago/tutor/pkg/tools"
)

const configFileName = "tutorConfig.json"

// Configurations found in tutorConfig.json within the config dir.
type Configurations struct {
	Model               string `json:"model"`
	RunMaxTurns         int    `json:"runMaxTurns"`
	ChatMaxTurns        int    `json:"chatMaxTurns"`
	TranscriptDir       string `json:"transcriptDir"`
	LearnerName         string `json:"learnerName"`
	PromptFile          string `json:"promptFile"`
	BaseURL             string `json:"baseURL"`
	ToolOutputRuneLimit int    `json:"toolOutputRuneLimit"`
}

var DEFAULT = Configurations{
	Model:         "gpt-4o-mini",
	RunMaxTurns:   15,
	ChatMaxTurns:  6,
	TranscriptDir: "transcripts",
	LearnerName:   pub_tools.DefaultLearnerName,
	PromptFile:    "prompts.toml",
}

type Mode int

const (
	HELP Mode = iota
	RUN
	CHAT
	VALIDATE
	TOOLS
	VERSION
)

func (m Mode) String() string {
	switch m {
	case RUN:
		return "run"
	case CHAT:
		return "chat"
	case VALIDATE:
		return "validate"
	case TOOLS:
		return "tools"
	case VERSION:
		return "version"
	}
	return "help"
}

func getModeFromArgs(cmd string) (Mode, error) {
	switch cmd {
	case "run", "r":
		return RUN, nil
	case "chat", "c":
		return CHAT, nil
	case "validate":
		return VALIDATE, nil
	case "tools", "t":
		return TOOLS, nil
	case "help", "h":
		return HELP, nil
	case "version", "v":
		return VERSION, nil
	default:
		return HELP, fmt.Errorf("unknown command: '%s'", cmd)
	}
}

// IO of a command.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run the command found in args. A normal exit, such as the user leaving a
// chat, returns nil.
func Run(ctx context.Context, args []string, usage string, cio IO) error {
	if len(args) == 0 {
		fmt.Fprint(cio.Out, usage)
		return nil
	}
	mode, err := getModeFromArgs(args[0])
	if err != nil {
		return err
	}

	switch mode {
	case HELP:
		fmt.Fprint(cio.Out, usage)
		return nil
	case VERSION:
		return printVersion(cio.Out)
	}

	confDir, err := utils.GetTutorConfigDir()
	if err != nil {
		return fmt.Errorf("failed to find config dir: %w", err)
	}
	conf, err := utils.LoadConfigFromFile(confDir, configFileName, &DEFAULT)
	if err != nil {
		return fmt.Errorf("failed to load configs: %w", err)
	}
	if err := utils.LoadTheme(confDir); err != nil && misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintWarn(fmt.Sprintf("failed to load theme, using default: %v\n", err))
	}

	store := pub_tools.NewMistakeStore()
	registry := tools.NewDefault(store, conf.LearnerName)

	switch mode {
	case TOOLS:
		return tools.SubCmd(cio.Out, registry, args[1:])
	case VALIDATE:
		return validateEcho(cio.Out, registry)
	case RUN, CHAT:
		flagSet, _, err := parseFlags(mode.String(), defaultFlags, args[1:], cio.Err)
		if err != nil {
			return err
		}
		applyFlagOverrides(&conf, flagSet, defaultFlags)
		prompts, err := prompt.LoadOrDefault(resolvePath(confDir, conf.PromptFile))
		if err != nil {
			return fmt.Errorf("failed to load prompts: %w", err)
		}
		s := session{
			command:  mode.String(),
			conf:     conf,
			flags:    flagSet,
			prompts:  prompts,
			registry: registry,
			io:       cio,
		}
		if mode == RUN {
			return s.run(ctx)
		}
		return s.chat(ctx)
	}
	return errors.New("unexpected conditional: how did you end up here?")
}

// resolvePath joins relative paths with the config dir.
func resolvePath(confDir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(confDir, p)
}
