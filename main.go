package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/tutor/internal"
	"github.com/baalimago/tutor/internal/utils"
)

const usage = `tutor - a language-learning tutor agent which uses tools to personalise lessons

Prerequisites:
  - Set the OPENAI_API_KEY environment variable to your OpenAI API key
  - Set the ANTHROPIC_API_KEY environment variable to your Anthropic API key, for 'claude' models
  - (Optional) Set the NO_COLOR environment variable to disable ansi color output
  - (Optional) Install glow - https://github.com/charmbracelet/glow for formatted markdown output

Usage: tutor <command> [flags]

Commands:
  r|run -goal <text>             Run the agent until it produces a final answer for the goal
  c|chat [-goal <text>]          Start an interactive session, enter nothing to exit
  validate                       Validate that the echo tool is callable, no model involved
  t|tools [<tool-name>]          List registered tools, or show the specification of one
  h|help                         Display this help message
  v|version                      Display the version

Flags (run, chat):
  -g, -goal string               Set the learning objective
  -m, -model string              Set the model to use. Models containing 'claude' use Anthropic,
                                 'test' echoes the input. (default is found in tutorConfig.json)
  -v, -verbose bool              Show intermediate requests, responses and tool calls
  -st, -save-transcript bool     Persist the conversation transcript to disk
  -r, -raw bool                  Print raw output (no colors, no glow)

Config:
  <config-dir>/.tutor/tutorConfig.json, override the dir with TUTOR_CONFIG_DIR.
  Prompts are read from prompts.toml within the config dir, with the keys 'system' and 'goal'.

Examples:
  - tutor run -goal "Spanish: ser vs estar"
  - tutor chat -m claude-3-5-sonnet-latest -goal "French passé composé" -st
  - tutor tools mistakes_search
`

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { shutdown.Monitor(cancel) }()

	err := internal.Run(ctx, args, usage, internal.IO{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	})
	if err != nil {
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			ancli.Okf("Seems like you wanted out. Byebye!\n")
			return 0
		}
		ancli.PrintErr(fmt.Sprintf("failed to run: %v\n", err))
		return 1
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK("things seems to have worked out. Bye bye! 🚀\n")
	}
	return 0
}
