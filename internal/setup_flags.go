package internal

import (
	"flag"
	"fmt"
	"io"

	"github.com/baalimago/tutor/internal/utils"
)

// Flags of the run and chat commands.
type Flags struct {
	Goal           string
	Model          string
	Verbose        bool
	SaveTranscript bool
	PrintRaw       bool
}

var defaultFlags = Flags{}

// parseFlags parses the flags following a command. Short and long forms of
// a string flag are mutually exclusive.
func parseFlags(cmd string, defaults Flags, args []string, errOut io.Writer) (Flags, []string, error) {
	fs := flag.NewFlagSet("tutor "+cmd, flag.ContinueOnError)
	fs.SetOutput(errOut)

	gShort := fs.String("g", defaults.Goal, "Set the learning objective. Mutually exclusive with goal flag.")
	gLong := fs.String("goal", defaults.Goal, "Set the learning objective. Mutually exclusive with g flag.")

	mShort := fs.String("m", defaults.Model, "Set the model to use. Mutually exclusive with model flag.")
	mLong := fs.String("model", defaults.Model, "Set the model to use. Mutually exclusive with m flag.")

	verboseShort := fs.Bool("v", defaults.Verbose, "Set to true to show intermediate requests, responses and tool calls.")
	verboseLong := fs.Bool("verbose", defaults.Verbose, "Set to true to show intermediate requests, responses and tool calls.")

	stShort := fs.Bool("st", defaults.SaveTranscript, "Set to true to persist the conversation transcript to disk.")
	stLong := fs.Bool("save-transcript", defaults.SaveTranscript, "Set to true to persist the conversation transcript to disk.")

	printRawShort := fs.Bool("r", defaults.PrintRaw, "Set to true to print raw output (don't attempt to use 'glow').")
	printRawLong := fs.Bool("raw", defaults.PrintRaw, "Set to true to print raw output (don't attempt to use 'glow').")

	err := fs.Parse(args)
	if err != nil {
		return Flags{}, nil, fmt.Errorf("failed to parse args: %w", err)
	}

	goal, err := utils.ReturnNonDefault(*gShort, *gLong, defaults.Goal)
	if err != nil {
		return Flags{}, nil, flagError(err, "g", "goal")
	}
	model, err := utils.ReturnNonDefault(*mShort, *mLong, defaults.Model)
	if err != nil {
		return Flags{}, nil, flagError(err, "m", "model")
	}

	return Flags{
		Goal:           goal,
		Model:          model,
		Verbose:        *verboseShort || *verboseLong,
		SaveTranscript: *stShort || *stLong,
		PrintRaw:       *printRawShort || *printRawLong,
	}, fs.Args(), nil
}

func flagError(err error, shortFlag, longFlag string) error {
	return fmt.Errorf("flags: '%v' and '%v': %w", shortFlag, longFlag, err)
}

// applyFlagOverrides sets the values of the flags which differ from the
// default flags, keeping the convention flags > file > default.
func applyFlagOverrides(conf *Configurations, flagSet, defaultFlags Flags) {
	if flagSet.Model != defaultFlags.Model {
		conf.Model = flagSet.Model
	}
}
