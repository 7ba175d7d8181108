package internal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/tutor/internal/prompt"
	"github.com/baalimago/tutor/internal/tools"
	"github.com/baalimago/tutor/internal/transcript"
	"github.com/baalimago/tutor/internal/utils"
	"github.com/baalimago/tutor/pkg/agent"
	pub_models "github.com/baalimago/tutor/pkg/text/models"
	"github.com/google/uuid"
)

const noGoal = "(none provided)"

type session struct {
	command  string
	conf     Configurations
	flags    Flags
	prompts  prompt.Set
	registry *tools.Registry
	io       IO

	transcript *transcript.Writer
}

func (s *session) newAgent(meta map[string]any) (*agent.Agent, error) {
	completer, err := CreateCompleter(s.conf.Model, s.conf.BaseURL)
	if err != nil {
		return nil, err
	}
	opts := []agent.Option{
		agent.WithMaxTurns(s.conf.RunMaxTurns),
		agent.WithChatMaxTurns(s.conf.ChatMaxTurns),
		agent.WithToolOutputLimit(s.conf.ToolOutputRuneLimit),
		agent.WithVerbose(s.flags.Verbose),
		agent.WithOutputTo(s.io.Out),
		agent.WithPrompts(s.prompts),
	}
	if s.flags.SaveTranscript {
		w, err := transcript.New(s.conf.TranscriptDir, s.metadata(meta), time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to create transcript: %w", err)
		}
		s.transcript = w
		opts = append(opts, agent.WithTranscript(w))
	}
	return agent.New(completer, s.registry, opts...), nil
}

func (s *session) metadata(extra map[string]any) map[string]any {
	meta := map[string]any{
		"command":    s.command,
		"model":      s.conf.Model,
		"session_id": uuid.NewString(),
		"flags": map[string]bool{
			"verbose":         s.flags.Verbose,
			"save_transcript": s.flags.SaveTranscript,
		},
	}
	for k, v := range extra {
		if v != nil {
			meta[k] = v
		}
	}
	if commit := commitID(); commit != "" {
		meta["commit"] = commit
	}
	return meta
}

func commitID() string {
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (s *session) closeTranscript() {
	if s.transcript == nil {
		return
	}
	if err := s.transcript.Close(); err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to save transcript: %v\n", err))
		return
	}
	ancli.Okf("transcript saved to: '%v'\n", s.transcript.Path())
}

func (s *session) run(ctx context.Context) error {
	if s.flags.Goal == "" {
		return errors.New("run requires a goal, set it with -goal")
	}
	a, err := s.newAgent(map[string]any{"goal": s.flags.Goal})
	if err != nil {
		return err
	}
	defer s.closeTranscript()

	answer, err := a.Run(ctx, s.flags.Goal)
	if err != nil {
		return fmt.Errorf("failed to run agent: %w", err)
	}
	fmt.Fprintf(s.io.Out, "%v %v\n", s.label(utils.ThemePrimaryColor(), "Final answer:"), answer)
	return nil
}

func (s *session) chat(ctx context.Context) error {
	goal := s.flags.Goal
	if goal == "" {
		goal = noGoal
	}
	a, err := s.newAgent(map[string]any{"goal": goal, "mode": "interactive"})
	if err != nil {
		return err
	}
	defer s.closeTranscript()

	conv := a.StartConversation()
	fmt.Fprintln(s.io.Out, s.label(utils.ThemePrimaryColor(), "Interactive session started. Press Ctrl+C or enter nothing to exit."))
	if s.flags.Goal != "" {
		if err := s.ask(ctx, conv, s.flags.Goal); err != nil {
			return err
		}
	}

	reader := bufio.NewReader(s.io.In)
	for {
		fmt.Fprint(s.io.Out, s.label(utils.RoleColor(pub_models.RoleUser), "You> "))
		input, err := utils.ReadUserInput(ctx, reader)
		if errors.Is(err, utils.ErrUserInitiatedExit) {
			if ctx.Err() != nil {
				fmt.Fprintln(s.io.Out, "\n"+s.label(utils.ThemeSecondaryColor(), "Session interrupted by user."))
			} else {
				fmt.Fprintln(s.io.Out, s.label(utils.ThemeSecondaryColor(), "Ending session."))
			}
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.ask(ctx, conv, input); err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(s.io.Out, "\n"+s.label(utils.ThemeSecondaryColor(), "Session interrupted by user."))
				return nil
			}
			return err
		}
	}
}

func (s *session) ask(ctx context.Context, conv *agent.Conversation, input string) error {
	answer, err := conv.Ask(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to ask agent: %w", err)
	}
	if s.flags.PrintRaw {
		fmt.Fprintf(s.io.Out, "Agent: %v\n", answer)
		return nil
	}
	return utils.AttemptPrettyPrint(s.io.Out, pub_models.Message{
		Role:    pub_models.RoleAssistant,
		Content: answer,
	}, "You", false)
}

func (s *session) label(color, text string) string {
	if s.flags.PrintRaw {
		return text
	}
	return utils.Colorize(color, text)
}
