package utils

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
)

// AttemptPrettyPrint by first checking if the glow command is available, and if so, pretty print the chat message
// if not found, print the message prefixed with the themed role
func AttemptPrettyPrint(w io.Writer, chatMessage pub_models.Message, username string, raw bool) error {
	content := chatMessage.Text()
	if raw {
		_, err := fmt.Fprintln(w, content)
		return err
	}
	role := chatMessage.Role
	if role == pub_models.RoleUser {
		role = username
	}
	prefix := Colorize(RoleColor(chatMessage.Role), role)
	if err := exec.Command("glow", "--version").Run(); err != nil {
		_, err := fmt.Fprintf(w, "%v: %v\n", prefix, Colorize(ThemeBreadtextColor(), content))
		return err
	}

	cmd := exec.Command("glow")
	cmd.Stdin = bytes.NewBufferString(content)
	cmd.Stdout = w
	fmt.Fprintf(w, "%v:", prefix)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run glow: %w", err)
	}
	return nil
}
