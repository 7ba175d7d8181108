package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

type readResult struct {
	line string
	err  error
}

// ReadUserInput reads one line from r. An empty line, EOF, one of the quit
// words or a cancelled context all return ErrUserInitiatedExit.
func ReadUserInput(ctx context.Context, r *bufio.Reader) (string, error) {
	resChan := make(chan readResult, 1)
	go func() {
		line, err := r.ReadString('\n')
		resChan <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrUserInitiatedExit
	case res := <-resChan:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("failed to read user input: %w", res.err)
		}
		trimmedInput := strings.TrimSpace(res.line)
		quitters := []string{"q", "quit", "exit"}
		if trimmedInput == "" || slices.Contains(quitters, trimmedInput) {
			return "", ErrUserInitiatedExit
		}
		return trimmedInput, nil
	}
}
