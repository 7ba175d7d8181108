package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ansiEscapeSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func visibleRuneCount(s string) int {
	clean := ansiEscapeSeq.ReplaceAllString(s, "")
	return utf8.RuneCountInString(clean)
}

// WidthAppropriateStringTrunc shortens toShorten so that prefix + toShorten
// fits on one terminal line, cutting out the middle when needed.
func WidthAppropriateStringTrunc(toShorten, prefix string, padding int) (string, error) {
	return WidthAppropriateStringTruncColored(toShorten, prefix, "", "", padding)
}

// WidthAppropriateStringTruncColored is like WidthAppropriateStringTrunc but
// also colors the prefix and the truncation infix. Colors are disabled when
// NO_COLOR is truthy.
func WidthAppropriateStringTruncColored(toShorten, prefix, prefixColor, truncColor string, padding int) (string, error) {
	toShorten = strings.ReplaceAll(toShorten, "\n", "\\n")
	toShorten = strings.ReplaceAll(toShorten, "\t", "\\t")

	termWidth, err := TermWidth()
	if err != nil {
		return "", fmt.Errorf("get term width: %w", err)
	}

	return fillRemainderOfTermWidthColored(prefix, toShorten, prefixColor, truncColor, termWidth, padding), nil
}

func fillRemainderOfTermWidthColored(prefix, remainder, prefixColor, truncColor string, termWidth, padding int) string {
	infix := " ... "
	infixLen := visibleRuneCount(infix)

	// Escape sequences in prefix don't take up any width
	remainingWidth := termWidth - visibleRuneCount(prefix) - padding
	if remainingWidth < 0 {
		remainingWidth = 0
	}
	widthAdjustedRemainder := ""
	r := []rune(remainder)
	if remainingWidth == 0 {
		widthAdjustedRemainder = ""
	} else if len(r) <= remainingWidth {
		widthAdjustedRemainder = remainder
	} else if remainingWidth <= infixLen {
		widthAdjustedRemainder = string(r[:remainingWidth])
	} else {
		avail := remainingWidth - infixLen
		startLen := avail / 2
		endLen := avail - startLen
		if endLen < 0 {
			endLen = 0
		}
		if startLen < 0 {
			startLen = 0
		}
		if startLen > len(r) {
			startLen = len(r)
		}
		if endLen > len(r)-startLen {
			endLen = len(r) - startLen
		}
		endStart := len(r) - endLen
		if endStart < 0 {
			endStart = 0
		}

		widthAdjustedRemainder = string(r[:startLen]) +
			Colorize(truncColor, infix) +
			string(r[endStart:])
	}

	return Colorize(prefixColor, prefix) + widthAdjustedRemainder
}
