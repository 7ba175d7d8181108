package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func withStdin(t *testing.T, content string) {
	t.Helper()
	p := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write stdin file: %v", err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("failed to open stdin file: %v", err)
	}
	oldStdin := os.Stdin
	os.Stdin = f
	t.Cleanup(func() {
		os.Stdin = oldStdin
		f.Close()
	})
}

func Test_goldenFile_CHAT_echo_then_exit(t *testing.T) {
	setupGoldenConfig(t)
	withStdin(t, "hola\nque tal\n\n")

	var gotStatus int
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatus = run([]string{"chat", "-r"})
	})

	testboil.FailTestIfDiff(t, gotStatus, 0)
	want := "Interactive session started. Press Ctrl+C or enter nothing to exit.\n" +
		"You> Agent: hola\n" +
		"You> Agent: que tal\n" +
		"You> Ending session.\n"
	testboil.FailTestIfDiff(t, stdout, want)
}

func Test_goldenFile_CHAT_initial_goal(t *testing.T) {
	setupGoldenConfig(t)
	withStdin(t, "")

	var gotStatus int
	stdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatus = run([]string{"chat", "-r", "-goal", "/tool user_name"})
	})

	testboil.FailTestIfDiff(t, gotStatus, 0)
	want := "Interactive session started. Press Ctrl+C or enter nothing to exit.\n" +
		"Agent: Alicia\n" +
		"You> Ending session.\n"
	testboil.FailTestIfDiff(t, stdout, want)
}
