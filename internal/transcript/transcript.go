package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	labelUser       = "USER"
	labelAgent      = "AGENT"
	labelToolCall   = "TOOL CALL"
	labelToolResult = "TOOL RESULT"
)

// Writer appends a plain text record of a session to a file. Writes are
// flushed immediately. The first write error is kept and returned by Close,
// so that a failing transcript never interrupts the session.
type Writer struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	err    error
	closed bool
}

// New creates the transcript file '<baseDir>/<YYYY-MM-DD>/<HHMMSS>.txt' and
// writes the metadata header. If the file exists, a numeric suffix is
// appended: '<HHMMSS>-1.txt', '<HHMMSS>-2.txt' and so on.
func New(baseDir string, meta map[string]any, startedAt time.Time) (*Writer, error) {
	if startedAt.IsZero() {
		startedAt = time.Now()
	}
	dayDir := filepath.Join(baseDir, startedAt.Format(time.DateOnly))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create transcript dir: %w", err)
	}

	base := startedAt.Format("150405")
	var f *os.File
	var path string
	for suffix := 0; ; suffix++ {
		name := base + ".txt"
		if suffix > 0 {
			name = fmt.Sprintf("%v-%d.txt", base, suffix)
		}
		path = filepath.Join(dayDir, name)
		var err error
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create transcript file: %w", err)
		}
	}

	w := &Writer{path: path, file: f}
	w.write(header(meta, startedAt))
	if w.err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write transcript header: %w", w.err)
	}
	return w, nil
}

func header(meta map[string]any, startedAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("# Meta\n")
	sb.WriteString(fmt.Sprintf("started_at: %v\n", startedAt.Format(time.RFC3339)))
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%v: %v\n", k, asText(meta[k])))
	}
	sb.WriteString("---\n")
	return sb.String()
}

// asText renders maps and slices as compact json, everything else with %v.
func asText(v any) string {
	if v == nil {
		return "<nil>"
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.Marshal(v)
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// Path of the transcript file.
func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) LogUser(text string) {
	w.block(labelUser, text)
}

func (w *Writer) LogAgent(text string) {
	w.block(labelAgent, text)
}

// LogToolCall logs 'name args', or only the name if args are empty.
func (w *Writer) LogToolCall(name, args string) {
	args = strings.TrimSpace(args)
	if args == "" {
		w.block(labelToolCall, name)
		return
	}
	w.block(labelToolCall, name+" "+args)
}

func (w *Writer) LogToolResult(callID, result string) {
	w.block(labelToolResult, callID+" "+result)
}

// block writes '[LABEL] first line' followed by the remaining lines indented
// four spaces. Blank text is skipped.
func (w *Writer) block(label, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%v] %v\n", label, lines[0]))
	for _, l := range lines[1:] {
		sb.WriteString("    " + l + "\n")
	}
	w.write(sb.String())
}

func (w *Writer) write(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.err != nil {
		return
	}
	if _, err := w.file.WriteString(s); err != nil {
		w.err = err
		return
	}
	if err := w.file.Sync(); err != nil {
		w.err = err
	}
}

// Close the file. It's safe to call more than once, only the first call
// has any effect.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	closeErr := w.file.Close()
	if w.err != nil {
		return fmt.Errorf("transcript write failed: %w", w.err)
	}
	return closeErr
}
