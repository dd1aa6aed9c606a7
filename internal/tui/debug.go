package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// DebugLogger writes TUI events as JSON lines to a file. Useful while
// chasing gesture bugs, since the alternate screen eats stderr.
type DebugLogger struct {
	file *os.File
}

// NewDebugLogger opens the log file for appending. Returns nil without
// error when path is empty.
func NewDebugLogger(path string) (*DebugLogger, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	return &DebugLogger{file: f}, nil
}

// Log writes one event. A nil logger is a no-op.
func (d *DebugLogger) Log(event string, fields map[string]any) {
	if d == nil || d.file == nil {
		return
	}
	entry := map[string]any{
		"ts":    time.Now().Format(time.RFC3339Nano),
		"event": event,
	}
	for k, v := range fields {
		entry[k] = v
	}
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	d.file.Write(append(line, '\n'))
}

// Close closes the underlying file.
func (d *DebugLogger) Close() error {
	if d == nil || d.file == nil {
		return nil
	}
	return d.file.Close()
}
