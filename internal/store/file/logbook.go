package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Logbook is an append-only line log backed by a plain text file, used for
// visitor feedback and unanswered chat messages.
type Logbook struct {
	mu   sync.Mutex
	path string
}

// NewLogbook creates a logbook at dir/name.
func NewLogbook(dir, name string) (*Logbook, error) {
	path := filepath.Join(dir, name)
	if err := ensureDir(path); err != nil {
		return nil, fmt.Errorf("logbook: %w", err)
	}
	return &Logbook{path: path}, nil
}

// Append adds one line; embedded newlines are flattened so each entry stays
// a single record.
func (l *Logbook) Append(line string) error {
	line = strings.ReplaceAll(strings.TrimSpace(line), "\n", " ")
	if line == "" {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}

// Lines returns all non-empty entries. A missing or unreadable file reads
// as empty.
func (l *Logbook) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	data, err := os.ReadFile(l.path)
	if err != nil {
		return []string{}
	}
	lines := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Reset truncates the log. A log that never existed is already reset.
func (l *Logbook) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := os.WriteFile(l.path, nil, 0o600)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
