package counter

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// FileSource persists the last handed-out value in a plain text file. The
// mutex serializes concurrent requests within this process; a second process
// pointed at the same file would still race. Use the postgres or redis
// source when running more than one instance.
type FileSource struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a file-backed source. The file is created on first use;
// an absent file means the sequence starts at 1.
func NewFile(path string) *FileSource {
	return &FileSource{path: path}
}

// Next reads the last value, increments it, and writes it back before
// returning so a crash never hands the same number out twice.
func (s *FileSource) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, err := s.read()
	if err != nil {
		return 0, err
	}
	next := last + 1
	if err := os.WriteFile(s.path, []byte(strconv.FormatInt(next, 10)), 0o644); err != nil {
		return 0, fmt.Errorf("write counter file: %w", err)
	}
	return next, nil
}

func (s *FileSource) read() (int64, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter file: %w", err)
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return 0, nil
	}
	last, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse counter file %s: %w", s.path, err)
	}
	return last, nil
}
