package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"travel-intake-agent/internal/domain"
)

// JSONL appends each lead as one flat JSON object per line.
type JSONL struct {
	mu   sync.Mutex
	path string
}

func NewJSONL(path string) (*JSONL, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("repository: jsonl path must not be empty")
	}
	return &JSONL{path: path}, nil
}

func (s *JSONL) Append(ctx context.Context, lead domain.Lead) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repository: jsonl append: %w", err)
	}
	line, err := json.Marshal(lead.Flat())
	if err != nil {
		return fmt.Errorf("repository: jsonl marshal: %w", err)
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	return appendFile(s.path, func(f *os.File, _ bool) error {
		_, err := f.Write(line)
		return err
	})
}

// appendFile opens path for appending, creating it when missing, and reports
// to write whether the file was empty beforehand.
func appendFile(path string, write func(f *os.File, empty bool) error) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("repository: open %q: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("repository: stat %q: %w", path, err)
	}
	if err := write(f, info.Size() == 0); err != nil {
		_ = f.Close()
		return fmt.Errorf("repository: write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("repository: close %q: %w", path, err)
	}
	return nil
}
