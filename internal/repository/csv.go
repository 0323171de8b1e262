package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"travel-intake-agent/internal/domain"
)

// CSVColumns is the fixed column order of the CSV store. Fields a lead does
// not carry are written as empty cells.
var CSVColumns = append([]string{domain.KeyTimestamp, domain.KeySessionID}, domain.KnownFields...)

// CSV appends each lead as one row, writing the header into a new file.
type CSV struct {
	mu   sync.Mutex
	path string
}

func NewCSV(path string) (*CSV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("repository: csv path must not be empty")
	}
	return &CSV{path: path}, nil
}

func (s *CSV) Append(ctx context.Context, lead domain.Lead) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("repository: csv append: %w", err)
	}
	row := csvRow(lead)

	s.mu.Lock()
	defer s.mu.Unlock()
	return appendFile(s.path, func(f *os.File, empty bool) error {
		w := csv.NewWriter(f)
		if empty {
			if err := w.Write(CSVColumns); err != nil {
				return err
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}

func csvRow(lead domain.Lead) []string {
	flat := lead.Flat()
	row := make([]string, len(CSVColumns))
	for i, col := range CSVColumns {
		row[i] = flat[col]
	}
	return row
}
