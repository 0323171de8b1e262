package repository

import (
	"context"
	"errors"

	"travel-intake-agent/internal/domain"
)

// Appender stores one finished lead.
type Appender interface {
	Append(ctx context.Context, lead domain.Lead) error
}

// Fanout appends every lead to each of its stores in order. A failing store
// does not stop the others.
type Fanout struct {
	stores []Appender
}

func NewFanout(stores ...Appender) (*Fanout, error) {
	if len(stores) == 0 {
		return nil, errors.New("repository: at least one store is required")
	}
	for _, s := range stores {
		if s == nil {
			return nil, errors.New("repository: store must not be nil")
		}
	}
	return &Fanout{stores: stores}, nil
}

func (f *Fanout) Append(ctx context.Context, lead domain.Lead) error {
	var errs []error
	for _, s := range f.stores {
		if err := s.Append(ctx, lead); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
