package candidate

import (
	"context"
	"errors"
	"fmt"
)

// ErrBadField reports an inline edit whose path or value does not fit
// the candidate model.
var ErrBadField = errors.New("bad field edit")

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *Service) ListAll(ctx context.Context) ([]Candidate, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, candidateID string) (*Candidate, error) {
	return s.store.Get(ctx, candidateID)
}

func (s *Service) Create(ctx context.Context, c Candidate) (string, error) {
	return s.store.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, candidateID string, c Candidate) error {
	return s.store.Update(ctx, candidateID, c)
}

// UpdateField applies one inline edit addressed by path components and
// persists the whole record.
func (s *Service) UpdateField(ctx context.Context, candidateID, collection string, index int, field, value string) (*Candidate, error) {
	c, err := s.store.Get(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if err := SetField(c, collection, index, field, value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadField, err)
	}
	if err := s.store.Update(ctx, candidateID, *c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.store.CountByStatus(ctx)
}

func (s *Service) ReferenceRanges(ctx context.Context, kind string) ([]ReferenceRange, error) {
	return s.store.ReferenceRanges(ctx, kind)
}
