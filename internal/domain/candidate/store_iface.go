package candidate

import (
	"context"
	"time"
)

// ReferenceRange is a dated range belonging to an in-house employee,
// used by connection-style filters (mutual connection, worked with a top
// developer, joined a project from its start).
type ReferenceRange struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Kind  string     `json:"kind"` // work | education | project
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

type StoreAPI interface {
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, limit, offset int) ([]Candidate, error)
	ListAll(ctx context.Context) ([]Candidate, error)
	Get(ctx context.Context, candidateID string) (*Candidate, error)
	Create(ctx context.Context, c Candidate) (string, error)
	Update(ctx context.Context, candidateID string, c Candidate) error
	CountByStatus(ctx context.Context) (map[string]int, error)
	ReferenceRanges(ctx context.Context, kind string) ([]ReferenceRange, error)
}
