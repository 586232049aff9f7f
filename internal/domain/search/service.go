package search

import (
	"context"
	"time"

	"ats/internal/domain/candidate"
)

type Service struct {
	store           candidate.StoreAPI
	now             func() time.Time
	toleranceDays   int
	toleranceMonths int
}

// NewService builds a search service. toleranceDays and toleranceMonths are
// the operator-configured fallbacks for date-proximity and mutual-connection
// filters that arrive without an explicit tolerance; non-positive values
// fall back to the package defaults.
func NewService(store candidate.StoreAPI, toleranceDays, toleranceMonths int) *Service {
	if toleranceDays <= 0 {
		toleranceDays = DefaultToleranceDays
	}
	if toleranceMonths <= 0 {
		toleranceMonths = DefaultToleranceMonths
	}
	return &Service{
		store:           store,
		now:             time.Now,
		toleranceDays:   toleranceDays,
		toleranceMonths: toleranceMonths,
	}
}

// Search loads the candidate list, resolves reference-backed filters, and
// applies the predicate set in one pass.
func (s *Service) Search(ctx context.Context, filters CandidateFilters) ([]candidate.Candidate, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	s.applyToleranceDefaults(&filters)
	if err := s.resolveReferences(ctx, &filters, list); err != nil {
		return nil, err
	}
	return FilterCandidates(list, &filters, s.now().UTC()), nil
}

// applyToleranceDefaults stamps the configured tolerances onto filters the
// request left unset, so evaluation sees explicit values.
func (s *Service) applyToleranceDefaults(filters *CandidateFilters) {
	if filters.MutualConnection != nil && filters.MutualConnection.ToleranceMonths <= 0 {
		filters.MutualConnection.ToleranceMonths = s.toleranceMonths
	}
	if filters.JoinedProjectFromStart != nil && filters.JoinedProjectFromStart.ToleranceDays <= 0 {
		filters.JoinedProjectFromStart.ToleranceDays = s.toleranceDays
	}
	if filters.WorkedWithTopDeveloper != nil && filters.WorkedWithTopDeveloper.ToleranceDays <= 0 {
		filters.WorkedWithTopDeveloper.ToleranceDays = s.toleranceDays
	}
}

// resolveReferences fills in the date ranges that connection-style filters
// compare against, so the evaluator itself stays pure.
func (s *Service) resolveReferences(ctx context.Context, filters *CandidateFilters, list []candidate.Candidate) error {
	if filters.MutualConnection != nil && len(filters.MutualConnection.Refs) == 0 {
		refs, err := s.store.ReferenceRanges(ctx, "")
		if err != nil {
			return err
		}
		filters.MutualConnection.Refs = refs
	}

	if filters.JoinedProjectFromStart != nil && len(filters.JoinedProjectFromStart.Refs) == 0 {
		refs, err := s.store.ReferenceRanges(ctx, "project")
		if err != nil {
			return err
		}
		filters.JoinedProjectFromStart.Refs = refs
	}

	if filters.WorkedWithTopDeveloper != nil && len(filters.WorkedWithTopDeveloper.Refs) == 0 {
		filters.WorkedWithTopDeveloper.Refs = topDeveloperStints(list)
	}
	return nil
}

// topDeveloperStints derives reference ranges from the stints of candidates
// flagged as top developers.
func topDeveloperStints(list []candidate.Candidate) []candidate.ReferenceRange {
	var refs []candidate.ReferenceRange
	for i := range list {
		if !list[i].IsTopDeveloper {
			continue
		}
		for _, we := range list[i].WorkExperiences {
			if we.StartDate == nil {
				continue
			}
			refs = append(refs, candidate.ReferenceRange{
				ID:    we.ID,
				Name:  list[i].Name,
				Kind:  "work",
				Start: we.StartDate,
				End:   we.EndDate,
			})
		}
	}
	return refs
}
