package search

import (
	"time"

	"ats/internal/domain/candidate"
)

// MatchesFilters reports whether the candidate satisfies every criterion
// that is set. Unset criteria are vacuously true.
func MatchesFilters(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool {
	if c == nil || f == nil {
		return c != nil
	}
	for _, p := range predicates {
		if !p.active(f) {
			continue
		}
		if !p.matches(c, f, now) {
			return false
		}
	}
	return true
}

// FilterCandidates is a single linear pass preserving input order.
func FilterCandidates(list []candidate.Candidate, f *CandidateFilters, now time.Time) []candidate.Candidate {
	out := make([]candidate.Candidate, 0, len(list))
	for i := range list {
		if MatchesFilters(&list[i], f, now) {
			out = append(out, list[i])
		}
	}
	return out
}

// ActiveCriteria lists the names of filter families that currently
// constrain the result, for the dialog's "n filters applied" badge.
func ActiveCriteria(f *CandidateFilters) []string {
	if f == nil {
		return nil
	}
	var names []string
	for _, p := range predicates {
		if p.active(f) {
			names = append(names, p.name)
		}
	}
	return names
}
