package candidate

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Derived metrics computed from raw work-experience records. Experiences
// without a start date carry no signal and are skipped everywhere.

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthsBetween(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours() / 24 / 30.44
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func stintEnd(we WorkExperience, now time.Time) time.Time {
	if we.EndDate != nil {
		return *we.EndDate
	}
	return now
}

// YearsOfExperience sums per-stint spans. Overlapping stints are additive,
// matching how the recruiter-facing totals were always displayed.
func YearsOfExperience(c *Candidate, now time.Time) float64 {
	months := 0.0
	for _, we := range c.WorkExperiences {
		if we.StartDate == nil {
			continue
		}
		months += monthsBetween(*we.StartDate, stintEnd(we, now))
	}
	return round1(months / 12)
}

// AverageJobTenure groups stints by normalized employer name and averages
// the (earliest start, latest end-or-now) span across distinct employers.
func AverageJobTenure(c *Candidate, now time.Time) float64 {
	type span struct {
		start time.Time
		end   time.Time
	}
	spans := make(map[string]*span)
	for _, we := range c.WorkExperiences {
		if we.StartDate == nil {
			continue
		}
		key := NormalizeEmployer(we.EmployerName)
		if key == "" {
			continue
		}
		end := stintEnd(we, now)
		existing, ok := spans[key]
		if !ok {
			spans[key] = &span{start: *we.StartDate, end: end}
			continue
		}
		if we.StartDate.Before(existing.start) {
			existing.start = *we.StartDate
		}
		if end.After(existing.end) {
			existing.end = end
		}
	}
	if len(spans) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range spans {
		total += monthsBetween(s.start, s.end) / 12
	}
	return round1(total / float64(len(spans)))
}

// EmployerPromotions counts distinct job titles held at one employer,
// ordered by start date, minus one. Employers with fewer than two dated
// stints report zero.
func EmployerPromotions(c *Candidate, employerName string) int {
	key := NormalizeEmployer(employerName)
	var stints []WorkExperience
	for _, we := range c.WorkExperiences {
		if we.StartDate == nil || NormalizeEmployer(we.EmployerName) != key {
			continue
		}
		stints = append(stints, we)
	}
	if len(stints) < 2 {
		return 0
	}
	sort.SliceStable(stints, func(i, j int) bool {
		return stints[i].StartDate.Before(*stints[j].StartDate)
	})
	seen := make(map[string]struct{}, len(stints))
	for _, we := range stints {
		seen[strings.ToLower(strings.TrimSpace(we.JobTitle))] = struct{}{}
	}
	return len(seen) - 1
}

// MaxEmployerPromotions is the best promotion count across all employers.
func MaxEmployerPromotions(c *Candidate) int {
	best := 0
	counted := make(map[string]struct{})
	for _, we := range c.WorkExperiences {
		key := NormalizeEmployer(we.EmployerName)
		if key == "" {
			continue
		}
		if _, done := counted[key]; done {
			continue
		}
		counted[key] = struct{}{}
		if n := EmployerPromotions(c, we.EmployerName); n > best {
			best = n
		}
	}
	return best
}

func CurrentlyWorking(c *Candidate) bool {
	for _, we := range c.WorkExperiences {
		if we.StartDate != nil && we.EndDate == nil {
			return true
		}
	}
	return false
}

// YearsWithTechStack sums stint durations where the stack tag applies.
func YearsWithTechStack(c *Candidate, tag string, now time.Time) float64 {
	months := 0.0
	for _, we := range c.WorkExperiences {
		if we.StartDate == nil {
			continue
		}
		if containsFold(we.TechStacks, tag) {
			months += monthsBetween(*we.StartDate, stintEnd(we, now))
		}
	}
	return round1(months / 12)
}

// YearsWithWorkMode sums stint durations worked in the given mode.
func YearsWithWorkMode(c *Candidate, mode string, now time.Time) float64 {
	months := 0.0
	for _, we := range c.WorkExperiences {
		if we.StartDate == nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(we.WorkMode), strings.TrimSpace(mode)) {
			months += monthsBetween(*we.StartDate, stintEnd(we, now))
		}
	}
	return round1(months / 12)
}

// HasCareerTransition reports whether an employer-type-tagged stint in the
// "from" set starts chronologically before one in the "to" set. When
// latestOnly is set the "to" stint must be the most recent one.
func HasCareerTransition(c *Candidate, fromTypes, toTypes []string, latestOnly bool) bool {
	var dated []WorkExperience
	for _, we := range c.WorkExperiences {
		if we.StartDate != nil && we.EmployerType != "" {
			dated = append(dated, we)
		}
	}
	if len(dated) < 2 {
		return false
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].StartDate.Before(*dated[j].StartDate)
	})
	for j := 1; j < len(dated); j++ {
		if latestOnly && j != len(dated)-1 {
			continue
		}
		if !containsFold(toTypes, dated[j].EmployerType) {
			continue
		}
		for i := 0; i < j; i++ {
			if containsFold(fromTypes, dated[i].EmployerType) {
				return true
			}
		}
	}
	return false
}

// WorkTechStacks flattens tech stacks across all work experiences.
func WorkTechStacks(c *Candidate) []string {
	var all []string
	for _, we := range c.WorkExperiences {
		all = append(all, we.TechStacks...)
	}
	return NormalizeTags(all)
}

// ProjectTechStacks flattens tech stacks across standalone projects.
func ProjectTechStacks(c *Candidate) []string {
	var all []string
	for _, p := range c.Projects {
		all = append(all, p.TechStacks...)
	}
	return NormalizeTags(all)
}

// AllTechStacks is the union of work-experience and project stacks.
func AllTechStacks(c *Candidate) []string {
	return NormalizeTags(append(WorkTechStacks(c), ProjectTechStacks(c)...))
}

// LatestEmployerSize reports the employer headcount of the most recently
// started stint that carries one. The second return is false when no dated
// stint has a recorded size.
func LatestEmployerSize(c *Candidate) (int, bool) {
	var latest *WorkExperience
	for i := range c.WorkExperiences {
		we := &c.WorkExperiences[i]
		if we.StartDate == nil || we.EmployerSize == nil {
			continue
		}
		if latest == nil || we.StartDate.After(*latest.StartDate) {
			latest = we
		}
	}
	if latest == nil {
		return 0, false
	}
	return *latest.EmployerSize, true
}

// MaxProjectTeamSize is the largest standalone-project team the candidate
// has worked in.
func MaxProjectTeamSize(c *Candidate) (int, bool) {
	best := 0
	found := false
	for _, p := range c.Projects {
		if p.TeamSize == nil {
			continue
		}
		found = true
		if *p.TeamSize > best {
			best = *p.TeamSize
		}
	}
	return best, found
}

// OverlapsWithin reports whether two date ranges overlap once each is
// widened by the month tolerance. Open-ended ranges run to now; a missing
// start means no data and never matches.
func OverlapsWithin(aStart, aEnd, bStart, bEnd *time.Time, toleranceMonths int, now time.Time) bool {
	if aStart == nil || bStart == nil {
		return false
	}
	endA := now
	if aEnd != nil {
		endA = *aEnd
	}
	endB := now
	if bEnd != nil {
		endB = *bEnd
	}
	tol := time.Duration(toleranceMonths) * 24 * 30 * time.Hour
	return !aStart.After(endB.Add(tol)) && !bStart.After(endA.Add(tol))
}

func containsFold(values []string, target string) bool {
	target = strings.TrimSpace(target)
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}
