package search

import (
	"testing"
	"time"

	"ats/internal/domain/candidate"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func datePtr(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &parsed
}

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func sampleList(t *testing.T) []candidate.Candidate {
	t.Helper()
	return []candidate.Candidate{
		{
			ID:            "c1",
			Name:          "Ayesha Khan",
			City:          "Lahore",
			Email:         "ayesha@example.com",
			Status:        candidate.StatusActive,
			CurrentSalary: floatPtr(1050000),
			WorkExperiences: []candidate.WorkExperience{
				{
					EmployerName: "Systems Ltd",
					JobTitle:     "Engineer",
					EmployerType: "service",
					StartDate:    datePtr(t, "2018-01-01"),
					EndDate:      datePtr(t, "2021-01-01"),
					TechStacks:   []string{"Go", "PostgreSQL"},
				},
				{
					EmployerName: "Remotebase",
					JobTitle:     "Senior Engineer",
					EmployerType: "product",
					StartDate:    datePtr(t, "2021-01-01"),
					TechStacks:   []string{"Go", "AWS"},
					WorkMode:     "remote",
				},
			},
			Projects: []candidate.Project{
				{Name: "Open Ledger", TechStacks: []string{"Go"}, IsPublished: true},
			},
		},
		{
			ID:            "c2",
			Name:          "Bilal Ahmed",
			City:          "Karachi",
			Email:         "bilal@example.com",
			Status:        candidate.StatusPending,
			CurrentSalary: floatPtr(400000),
			WorkExperiences: []candidate.WorkExperience{
				{
					EmployerName: "10Pearls",
					JobTitle:     "Frontend Developer",
					EmployerType: "service",
					StartDate:    datePtr(t, "2021-01-04"),
					TechStacks:   []string{"TypeScript", "React"},
					WorkMode:     "onsite",
				},
			},
		},
		{
			ID:     "c3",
			Name:   "Sana Tariq",
			City:   "Lahore",
			Status: candidate.StatusActive,
			// No salary recorded.
			WorkExperiences: []candidate.WorkExperience{
				{
					EmployerName: "Freelance",
					JobTitle:     "Designer",
					StartDate:    datePtr(t, "2022-01-01"),
				},
			},
		},
	}
}

func TestEmptyFiltersMatchEverything(t *testing.T) {
	list := sampleList(t)
	filters := InitialFilters()

	got := FilterCandidates(list, &filters, testNow)
	if len(got) != len(list) {
		t.Fatalf("empty filters should match all %d candidates, got %d", len(list), len(got))
	}
	for i := range got {
		if got[i].ID != list[i].ID {
			t.Fatalf("input order must be preserved, position %d got %s", i, got[i].ID)
		}
	}
}

func TestFilteringIsIdempotent(t *testing.T) {
	list := sampleList(t)
	filters := CandidateFilters{Cities: []string{"Lahore"}}

	once := FilterCandidates(list, &filters, testNow)
	twice := FilterCandidates(once, &filters, testNow)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("second pass reordered results at %d", i)
		}
	}
}

func TestCriteriaCompose(t *testing.T) {
	list := sampleList(t)

	cityOnly := CandidateFilters{Cities: []string{"Lahore"}}
	if got := FilterCandidates(list, &cityOnly, testNow); len(got) != 2 {
		t.Fatalf("expected 2 Lahore candidates, got %d", len(got))
	}

	both := CandidateFilters{Cities: []string{"Lahore"}, TechStacks: []string{"Go"}}
	got := FilterCandidates(list, &both, testNow)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("combined criteria must intersect, got %v", ids(got))
	}
}

func TestExclusionWinsOverInclusion(t *testing.T) {
	list := sampleList(t)
	filters := CandidateFilters{
		Cities:        []string{"Lahore", "Karachi"},
		ExcludeCities: []string{"lahore"},
	}
	got := FilterCandidates(list, &filters, testNow)
	if len(got) != 1 || got[0].ID != "c2" {
		t.Fatalf("excluded city must drop even when included, got %v", ids(got))
	}
}

func TestSalaryRangeParsesStringBounds(t *testing.T) {
	list := sampleList(t)

	inRange := CandidateFilters{CurrentSalaryMin: "1000000", CurrentSalaryMax: "1100000"}
	got := FilterCandidates(list, &inRange, testNow)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("1050000 lies inside [1000000, 1100000], got %v", ids(got))
	}

	capped := CandidateFilters{CurrentSalaryMax: "1000000"}
	got = FilterCandidates(list, &capped, testNow)
	if len(got) != 1 || got[0].ID != "c2" {
		t.Fatalf("only the 400000 salary fits under 1000000, got %v", ids(got))
	}
}

func TestAbsentValueFailsActiveNumericFilter(t *testing.T) {
	list := sampleList(t)
	filters := CandidateFilters{CurrentSalaryMin: "1"}
	for _, c := range FilterCandidates(list, &filters, testNow) {
		if c.ID == "c3" {
			t.Fatal("candidate without a salary must not pass a salary filter")
		}
	}
}

func TestMalformedBoundIsInert(t *testing.T) {
	list := sampleList(t)
	filters := CandidateFilters{CurrentSalaryMin: "not-a-number"}
	if got := FilterCandidates(list, &filters, testNow); len(got) != len(list) {
		t.Fatalf("malformed bound should constrain nothing, got %d of %d", len(got), len(list))
	}
}

func TestInvertedRangeMatchesNothing(t *testing.T) {
	list := sampleList(t)
	filters := CandidateFilters{CurrentSalaryMin: "2000000", CurrentSalaryMax: "1000000"}
	if got := FilterCandidates(list, &filters, testNow); len(got) != 0 {
		t.Fatalf("impossible range should match nothing, got %v", ids(got))
	}
}

func TestTechStackModes(t *testing.T) {
	list := sampleList(t)

	anyOf := CandidateFilters{TechStacks: []string{"React", "AWS"}}
	if got := FilterCandidates(list, &anyOf, testNow); len(got) != 2 {
		t.Fatalf("OR mode should match both engineers, got %v", ids(got))
	}

	allOf := CandidateFilters{TechStacks: []string{"Go", "AWS"}, TechStacksRequireAll: true}
	got := FilterCandidates(list, &allOf, testNow)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("AND mode requires every stack, got %v", ids(got))
	}

	inBoth := CandidateFilters{TechStacks: []string{"Go"}, TechStacksRequireInBoth: true}
	got = FilterCandidates(list, &inBoth, testNow)
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("in-both mode needs the stack in work and projects, got %v", ids(got))
	}

	inBothAWS := CandidateFilters{TechStacks: []string{"AWS"}, TechStacksRequireInBoth: true}
	if got := FilterCandidates(list, &inBothAWS, testNow); len(got) != 0 {
		t.Fatalf("AWS appears only in work stacks, got %v", ids(got))
	}
}

func TestBasicInfoSearch(t *testing.T) {
	list := sampleList(t)
	filters := CandidateFilters{BasicInfoSearch: "bilal@"}
	got := FilterCandidates(list, &filters, testNow)
	if len(got) != 1 || got[0].ID != "c2" {
		t.Fatalf("substring search over identity fields failed, got %v", ids(got))
	}
}

func TestBooleanTriState(t *testing.T) {
	list := sampleList(t)

	unset := InitialFilters()
	if got := FilterCandidates(list, &unset, testNow); len(got) != 3 {
		t.Fatalf("unset boolean constrains nothing, got %d", len(got))
	}

	wantCurrent := CandidateFilters{IsCurrentlyWorking: boolPtr(true)}
	got := FilterCandidates(list, &wantCurrent, testNow)
	if len(got) != 3 {
		// c1 and c3 have open stints; c2's single stint is open too.
		t.Fatalf("expected all with open stints, got %v", ids(got))
	}

	wantNot := CandidateFilters{HasPublishedProject: boolPtr(false)}
	got = FilterCandidates(list, &wantNot, testNow)
	if len(got) != 2 {
		t.Fatalf("negative boolean should keep only candidates without published projects, got %v", ids(got))
	}
}

func TestDateProximityFilter(t *testing.T) {
	list := sampleList(t)
	refStart := datePtr(t, "2021-01-20")
	refs := []candidate.ReferenceRange{{ID: "r1", Name: "Orion", Kind: "project", Start: refStart}}

	within := CandidateFilters{JoinedProjectFromStart: &DateProximityFilter{ToleranceDays: 30, Refs: refs}}
	got := FilterCandidates(list, &within, testNow)
	if len(got) != 2 {
		// c1's 2021-01-01 start and c2's 2021-01-04 start are both within 30 days.
		t.Fatalf("expected both January joiners, got %v", ids(got))
	}

	tight := CandidateFilters{JoinedProjectFromStart: &DateProximityFilter{ToleranceDays: 10, Refs: refs}}
	got = FilterCandidates(list, &tight, testNow)
	if len(got) != 0 {
		t.Fatalf("19 day gaps should fail a 10 day window, got %v", ids(got))
	}

	allowBefore := CandidateFilters{JoinedProjectFromStart: &DateProximityFilter{ToleranceDays: 10, AllowBefore: true, Refs: refs}}
	got = FilterCandidates(list, &allowBefore, testNow)
	if len(got) != 2 {
		t.Fatalf("allowBefore accepts any start on or before the reference, got %v", ids(got))
	}
}

func TestMutualConnectionTolerance(t *testing.T) {
	list := []candidate.Candidate{
		{
			ID: "c1",
			Educations: []candidate.Education{
				{StartMonth: datePtr(t, "2012-09-01"), EndMonth: datePtr(t, "2016-06-01")},
			},
		},
	}
	refs := []candidate.ReferenceRange{
		{ID: "e1", Kind: "education", Start: datePtr(t, "2016-08-01"), End: datePtr(t, "2020-06-01")},
	}

	oneMonth := CandidateFilters{MutualConnection: &MutualConnectionFilter{ToleranceMonths: 1, Refs: refs}}
	if got := FilterCandidates(list, &oneMonth, testNow); len(got) != 0 {
		t.Fatalf("two month gap fails one month tolerance, got %v", ids(got))
	}

	threeMonths := CandidateFilters{MutualConnection: &MutualConnectionFilter{ToleranceMonths: 3, Refs: refs}}
	if got := FilterCandidates(list, &threeMonths, testNow); len(got) != 1 {
		t.Fatalf("two month gap passes three month tolerance, got %v", ids(got))
	}
}

func TestActiveCriteriaNames(t *testing.T) {
	filters := CandidateFilters{
		Cities:           []string{"Lahore"},
		CurrentSalaryMin: "100",
		IsTopDeveloper:   boolPtr(true),
	}
	names := ActiveCriteria(&filters)
	want := map[string]bool{"cities": true, "currentSalary": true, "isTopDeveloper": true}
	if len(names) != len(want) {
		t.Fatalf("expected %d active criteria, got %v", len(want), names)
	}
	for _, name := range names {
		if !want[name] {
			t.Fatalf("unexpected criterion %q", name)
		}
	}

	if got := ActiveCriteria(&CandidateFilters{}); len(got) != 0 {
		t.Fatalf("no criteria should be active, got %v", got)
	}
}

func TestMatchesFiltersNilSafety(t *testing.T) {
	filters := InitialFilters()
	if MatchesFilters(nil, &filters, testNow) {
		t.Fatal("nil candidate never matches")
	}
	c := sampleList(t)[0]
	if !MatchesFilters(&c, nil, testNow) {
		t.Fatal("nil filters match everything")
	}
}

func ids(list []candidate.Candidate) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}
