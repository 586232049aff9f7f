package candidate

import (
	"testing"
	"time"
)

func TestNormalizeTagsDedupesCaseInsensitively(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "go", "GO", "Postgres", ""})
	if len(got) != 2 {
		t.Fatalf("expected 2 tags, got %v", got)
	}
	if got[0] != "Go" || got[1] != "Postgres" {
		t.Fatalf("first casing should win, got %v", got)
	}
}

func TestNormalizeTagsEmpty(t *testing.T) {
	if got := NormalizeTags(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if got := NormalizeTags([]string{"", "  "}); got != nil {
		t.Fatalf("blank-only input should normalize to nil, got %v", got)
	}
}

func TestNormalizeFloorsEducationMonths(t *testing.T) {
	mid := time.Date(2019, 9, 17, 10, 30, 0, 0, time.UTC)
	c := Candidate{
		Educations: []Education{{StartMonth: &mid, EndMonth: &mid}},
	}
	Normalize(&c)

	want := time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC)
	if !c.Educations[0].StartMonth.Equal(want) {
		t.Fatalf("start month not floored: %v", c.Educations[0].StartMonth)
	}
	if !c.Educations[0].EndMonth.Equal(want) {
		t.Fatalf("end month not floored: %v", c.Educations[0].EndMonth)
	}
}

func TestNormalizeTrimsAndDedupesWorkExperience(t *testing.T) {
	c := Candidate{
		WorkExperiences: []WorkExperience{{
			EmployerName: "  Acme ",
			JobTitle:     " Engineer ",
			TechStacks:   []string{"Go", "go "},
		}},
	}
	Normalize(&c)

	we := c.WorkExperiences[0]
	if we.EmployerName != "Acme" || we.JobTitle != "Engineer" {
		t.Fatalf("expected trimmed fields, got %q %q", we.EmployerName, we.JobTitle)
	}
	if len(we.TechStacks) != 1 {
		t.Fatalf("expected deduped stacks, got %v", we.TechStacks)
	}
}
