package verification

import "testing"

func TestParseFieldPathRoot(t *testing.T) {
	path, err := ParseFieldPath("city")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !path.IsRoot() || path.Field != "city" || path.Index != -1 {
		t.Fatalf("unexpected path %+v", path)
	}
	if path.String() != "city" {
		t.Fatalf("round trip broke: %q", path.String())
	}
}

func TestParseFieldPathIndexed(t *testing.T) {
	path, err := ParseFieldPath("workExperiences[0].employerName")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if path.IsRoot() {
		t.Fatal("indexed path is not a root field")
	}
	if path.Collection != "workExperiences" || path.Index != 0 || path.Field != "employerName" {
		t.Fatalf("unexpected path %+v", path)
	}
	if path.String() != "workExperiences[0].employerName" {
		t.Fatalf("round trip broke: %q", path.String())
	}
}

func TestParseFieldPathTrimsWhitespace(t *testing.T) {
	path, err := ParseFieldPath("  educations[2].degreeName ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if path.Collection != "educations" || path.Index != 2 {
		t.Fatalf("unexpected path %+v", path)
	}
}

func TestParseFieldPathRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"a.b",
		"[0].b",
		"a[0]b",
		"a[0].",
		"a[].b",
		"a[-1].b",
		"a[x].b",
		"a[0",
		"a]0[.b",
		"work experiences[0].title",
		"city!",
	}
	for _, raw := range cases {
		if _, err := ParseFieldPath(raw); err == nil {
			t.Errorf("ParseFieldPath(%q) should fail", raw)
		}
	}
}
