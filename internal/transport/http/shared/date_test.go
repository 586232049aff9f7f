package shared

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "plain date", input: "2024-03-15", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "rfc3339", input: "2024-03-15T09:30:00Z", want: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), ok: true},
		{name: "empty is zero", input: "", want: time.Time{}, ok: true},
		{name: "garbage", input: "not-a-date", ok: false},
		{name: "wrong order", input: "15-03-2024", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDate(tc.input)
			if tc.ok {
				if err != nil {
					t.Fatalf("ParseDate(%q) returned error: %v", tc.input, err)
				}
				if !got.Equal(tc.want) {
					t.Fatalf("ParseDate(%q) = %v, want %v", tc.input, got, tc.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("ParseDate(%q) = %v, want error", tc.input, got)
			}
		})
	}
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	parsed, ok := v.Date("startDate", " 2024-03-15 ")
	if !ok {
		t.Fatalf("Date rejected a valid value: %v", v.Issues())
	}
	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !parsed.Equal(want) {
		t.Fatalf("Date = %v, want %v", parsed, want)
	}
	if v.HasIssues() {
		t.Fatalf("unexpected issues after valid date: %v", v.Issues())
	}

	if _, ok := v.Date("endDate", "bogus"); ok {
		t.Fatal("Date accepted a malformed value")
	}
	if _, ok := v.Date("since", ""); ok {
		t.Fatal("Date accepted an empty value")
	}
	issues := v.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d: %v", len(issues), issues)
	}

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("Reject returned false with pending issues")
	}
	if rec.Code != 400 {
		t.Fatalf("Reject wrote status %d, want 400", rec.Code)
	}
}
