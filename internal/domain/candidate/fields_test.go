package candidate

import "testing"

func TestSetFieldRoot(t *testing.T) {
	c := &Candidate{}
	if err := SetField(c, "", -1, "city", "Lahore"); err != nil {
		t.Fatalf("set city: %v", err)
	}
	if c.City != "Lahore" {
		t.Fatalf("city not applied: %q", c.City)
	}

	if err := SetField(c, "", -1, "expectedSalary", "150000"); err != nil {
		t.Fatalf("set expectedSalary: %v", err)
	}
	if c.ExpectedSalary == nil || *c.ExpectedSalary != 150000 {
		t.Fatalf("expectedSalary not applied: %v", c.ExpectedSalary)
	}

	// Clearing an optional numeric with an empty string.
	if err := SetField(c, "", -1, "expectedSalary", ""); err != nil {
		t.Fatalf("clear expectedSalary: %v", err)
	}
	if c.ExpectedSalary != nil {
		t.Fatal("expectedSalary should be cleared")
	}
}

func TestSetFieldStatusValidation(t *testing.T) {
	c := &Candidate{}
	if err := SetField(c, "", -1, "status", "Hired"); err != nil {
		t.Fatalf("set status: %v", err)
	}
	if c.Status != StatusHired {
		t.Fatalf("status not applied: %q", c.Status)
	}
	if err := SetField(c, "", -1, "status", "bogus"); err == nil {
		t.Fatal("unknown status should be rejected")
	}
}

func TestSetFieldNestedWorkExperience(t *testing.T) {
	c := &Candidate{WorkExperiences: []WorkExperience{{EmployerName: "Acme"}}}
	if err := SetField(c, "workExperiences", 0, "jobTitle", "Senior Engineer"); err != nil {
		t.Fatalf("set jobTitle: %v", err)
	}
	if c.WorkExperiences[0].JobTitle != "Senior Engineer" {
		t.Fatalf("jobTitle not applied: %q", c.WorkExperiences[0].JobTitle)
	}

	if err := SetField(c, "workExperiences", 0, "techStacks", "Go, go ,Postgres"); err != nil {
		t.Fatalf("set techStacks: %v", err)
	}
	if got := c.WorkExperiences[0].TechStacks; len(got) != 2 {
		t.Fatalf("stacks should be normalized, got %v", got)
	}
}

func TestSetFieldIndexOutOfRange(t *testing.T) {
	c := &Candidate{}
	if err := SetField(c, "workExperiences", 0, "jobTitle", "x"); err == nil {
		t.Fatal("index past the end should be rejected")
	}
	if err := SetField(c, "workExperiences", -1, "jobTitle", "x"); err == nil {
		t.Fatal("negative index should be rejected")
	}
}

func TestSetFieldUnknownCollectionAndField(t *testing.T) {
	c := &Candidate{WorkExperiences: []WorkExperience{{}}}
	if err := SetField(c, "pets", 0, "name", "x"); err == nil {
		t.Fatal("unknown collection should be rejected")
	}
	if err := SetField(c, "workExperiences", 0, "favoriteColor", "x"); err == nil {
		t.Fatal("unknown leaf field should be rejected")
	}
	if err := SetField(c, "", -1, "favoriteColor", "x"); err == nil {
		t.Fatal("unknown root field should be rejected")
	}
}
