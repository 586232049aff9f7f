package candidate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// SetField applies one stringly-typed value to a candidate, addressed by
// collection name, element index (-1 for root fields) and leaf field name.
// This backs the detail view's inline editing; full-form edits go through
// Update instead.
func SetField(c *Candidate, collection string, index int, field, value string) error {
	if collection == "" {
		return setRootField(c, field, value)
	}

	switch collection {
	case "workExperiences":
		if index < 0 || index >= len(c.WorkExperiences) {
			return fmt.Errorf("workExperiences index %d out of range", index)
		}
		return setWorkExperienceField(&c.WorkExperiences[index], field, value)
	case "projects":
		if index < 0 || index >= len(c.Projects) {
			return fmt.Errorf("projects index %d out of range", index)
		}
		return setProjectField(&c.Projects[index], field, value)
	case "educations":
		if index < 0 || index >= len(c.Educations) {
			return fmt.Errorf("educations index %d out of range", index)
		}
		return setEducationField(&c.Educations[index], field, value)
	case "certifications":
		if index < 0 || index >= len(c.Certifications) {
			return fmt.Errorf("certifications index %d out of range", index)
		}
		return setCertificationField(&c.Certifications[index], field, value)
	case "achievements":
		if index < 0 || index >= len(c.Achievements) {
			return fmt.Errorf("achievements index %d out of range", index)
		}
		return setAchievementField(&c.Achievements[index], field, value)
	}
	return fmt.Errorf("unknown collection %q", collection)
}

func setRootField(c *Candidate, field, value string) error {
	switch field {
	case "name":
		c.Name = value
	case "city":
		c.City = value
	case "cnic":
		c.CNIC = value
	case "mobileNo":
		c.MobileNo = value
	case "email":
		c.Email = value
	case "linkedinUrl":
		c.LinkedinURL = value
	case "githubUrl":
		c.GithubURL = value
	case "postingTitle":
		c.PostingTitle = value
	case "source":
		c.Source = value
	case "personalityType":
		c.PersonalityType = value
	case "currentSalary":
		parsed, err := parseOptionalFloat(value)
		if err != nil {
			return err
		}
		c.CurrentSalary = parsed
	case "expectedSalary":
		parsed, err := parseOptionalFloat(value)
		if err != nil {
			return err
		}
		c.ExpectedSalary = parsed
	case "isTopDeveloper":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("isTopDeveloper: %w", err)
		}
		c.IsTopDeveloper = parsed
	case "status":
		status := Status(strings.ToLower(strings.TrimSpace(value)))
		if !status.Valid() {
			return fmt.Errorf("unknown status %q", value)
		}
		c.Status = status
	default:
		return fmt.Errorf("unknown candidate field %q", field)
	}
	return nil
}

func setWorkExperienceField(we *WorkExperience, field, value string) error {
	switch field {
	case "employerName":
		we.EmployerName = value
	case "jobTitle":
		we.JobTitle = value
	case "employerType":
		we.EmployerType = value
	case "employerSize":
		parsed, err := parseOptionalInt(value)
		if err != nil {
			return err
		}
		we.EmployerSize = parsed
	case "startDate":
		parsed, err := parseOptionalDate(value)
		if err != nil {
			return err
		}
		we.StartDate = parsed
	case "endDate":
		parsed, err := parseOptionalDate(value)
		if err != nil {
			return err
		}
		we.EndDate = parsed
	case "shiftType":
		we.ShiftType = value
	case "workMode":
		we.WorkMode = value
	case "techStacks":
		we.TechStacks = NormalizeTags(strings.Split(value, ","))
	case "domains":
		we.Domains = NormalizeTags(strings.Split(value, ","))
	case "timeSupportZones":
		we.TimeSupportZones = NormalizeTags(strings.Split(value, ","))
	default:
		return fmt.Errorf("unknown work experience field %q", field)
	}
	return nil
}

func setProjectField(p *Project, field, value string) error {
	switch field {
	case "name":
		p.Name = value
	case "description":
		p.Description = value
	case "teamSize":
		parsed, err := parseOptionalInt(value)
		if err != nil {
			return err
		}
		p.TeamSize = parsed
	case "isPublished":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("isPublished: %w", err)
		}
		p.IsPublished = parsed
	case "publishedUrl":
		p.PublishedURL = value
	case "techStacks":
		p.TechStacks = NormalizeTags(strings.Split(value, ","))
	case "domains":
		p.Domains = NormalizeTags(strings.Split(value, ","))
	default:
		return fmt.Errorf("unknown project field %q", field)
	}
	return nil
}

func setEducationField(edu *Education, field, value string) error {
	switch field {
	case "universityLocationName":
		edu.UniversityLocationName = value
	case "degreeName":
		edu.DegreeName = value
	case "majorName":
		edu.MajorName = value
	case "grades":
		edu.Grades = value
	case "startMonth":
		parsed, err := parseOptionalMonth(value)
		if err != nil {
			return err
		}
		edu.StartMonth = parsed
	case "endMonth":
		parsed, err := parseOptionalMonth(value)
		if err != nil {
			return err
		}
		edu.EndMonth = parsed
	case "isTopper":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("isTopper: %w", err)
		}
		edu.IsTopper = parsed
	case "isCheetah":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("isCheetah: %w", err)
		}
		edu.IsCheetah = parsed
	default:
		return fmt.Errorf("unknown education field %q", field)
	}
	return nil
}

func setCertificationField(cert *Certification, field, value string) error {
	switch field {
	case "certificationName":
		cert.CertificationName = value
	case "certificationUrl":
		cert.CertificationURL = value
	case "issueDate":
		parsed, err := parseOptionalDate(value)
		if err != nil {
			return err
		}
		cert.IssueDate = parsed
	case "expiryDate":
		parsed, err := parseOptionalDate(value)
		if err != nil {
			return err
		}
		cert.ExpiryDate = parsed
	default:
		return fmt.Errorf("unknown certification field %q", field)
	}
	return nil
}

func setAchievementField(a *Achievement, field, value string) error {
	switch field {
	case "title":
		a.Title = value
	case "position":
		a.Position = value
	case "awardedAt":
		parsed, err := parseOptionalDate(value)
		if err != nil {
			return err
		}
		a.AwardedAt = parsed
	default:
		return fmt.Errorf("unknown achievement field %q", field)
	}
	return nil
}

func parseOptionalFloat(value string) (*float64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", value)
	}
	return &parsed, nil
}

func parseOptionalInt(value string) (*int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", value)
	}
	return &parsed, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parsed, err := ParseDate(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", value)
	}
	return &parsed, nil
}

func parseOptionalMonth(value string) (*time.Time, error) {
	parsed, err := parseOptionalDate(value)
	if err != nil || parsed == nil {
		return parsed, err
	}
	month := monthStart(*parsed)
	return &month, nil
}
