package search

import (
	"strconv"
	"strings"
	"time"

	"ats/internal/domain/candidate"
)

// Each filter family is an independent predicate. A family only constrains
// the result when active; MatchesFilters reduces the list with AND. This
// keeps the "is this criterion set" check and the matching logic for one
// family in a single place.
type predicate struct {
	name    string
	active  func(f *CandidateFilters) bool
	matches func(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool
}

var basicInfoFields = []func(c *candidate.Candidate) string{
	func(c *candidate.Candidate) string { return c.Name },
	func(c *candidate.Candidate) string { return c.Email },
	func(c *candidate.Candidate) string { return c.MobileNo },
	func(c *candidate.Candidate) string { return c.CNIC },
	func(c *candidate.Candidate) string { return c.Source },
	func(c *candidate.Candidate) string { return string(c.Status) },
	func(c *candidate.Candidate) string { return c.LinkedinURL },
	func(c *candidate.Candidate) string { return c.GithubURL },
}

var predicates = []predicate{
	{
		name:   "basicInfoSearch",
		active: func(f *CandidateFilters) bool { return strings.TrimSpace(f.BasicInfoSearch) != "" },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			query := strings.ToLower(strings.TrimSpace(f.BasicInfoSearch))
			for _, field := range basicInfoFields {
				if strings.Contains(strings.ToLower(field(c)), query) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "cities",
		active: func(f *CandidateFilters) bool { return setActive(f.Cities) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return memberFold(f.Cities, c.City)
		},
	},
	{
		name:   "excludeCities",
		active: func(f *CandidateFilters) bool { return setActive(f.ExcludeCities) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return !memberFold(f.ExcludeCities, c.City)
		},
	},
	{
		name:   "statuses",
		active: func(f *CandidateFilters) bool { return setActive(f.Statuses) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return memberFold(f.Statuses, string(c.Status))
		},
	},
	{
		name:   "sources",
		active: func(f *CandidateFilters) bool { return setActive(f.Sources) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return memberFold(f.Sources, c.Source)
		},
	},
	{
		name:   "postingTitles",
		active: func(f *CandidateFilters) bool { return setActive(f.PostingTitles) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return memberFold(f.PostingTitles, c.PostingTitle)
		},
	},
	{
		name:   "personalityTypes",
		active: func(f *CandidateFilters) bool { return setActive(f.PersonalityTypes) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return memberFold(f.PersonalityTypes, c.PersonalityType)
		},
	},
	{
		name:   "currentSalary",
		active: func(f *CandidateFilters) bool { return boundsActive(f.CurrentSalaryMin, f.CurrentSalaryMax) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return optionalInRange(c.CurrentSalary, f.CurrentSalaryMin, f.CurrentSalaryMax)
		},
	},
	{
		name:   "expectedSalary",
		active: func(f *CandidateFilters) bool { return boundsActive(f.ExpectedSalaryMin, f.ExpectedSalaryMax) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return optionalInRange(c.ExpectedSalary, f.ExpectedSalaryMin, f.ExpectedSalaryMax)
		},
	},
	{
		name:   "isTopDeveloper",
		active: func(f *CandidateFilters) bool { return f.IsTopDeveloper != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return c.IsTopDeveloper == *f.IsTopDeveloper
		},
	},
	{
		name:   "createdWindow",
		active: func(f *CandidateFilters) bool { return dateBoundsActive(f.CreatedFrom, f.CreatedTo) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return timeInWindow(c.CreatedAt, f.CreatedFrom, f.CreatedTo)
		},
	},
	{
		name:   "updatedWindow",
		active: func(f *CandidateFilters) bool { return dateBoundsActive(f.UpdatedFrom, f.UpdatedTo) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return timeInWindow(c.UpdatedAt, f.UpdatedFrom, f.UpdatedTo)
		},
	},
	{
		name:   "employers",
		active: func(f *CandidateFilters) bool { return setActive(f.Employers) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if memberFold(f.Employers, we.EmployerName) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "excludeEmployers",
		active: func(f *CandidateFilters) bool { return setActive(f.ExcludeEmployers) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if memberFold(f.ExcludeEmployers, we.EmployerName) {
					return false
				}
			}
			return true
		},
	},
	{
		name:   "jobTitles",
		active: func(f *CandidateFilters) bool { return setActive(f.JobTitles) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if memberFold(f.JobTitles, we.JobTitle) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "employerTypes",
		active: func(f *CandidateFilters) bool { return setActive(f.EmployerTypes) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if memberFold(f.EmployerTypes, we.EmployerType) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "techStacks",
		active: func(f *CandidateFilters) bool { return setActive(f.TechStacks) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return matchTechStacks(c, f)
		},
	},
	{
		name:   "domains",
		active: func(f *CandidateFilters) bool { return setActive(f.Domains) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if intersectsFold(we.Domains, f.Domains) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "shiftTypes",
		active: func(f *CandidateFilters) bool { return setActive(f.ShiftTypes) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if memberFold(f.ShiftTypes, we.ShiftType) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "workModes",
		active: func(f *CandidateFilters) bool { return setActive(f.WorkModes) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if memberFold(f.WorkModes, we.WorkMode) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "timeSupportZones",
		active: func(f *CandidateFilters) bool { return setActive(f.TimeSupportZones) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, we := range c.WorkExperiences {
				if intersectsFold(we.TimeSupportZones, f.TimeSupportZones) {
					return true
				}
			}
			return false
		},
	},
	{
		name: "benefits",
		active: func(f *CandidateFilters) bool {
			return setActive(f.BenefitNames) || boundsActive(f.BenefitAmountMin, "")
		},
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			minAmount, hasMin := parseBound(f.BenefitAmountMin)
			for _, we := range c.WorkExperiences {
				for _, b := range we.Benefits {
					if setActive(f.BenefitNames) && !memberFold(f.BenefitNames, b.Name) {
						continue
					}
					if hasMin && (b.Amount == nil || *b.Amount < minAmount) {
						continue
					}
					return true
				}
			}
			return false
		},
	},
	{
		name: "yearsOfExperience",
		active: func(f *CandidateFilters) bool {
			return boundsActive(f.YearsOfExperienceMin, f.YearsOfExperienceMax)
		},
		matches: func(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool {
			years := candidate.YearsOfExperience(c, now)
			return inRange(years, f.YearsOfExperienceMin, f.YearsOfExperienceMax)
		},
	},
	{
		name:   "avgJobTenure",
		active: func(f *CandidateFilters) bool { return boundsActive(f.AvgJobTenureMin, f.AvgJobTenureMax) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool {
			return inRange(candidate.AverageJobTenure(c, now), f.AvgJobTenureMin, f.AvgJobTenureMax)
		},
	},
	{
		name:   "promotions",
		active: func(f *CandidateFilters) bool { return boundsActive(f.PromotionsMin, "") },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return inRange(float64(candidate.MaxEmployerPromotions(c)), f.PromotionsMin, "")
		},
	},
	{
		name:   "employerSize",
		active: func(f *CandidateFilters) bool { return boundsActive(f.EmployerSizeMin, f.EmployerSizeMax) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			size, ok := candidate.LatestEmployerSize(c)
			if !ok {
				return false
			}
			return inRange(float64(size), f.EmployerSizeMin, f.EmployerSizeMax)
		},
	},
	{
		name: "projectTeamSize",
		active: func(f *CandidateFilters) bool {
			return boundsActive(f.ProjectTeamSizeMin, f.ProjectTeamSizeMax)
		},
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			size, ok := candidate.MaxProjectTeamSize(c)
			if !ok {
				return false
			}
			return inRange(float64(size), f.ProjectTeamSizeMin, f.ProjectTeamSizeMax)
		},
	},
	{
		name:   "isCurrentlyWorking",
		active: func(f *CandidateFilters) bool { return f.IsCurrentlyWorking != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return candidate.CurrentlyWorking(c) == *f.IsCurrentlyWorking
		},
	},
	{
		name:   "techStackMinYears",
		active: func(f *CandidateFilters) bool { return f.TechStackMinYears.set() },
		matches: func(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool {
			for _, tag := range f.TechStackMinYears.Tags {
				if candidate.YearsWithTechStack(c, tag, now) < f.TechStackMinYears.MinYears {
					return false
				}
			}
			return true
		},
	},
	{
		name:   "workModeMinYears",
		active: func(f *CandidateFilters) bool { return f.WorkModeMinYears.set() },
		matches: func(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool {
			for _, mode := range f.WorkModeMinYears.Tags {
				if candidate.YearsWithWorkMode(c, mode, now) < f.WorkModeMinYears.MinYears {
					return false
				}
			}
			return true
		},
	},
	{
		name:   "careerTransition",
		active: func(f *CandidateFilters) bool { return f.CareerTransition.set() },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			ct := f.CareerTransition
			return candidate.HasCareerTransition(c, ct.FromTypes, ct.ToTypes, ct.LatestOnly)
		},
	},
	{
		name:   "mutualConnection",
		active: func(f *CandidateFilters) bool { return f.MutualConnection.set() },
		matches: func(c *candidate.Candidate, f *CandidateFilters, now time.Time) bool {
			return matchMutualConnection(c, f.MutualConnection, now)
		},
	},
	{
		name:   "joinedProjectFromStart",
		active: func(f *CandidateFilters) bool { return f.JoinedProjectFromStart.set() },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return matchStartProximity(c, f.JoinedProjectFromStart)
		},
	},
	{
		name:   "workedWithTopDeveloper",
		active: func(f *CandidateFilters) bool { return f.WorkedWithTopDeveloper.set() },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return matchStartProximity(c, f.WorkedWithTopDeveloper)
		},
	},
	{
		name: "universities",
		active: func(f *CandidateFilters) bool {
			return setActive(f.UniversityLocationIDs) || setActive(f.UniversityLocationNames)
		},
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, edu := range c.Educations {
				if setActive(f.UniversityLocationIDs) && memberFold(f.UniversityLocationIDs, edu.UniversityLocationID) {
					return true
				}
				if setActive(f.UniversityLocationNames) && memberFold(f.UniversityLocationNames, edu.UniversityLocationName) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "degreeNames",
		active: func(f *CandidateFilters) bool { return setActive(f.DegreeNames) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, edu := range c.Educations {
				if memberFold(f.DegreeNames, edu.DegreeName) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "majorNames",
		active: func(f *CandidateFilters) bool { return setActive(f.MajorNames) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, edu := range c.Educations {
				if memberFold(f.MajorNames, edu.MajorName) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "isTopper",
		active: func(f *CandidateFilters) bool { return f.IsTopper != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			any := false
			for _, edu := range c.Educations {
				if edu.IsTopper {
					any = true
					break
				}
			}
			return any == *f.IsTopper
		},
	},
	{
		name:   "isCheetah",
		active: func(f *CandidateFilters) bool { return f.IsCheetah != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			any := false
			for _, edu := range c.Educations {
				if edu.IsCheetah {
					any = true
					break
				}
			}
			return any == *f.IsCheetah
		},
	},
	{
		name: "educationWindow",
		active: func(f *CandidateFilters) bool {
			return dateBoundsActive(f.EducationStartFrom, f.EducationEndTo)
		},
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, edu := range c.Educations {
				if edu.StartMonth == nil {
					continue
				}
				if !timeInWindow(*edu.StartMonth, f.EducationStartFrom, "") {
					continue
				}
				if from, ok := parseFilterDate(f.EducationEndTo); ok {
					if edu.EndMonth == nil || edu.EndMonth.After(from) {
						continue
					}
				}
				return true
			}
			return false
		},
	},
	{
		name: "certifications",
		active: func(f *CandidateFilters) bool {
			return setActive(f.CertificationIDs) || setActive(f.CertificationNames)
		},
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, cert := range c.Certifications {
				if setActive(f.CertificationIDs) && memberFold(f.CertificationIDs, cert.CertificationID) {
					return true
				}
				if setActive(f.CertificationNames) && memberFold(f.CertificationNames, cert.CertificationName) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "certIssuedWindow",
		active: func(f *CandidateFilters) bool { return dateBoundsActive(f.CertIssuedFrom, f.CertIssuedTo) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, cert := range c.Certifications {
				if cert.IssueDate != nil && timeInWindow(*cert.IssueDate, f.CertIssuedFrom, f.CertIssuedTo) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "certValidOn",
		active: func(f *CandidateFilters) bool { return dateBoundsActive(f.CertValidOn, "") },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			on, ok := parseFilterDate(f.CertValidOn)
			if !ok {
				return true
			}
			for _, cert := range c.Certifications {
				if cert.IssueDate != nil && cert.IssueDate.After(on) {
					continue
				}
				if cert.ExpiryDate != nil && cert.ExpiryDate.Before(on) {
					continue
				}
				if cert.IssueDate != nil || cert.ExpiryDate != nil {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "hasCertificationUrl",
		active: func(f *CandidateFilters) bool { return f.HasCertificationURL != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			any := false
			for _, cert := range c.Certifications {
				if strings.TrimSpace(cert.CertificationURL) != "" {
					any = true
					break
				}
			}
			return any == *f.HasCertificationURL
		},
	},
	{
		name:   "projectNames",
		active: func(f *CandidateFilters) bool { return setActive(f.ProjectNames) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, p := range c.Projects {
				if memberFold(f.ProjectNames, p.Name) {
					return true
				}
			}
			for _, we := range c.WorkExperiences {
				for _, pe := range we.Projects {
					if memberFold(f.ProjectNames, pe.ProjectName) {
						return true
					}
				}
			}
			return false
		},
	},
	{
		name:   "projectTechStacks",
		active: func(f *CandidateFilters) bool { return setActive(f.ProjectTechStacks) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return intersectsFold(candidate.ProjectTechStacks(c), f.ProjectTechStacks)
		},
	},
	{
		name:   "projectDomains",
		active: func(f *CandidateFilters) bool { return setActive(f.ProjectDomains) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, p := range c.Projects {
				if intersectsFold(p.Domains, f.ProjectDomains) {
					return true
				}
			}
			return false
		},
	},
	{
		name:   "hasPublishedProject",
		active: func(f *CandidateFilters) bool { return f.HasPublishedProject != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			any := false
			for _, p := range c.Projects {
				if p.IsPublished {
					any = true
					break
				}
			}
			return any == *f.HasPublishedProject
		},
	},
	{
		name:   "hasAchievements",
		active: func(f *CandidateFilters) bool { return f.HasAchievements != nil },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			return (len(c.Achievements) > 0) == *f.HasAchievements
		},
	},
	{
		name:   "achievementTitles",
		active: func(f *CandidateFilters) bool { return setActive(f.AchievementTitles) },
		matches: func(c *candidate.Candidate, f *CandidateFilters, _ time.Time) bool {
			for _, a := range c.Achievements {
				if memberFold(f.AchievementTitles, a.Title) {
					return true
				}
			}
			return false
		},
	},
}

// matchTechStacks applies the OR/AND toggle and the "in both" companion.
// Default is OR over the union of work and project stacks; RequireAll flips
// to AND; RequireInBoth additionally requires the chosen mode to hold
// independently within work-experience stacks and project stacks.
func matchTechStacks(c *candidate.Candidate, f *CandidateFilters) bool {
	match := func(have []string) bool {
		if f.TechStacksRequireAll {
			for _, want := range f.TechStacks {
				if strings.TrimSpace(want) == "" {
					continue
				}
				if !memberFold(have, want) {
					return false
				}
			}
			return true
		}
		return intersectsFold(have, f.TechStacks)
	}

	if f.TechStacksRequireInBoth {
		return match(candidate.WorkTechStacks(c)) && match(candidate.ProjectTechStacks(c))
	}
	return match(candidate.AllTechStacks(c))
}

func matchMutualConnection(c *candidate.Candidate, f *MutualConnectionFilter, now time.Time) bool {
	tolerance := f.ToleranceMonths
	if tolerance <= 0 {
		tolerance = DefaultToleranceMonths
	}
	for _, ref := range f.Refs {
		switch ref.Kind {
		case "work":
			for _, we := range c.WorkExperiences {
				if candidate.OverlapsWithin(we.StartDate, we.EndDate, ref.Start, ref.End, tolerance, now) {
					return true
				}
			}
		case "education":
			for _, edu := range c.Educations {
				if candidate.OverlapsWithin(edu.StartMonth, edu.EndMonth, ref.Start, ref.End, tolerance, now) {
					return true
				}
			}
		}
	}
	return false
}

func matchStartProximity(c *candidate.Candidate, f *DateProximityFilter) bool {
	window := time.Duration(f.tolerance()) * 24 * time.Hour
	for _, we := range c.WorkExperiences {
		if we.StartDate == nil {
			continue
		}
		for _, ref := range f.Refs {
			if ref.Start == nil {
				continue
			}
			diff := we.StartDate.Sub(*ref.Start)
			if f.AllowBefore && diff <= 0 {
				return true
			}
			if diff < 0 {
				diff = -diff
			}
			if diff <= window {
				return true
			}
		}
	}
	return false
}

func memberFold(set []string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, entry := range set {
		if strings.EqualFold(strings.TrimSpace(entry), value) {
			return true
		}
	}
	return false
}

func intersectsFold(have, want []string) bool {
	for _, entry := range want {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		if memberFold(have, entry) {
			return true
		}
	}
	return false
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func boundsActive(minRaw, maxRaw string) bool {
	_, minOK := parseBound(minRaw)
	_, maxOK := parseBound(maxRaw)
	return minOK || maxOK
}

func inRange(value float64, minRaw, maxRaw string) bool {
	if min, ok := parseBound(minRaw); ok && value < min {
		return false
	}
	if max, ok := parseBound(maxRaw); ok && value > max {
		return false
	}
	return true
}

// optionalInRange fails when the candidate value is absent and either bound
// is set.
func optionalInRange(value *float64, minRaw, maxRaw string) bool {
	if value == nil {
		return false
	}
	return inRange(*value, minRaw, maxRaw)
}

func parseFilterDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := candidate.ParseDate(raw)
	if err != nil || parsed.IsZero() {
		return time.Time{}, false
	}
	return parsed, true
}

func dateBoundsActive(fromRaw, toRaw string) bool {
	_, fromOK := parseFilterDate(fromRaw)
	_, toOK := parseFilterDate(toRaw)
	return fromOK || toOK
}

func timeInWindow(value time.Time, fromRaw, toRaw string) bool {
	if from, ok := parseFilterDate(fromRaw); ok && value.Before(from) {
		return false
	}
	if to, ok := parseFilterDate(toRaw); ok && value.After(to.Add(24*time.Hour)) {
		return false
	}
	return true
}
