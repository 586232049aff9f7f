package search

import (
	"strings"

	"ats/internal/domain/candidate"
)

// CandidateFilters is the full criteria object collected by the filter
// dialog. Every field is optional; an unset field constrains nothing.
// Numeric bounds arrive as free text from the dialog and are parsed
// leniently: a bound that fails to parse leaves that side of the filter
// inert rather than rejecting the request.
type CandidateFilters struct {
	BasicInfoSearch string `json:"basicInfoSearch,omitempty"`

	Cities           []string `json:"cities,omitempty"`
	ExcludeCities    []string `json:"excludeCities,omitempty"`
	Statuses         []string `json:"statuses,omitempty"`
	Sources          []string `json:"sources,omitempty"`
	PostingTitles    []string `json:"postingTitles,omitempty"`
	PersonalityTypes []string `json:"personalityTypes,omitempty"`

	CurrentSalaryMin  string `json:"currentSalaryMin,omitempty"`
	CurrentSalaryMax  string `json:"currentSalaryMax,omitempty"`
	ExpectedSalaryMin string `json:"expectedSalaryMin,omitempty"`
	ExpectedSalaryMax string `json:"expectedSalaryMax,omitempty"`

	YearsOfExperienceMin string `json:"yearsOfExperienceMin,omitempty"`
	YearsOfExperienceMax string `json:"yearsOfExperienceMax,omitempty"`
	AvgJobTenureMin      string `json:"avgJobTenureMin,omitempty"`
	AvgJobTenureMax      string `json:"avgJobTenureMax,omitempty"`
	PromotionsMin        string `json:"promotionsMin,omitempty"`
	EmployerSizeMin      string `json:"employerSizeMin,omitempty"`
	EmployerSizeMax      string `json:"employerSizeMax,omitempty"`
	ProjectTeamSizeMin   string `json:"projectTeamSizeMin,omitempty"`
	ProjectTeamSizeMax   string `json:"projectTeamSizeMax,omitempty"`

	IsTopDeveloper      *bool `json:"isTopDeveloper,omitempty"`
	IsCurrentlyWorking  *bool `json:"isCurrentlyWorking,omitempty"`
	IsTopper            *bool `json:"isTopper,omitempty"`
	IsCheetah           *bool `json:"isCheetah,omitempty"`
	HasPublishedProject *bool `json:"hasPublishedProject,omitempty"`
	HasCertificationURL *bool `json:"hasCertificationUrl,omitempty"`
	HasAchievements     *bool `json:"hasAchievements,omitempty"`

	Employers        []string `json:"employers,omitempty"`
	ExcludeEmployers []string `json:"excludeEmployers,omitempty"`
	JobTitles        []string `json:"jobTitles,omitempty"`
	EmployerTypes    []string `json:"employerTypes,omitempty"`

	TechStacks              []string `json:"techStacks,omitempty"`
	TechStacksRequireAll    bool     `json:"techStacksRequireAll,omitempty"`
	TechStacksRequireInBoth bool     `json:"techStacksRequireInBoth,omitempty"`

	Domains          []string `json:"domains,omitempty"`
	ShiftTypes       []string `json:"shiftTypes,omitempty"`
	WorkModes        []string `json:"workModes,omitempty"`
	TimeSupportZones []string `json:"timeSupportZones,omitempty"`
	BenefitNames     []string `json:"benefitNames,omitempty"`
	BenefitAmountMin string   `json:"benefitAmountMin,omitempty"`

	TechStackMinYears *TagYearsFilter `json:"techStackMinYears,omitempty"`
	WorkModeMinYears  *TagYearsFilter `json:"workModeMinYears,omitempty"`

	CareerTransition       *CareerTransitionFilter `json:"careerTransition,omitempty"`
	MutualConnection       *MutualConnectionFilter `json:"mutualConnection,omitempty"`
	JoinedProjectFromStart *DateProximityFilter    `json:"joinedProjectFromStart,omitempty"`
	WorkedWithTopDeveloper *DateProximityFilter    `json:"workedWithTopDeveloper,omitempty"`

	UniversityLocationIDs   []string `json:"universityLocationIds,omitempty"`
	UniversityLocationNames []string `json:"universityLocationNames,omitempty"`
	DegreeNames             []string `json:"degreeNames,omitempty"`
	MajorNames              []string `json:"majorNames,omitempty"`
	EducationStartFrom      string   `json:"educationStartFrom,omitempty"`
	EducationEndTo          string   `json:"educationEndTo,omitempty"`

	CertificationIDs   []string `json:"certificationIds,omitempty"`
	CertificationNames []string `json:"certificationNames,omitempty"`
	CertIssuedFrom     string   `json:"certIssuedFrom,omitempty"`
	CertIssuedTo       string   `json:"certIssuedTo,omitempty"`
	CertValidOn        string   `json:"certValidOn,omitempty"`

	ProjectNames      []string `json:"projectNames,omitempty"`
	ProjectTechStacks []string `json:"projectTechStacks,omitempty"`
	ProjectDomains    []string `json:"projectDomains,omitempty"`

	AchievementTitles []string `json:"achievementTitles,omitempty"`

	CreatedFrom string `json:"createdFrom,omitempty"`
	CreatedTo   string `json:"createdTo,omitempty"`
	UpdatedFrom string `json:"updatedFrom,omitempty"`
	UpdatedTo   string `json:"updatedTo,omitempty"`
}

// TagYearsFilter requires, for every named tag, a cumulative stint duration
// of at least MinYears.
type TagYearsFilter struct {
	Tags     []string `json:"tags"`
	MinYears float64  `json:"minYears"`
}

func (f *TagYearsFilter) set() bool {
	return f != nil && len(f.Tags) > 0 && f.MinYears > 0
}

type CareerTransitionFilter struct {
	FromTypes  []string `json:"fromTypes"`
	ToTypes    []string `json:"toTypes"`
	LatestOnly bool     `json:"latestOnly"`
}

func (f *CareerTransitionFilter) set() bool {
	return f != nil && len(f.FromTypes) > 0 && len(f.ToTypes) > 0
}

// MutualConnectionFilter matches candidates whose education or work ranges
// overlap, within the month tolerance, with an in-house employee range of
// the same kind. Refs are resolved by the search service before evaluation.
type MutualConnectionFilter struct {
	ToleranceMonths int                        `json:"toleranceMonths"`
	Refs            []candidate.ReferenceRange `json:"refs,omitempty"`
}

func (f *MutualConnectionFilter) set() bool {
	return f != nil
}

// DateProximityFilter matches candidates with a work-experience start date
// within ToleranceDays of any reference start (or strictly before it when
// AllowBefore is set). Zero tolerance falls back to the 30-day default.
type DateProximityFilter struct {
	ToleranceDays int                        `json:"toleranceDays"`
	AllowBefore   bool                       `json:"allowBefore"`
	Refs          []candidate.ReferenceRange `json:"refs,omitempty"`
}

// Fallback tolerances used when neither the request nor the service
// configuration supplies one.
const (
	DefaultToleranceDays   = 30
	DefaultToleranceMonths = 1
)

func (f *DateProximityFilter) set() bool {
	return f != nil
}

func (f *DateProximityFilter) tolerance() int {
	if f == nil || f.ToleranceDays <= 0 {
		return DefaultToleranceDays
	}
	return f.ToleranceDays
}

// InitialFilters is the template each filter-dialog session starts from.
// Every criterion is unset, so it matches all candidates.
func InitialFilters() CandidateFilters {
	return CandidateFilters{}
}

func setActive(values []string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}
