package candidate

import "time"

type Status string

const (
	StatusActive      Status = "active"
	StatusPending     Status = "pending"
	StatusInterviewed Status = "interviewed"
	StatusShortlisted Status = "shortlisted"
	StatusHired       Status = "hired"
	StatusRejected    Status = "rejected"
	StatusWithdrawn   Status = "withdrawn"
)

var Statuses = []Status{
	StatusActive,
	StatusPending,
	StatusInterviewed,
	StatusShortlisted,
	StatusHired,
	StatusRejected,
	StatusWithdrawn,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

const (
	ShiftMorning  = "morning"
	ShiftEvening  = "evening"
	ShiftNight    = "night"
	ShiftRotating = "rotating"

	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"

	EmployerTypeProduct    = "product"
	EmployerTypeService    = "service"
	EmployerTypeStartup    = "startup"
	EmployerTypeEnterprise = "enterprise"
	EmployerTypeAgency     = "agency"
)

type Candidate struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	City            string    `json:"city"`
	CNIC            string    `json:"cnic"`
	MobileNo        string    `json:"mobileNo"`
	Email           string    `json:"email"`
	LinkedinURL     string    `json:"linkedinUrl"`
	GithubURL       string    `json:"githubUrl"`
	PostingTitle    string    `json:"postingTitle"`
	Source          string    `json:"source"`
	PersonalityType string    `json:"personalityType"`
	CurrentSalary   *float64  `json:"currentSalary,omitempty"`
	ExpectedSalary  *float64  `json:"expectedSalary,omitempty"`
	IsTopDeveloper  bool      `json:"isTopDeveloper"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	WorkExperiences []WorkExperience `json:"workExperiences"`
	Projects        []Project        `json:"projects"`
	Educations      []Education      `json:"educations"`
	Certifications  []Certification  `json:"certifications"`
	Achievements    []Achievement    `json:"achievements"`
}

// WorkExperience is one employment stint. A nil EndDate means the candidate
// is currently working there.
type WorkExperience struct {
	ID               string              `json:"id"`
	EmployerName     string              `json:"employerName"`
	EmployerType     string              `json:"employerType,omitempty"`
	EmployerSize     *int                `json:"employerSize,omitempty"`
	JobTitle         string              `json:"jobTitle"`
	StartDate        *time.Time          `json:"startDate,omitempty"`
	EndDate          *time.Time          `json:"endDate,omitempty"`
	TechStacks       []string            `json:"techStacks"`
	Domains          []string            `json:"domains"`
	ShiftType        string              `json:"shiftType,omitempty"`
	WorkMode         string              `json:"workMode,omitempty"`
	TimeSupportZones []string            `json:"timeSupportZones"`
	Benefits         []Benefit           `json:"benefits"`
	Projects         []ProjectExperience `json:"projects"`
}

type Benefit struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Amount *float64 `json:"amount"`
	Unit   string   `json:"unit,omitempty"`
}

// ProjectExperience is a project performed during a specific employment, as
// opposed to the candidate's standalone Projects.
type ProjectExperience struct {
	ID                string `json:"id"`
	ProjectName       string `json:"projectName"`
	ContributionNotes string `json:"contributionNotes"`
}

type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	TechStacks   []string   `json:"techStacks"`
	Domains      []string   `json:"domains"`
	TeamSize     *int       `json:"teamSize,omitempty"`
	IsPublished  bool       `json:"isPublished"`
	PublishedURL string     `json:"publishedUrl,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

// Education dates are month-granularity; day components are normalized to
// the first of the month at ingestion.
type Education struct {
	ID                     string     `json:"id"`
	UniversityLocationID   string     `json:"universityLocationId"`
	UniversityLocationName string     `json:"universityLocationName"`
	DegreeName             string     `json:"degreeName"`
	MajorName              string     `json:"majorName"`
	StartMonth             *time.Time `json:"startMonth,omitempty"`
	EndMonth               *time.Time `json:"endMonth,omitempty"`
	Grades                 string     `json:"grades,omitempty"`
	IsTopper               bool       `json:"isTopper"`
	IsCheetah              bool       `json:"isCheetah"`
}

type Certification struct {
	ID                string     `json:"id"`
	CertificationID   string     `json:"certificationId"`
	CertificationName string     `json:"certificationName"`
	IssueDate         *time.Time `json:"issueDate,omitempty"`
	ExpiryDate        *time.Time `json:"expiryDate,omitempty"`
	CertificationURL  string     `json:"certificationUrl,omitempty"`
}

type Achievement struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Position  string     `json:"position,omitempty"`
	AwardedAt *time.Time `json:"awardedAt,omitempty"`
}
