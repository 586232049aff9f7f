package db

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"ats/internal/domain/auth"
	"ats/internal/domain/candidate"
	"ats/internal/platform/config"
)

// Seed provisions the initial users and, outside production, a small
// set of sample candidates so a fresh environment is searchable.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	users := auth.NewStore(pool)

	if err := ensureUser(ctx, users, cfg.SeedAdminEmail, "Admin", auth.RoleAdmin, cfg.SeedAdminPass); err != nil {
		return err
	}
	if cfg.SeedRecruiterPass != "" {
		if err := ensureUser(ctx, users, cfg.SeedRecruiterEmail, "Recruiter", auth.RoleRecruiter, cfg.SeedRecruiterPass); err != nil {
			return err
		}
	}

	if cfg.SeedSampleData && cfg.Environment != "production" {
		if err := seedSampleData(ctx, pool); err != nil {
			return err
		}
	}

	return nil
}

func ensureUser(ctx context.Context, users *auth.Store, email, name, role, password string) error {
	if strings.TrimSpace(password) == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := users.CreateUser(ctx, email, name, role, hash); err != nil {
		return err
	}
	return nil
}

func seedSampleData(ctx context.Context, pool *pgxpool.Pool) error {
	candidates := candidate.NewStore(pool)

	count, err := candidates.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, c := range sampleCandidates() {
		normalized := c
		candidate.Normalize(&normalized)
		if _, err := candidates.Create(ctx, normalized); err != nil {
			return err
		}
	}

	if err := seedReferenceRanges(ctx, pool); err != nil {
		return err
	}

	slog.Info("sample data seeded")
	return nil
}

func seedReferenceRanges(ctx context.Context, pool *pgxpool.Pool) error {
	type refRange struct {
		name  string
		kind  string
		start string
		end   string
	}
	refs := []refRange{
		{name: "Orion Platform Rewrite", kind: "project", start: "2021-03-01", end: "2022-09-30"},
		{name: "Atlas Data Migration", kind: "project", start: "2023-01-15", end: ""},
		{name: "National University CS 2015", kind: "education", start: "2011-09-01", end: "2015-06-30"},
	}
	for _, ref := range refs {
		var start, end *time.Time
		if ref.start != "" {
			if t, err := time.Parse("2006-01-02", ref.start); err == nil {
				start = &t
			}
		}
		if ref.end != "" {
			if t, err := time.Parse("2006-01-02", ref.end); err == nil {
				end = &t
			}
		}
		_, err := pool.Exec(ctx, `
      INSERT INTO reference_ranges (id, name, kind, start_date, end_date)
      VALUES (gen_random_uuid(), $1, $2, $3, $4)
      ON CONFLICT (name, kind) DO NOTHING
    `, ref.name, ref.kind, start, end)
		if err != nil {
			return err
		}
	}
	return nil
}

func sampleCandidates() []candidate.Candidate {
	date := func(value string) *time.Time {
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil
		}
		return &t
	}
	amount := func(v float64) *float64 { return &v }
	size := func(v int) *int { return &v }

	return []candidate.Candidate{
		{
			Name:           "Ayesha Khan",
			Email:          "ayesha.khan@example.com",
			MobileNo:       "+92-300-1234567",
			City:           "Lahore",
			Status:         candidate.StatusActive,
			Source:         "linkedin",
			PostingTitle:   "Senior Backend Engineer",
			CurrentSalary:  amount(950000),
			ExpectedSalary: amount(1200000),
			IsTopDeveloper: true,
			WorkExperiences: []candidate.WorkExperience{
				{
					EmployerName: "Systems Ltd",
					EmployerType: candidate.EmployerTypeService,
					EmployerSize: size(2500),
					JobTitle:     "Software Engineer",
					StartDate:    date("2017-02-01"),
					EndDate:      date("2020-06-30"),
					TechStacks:   []string{"Go", "PostgreSQL", "Docker"},
					Domains:      []string{"Fintech"},
					ShiftType:    candidate.ShiftMorning,
					WorkMode:     candidate.WorkModeOnsite,
					Benefits: []candidate.Benefit{
						{Name: "Provident Fund", Amount: amount(5), Unit: "percent"},
					},
				},
				{
					EmployerName:     "Systems Ltd",
					EmployerType:     candidate.EmployerTypeService,
					EmployerSize:     size(2500),
					JobTitle:         "Senior Software Engineer",
					StartDate:        date("2020-07-01"),
					EndDate:          date("2023-03-31"),
					TechStacks:       []string{"Go", "Kubernetes", "PostgreSQL"},
					Domains:          []string{"Fintech", "E-commerce"},
					ShiftType:        candidate.ShiftMorning,
					WorkMode:         candidate.WorkModeHybrid,
					TimeSupportZones: []string{"PST", "GMT"},
				},
				{
					EmployerName: "Remotebase",
					EmployerType: candidate.EmployerTypeProduct,
					EmployerSize: size(300),
					JobTitle:     "Staff Engineer",
					StartDate:    date("2023-04-10"),
					TechStacks:   []string{"Go", "AWS", "Terraform"},
					WorkMode:     candidate.WorkModeRemote,
				},
			},
			Projects: []candidate.Project{
				{
					Name:         "Open Ledger",
					TechStacks:   []string{"Go", "PostgreSQL"},
					TeamSize:     size(6),
					IsPublished:  true,
					PublishedURL: "https://github.com/example/open-ledger",
					StartDate:    date("2021-03-01"),
					EndDate:      date("2022-09-30"),
				},
			},
			Educations: []candidate.Education{
				{
					UniversityLocationName: "National University",
					DegreeName:             "BS",
					MajorName:              "Computer Science",
					StartMonth:             date("2011-09-01"),
					EndMonth:               date("2015-06-30"),
					IsTopper:               true,
				},
			},
			Certifications: []candidate.Certification{
				{CertificationName: "CKA", CertificationURL: "https://training.example.com/cka/verify/123"},
			},
		},
		{
			Name:         "Bilal Ahmed",
			Email:        "bilal.ahmed@example.com",
			City:         "Karachi",
			Status:       candidate.StatusPending,
			Source:       "referral",
			PostingTitle: "Frontend Engineer",
			WorkExperiences: []candidate.WorkExperience{
				{
					EmployerName: "10Pearls",
					EmployerType: candidate.EmployerTypeService,
					EmployerSize: size(1500),
					JobTitle:     "Frontend Developer",
					StartDate:    date("2021-01-04"),
					TechStacks:   []string{"TypeScript", "React"},
					ShiftType:    candidate.ShiftEvening,
					WorkMode:     candidate.WorkModeOnsite,
				},
			},
			Educations: []candidate.Education{
				{
					UniversityLocationName: "Karachi University",
					DegreeName:             "BS",
					MajorName:              "Software Engineering",
					StartMonth:             date("2016-09-01"),
					EndMonth:               date("2020-06-30"),
				},
			},
			Achievements: []candidate.Achievement{
				{Title: "Hackathon Winner", Position: "1st", AwardedAt: date("2022-11-12")},
			},
		},
	}
}
