package candidate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("candidate not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const candidateColumns = `
    id, name, COALESCE(city, ''), COALESCE(cnic, ''), COALESCE(mobile_no, ''),
    COALESCE(email, ''), COALESCE(linkedin_url, ''), COALESCE(github_url, ''),
    COALESCE(posting_title, ''), COALESCE(source, ''), COALESCE(personality_type, ''),
    current_salary, expected_salary, is_top_developer, status, created_at, updated_at`

func (s *Store) Count(ctx context.Context) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `SELECT COUNT(1) FROM candidates`).Scan(&total)
	return total, err
}

func (s *Store) List(ctx context.Context, limit, offset int) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+candidateColumns+`
    FROM candidates
    ORDER BY created_at, id
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, err
	}
	return s.attachChildren(ctx, candidates)
}

func (s *Store) ListAll(ctx context.Context) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+candidateColumns+`
    FROM candidates
    ORDER BY created_at, id
  `)
	if err != nil {
		return nil, err
	}
	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, err
	}
	return s.attachChildren(ctx, candidates)
}

func (s *Store) Get(ctx context.Context, candidateID string) (*Candidate, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+candidateColumns+`
    FROM candidates
    WHERE id = $1
  `, candidateID)
	if err != nil {
		return nil, err
	}
	candidates, err := scanCandidates(rows)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNotFound
	}
	candidates, err = s.attachChildren(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return &candidates[0], nil
}

func scanCandidates(rows pgx.Rows) ([]Candidate, error) {
	defer rows.Close()
	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(
			&c.ID, &c.Name, &c.City, &c.CNIC, &c.MobileNo, &c.Email,
			&c.LinkedinURL, &c.GithubURL, &c.PostingTitle, &c.Source, &c.PersonalityType,
			&c.CurrentSalary, &c.ExpectedSalary, &c.IsTopDeveloper, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) attachChildren(ctx context.Context, candidates []Candidate) ([]Candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}
	ids := make([]string, len(candidates))
	index := make(map[string]*Candidate, len(candidates))
	for i := range candidates {
		ids[i] = candidates[i].ID
		index[candidates[i].ID] = &candidates[i]
	}

	if err := s.attachWorkExperiences(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := s.attachProjects(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := s.attachEducations(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := s.attachCertifications(ctx, ids, index); err != nil {
		return nil, err
	}
	if err := s.attachAchievements(ctx, ids, index); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *Store) attachWorkExperiences(ctx context.Context, ids []string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, candidate_id, employer_name, COALESCE(employer_type, ''), employer_size,
           COALESCE(job_title, ''), start_date, end_date,
           tech_stacks, domains, COALESCE(shift_type, ''), COALESCE(work_mode, ''), time_support_zones
    FROM work_experiences
    WHERE candidate_id = ANY($1)
    ORDER BY candidate_id, position, id
  `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	weIDs := make([]string, 0)
	weOwner := make(map[string]string)
	for rows.Next() {
		var we WorkExperience
		var candidateID string
		if err := rows.Scan(
			&we.ID, &candidateID, &we.EmployerName, &we.EmployerType, &we.EmployerSize,
			&we.JobTitle, &we.StartDate, &we.EndDate,
			&we.TechStacks, &we.Domains, &we.ShiftType, &we.WorkMode, &we.TimeSupportZones,
		); err != nil {
			return err
		}
		if owner, ok := index[candidateID]; ok {
			owner.WorkExperiences = append(owner.WorkExperiences, we)
			weIDs = append(weIDs, we.ID)
			weOwner[we.ID] = candidateID
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(weIDs) == 0 {
		return nil
	}
	if err := s.attachBenefits(ctx, weIDs, weOwner, index); err != nil {
		return err
	}
	return s.attachStintProjects(ctx, weIDs, weOwner, index)
}

func (s *Store) attachBenefits(ctx context.Context, weIDs []string, weOwner map[string]string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, work_experience_id, name, amount, COALESCE(unit, '')
    FROM work_experience_benefits
    WHERE work_experience_id = ANY($1)
    ORDER BY work_experience_id, position, id
  `, weIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var b Benefit
		var weID string
		if err := rows.Scan(&b.ID, &weID, &b.Name, &b.Amount, &b.Unit); err != nil {
			return err
		}
		owner := index[weOwner[weID]]
		if owner == nil {
			continue
		}
		for i := range owner.WorkExperiences {
			if owner.WorkExperiences[i].ID == weID {
				owner.WorkExperiences[i].Benefits = append(owner.WorkExperiences[i].Benefits, b)
				break
			}
		}
	}
	return rows.Err()
}

func (s *Store) attachStintProjects(ctx context.Context, weIDs []string, weOwner map[string]string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, work_experience_id, project_name, COALESCE(contribution_notes, '')
    FROM work_experience_projects
    WHERE work_experience_id = ANY($1)
    ORDER BY work_experience_id, position, id
  `, weIDs)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pe ProjectExperience
		var weID string
		if err := rows.Scan(&pe.ID, &weID, &pe.ProjectName, &pe.ContributionNotes); err != nil {
			return err
		}
		owner := index[weOwner[weID]]
		if owner == nil {
			continue
		}
		for i := range owner.WorkExperiences {
			if owner.WorkExperiences[i].ID == weID {
				owner.WorkExperiences[i].Projects = append(owner.WorkExperiences[i].Projects, pe)
				break
			}
		}
	}
	return rows.Err()
}

func (s *Store) attachProjects(ctx context.Context, ids []string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, candidate_id, name, COALESCE(description, ''), tech_stacks, domains,
           team_size, is_published, COALESCE(published_url, ''), start_date, end_date
    FROM candidate_projects
    WHERE candidate_id = ANY($1)
    ORDER BY candidate_id, position, id
  `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p Project
		var candidateID string
		if err := rows.Scan(
			&p.ID, &candidateID, &p.Name, &p.Description, &p.TechStacks, &p.Domains,
			&p.TeamSize, &p.IsPublished, &p.PublishedURL, &p.StartDate, &p.EndDate,
		); err != nil {
			return err
		}
		if owner, ok := index[candidateID]; ok {
			owner.Projects = append(owner.Projects, p)
		}
	}
	return rows.Err()
}

func (s *Store) attachEducations(ctx context.Context, ids []string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, candidate_id, COALESCE(university_location_id, ''), COALESCE(university_location_name, ''),
           COALESCE(degree_name, ''), COALESCE(major_name, ''), start_month, end_month,
           COALESCE(grades, ''), is_topper, is_cheetah
    FROM educations
    WHERE candidate_id = ANY($1)
    ORDER BY candidate_id, position, id
  `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var edu Education
		var candidateID string
		if err := rows.Scan(
			&edu.ID, &candidateID, &edu.UniversityLocationID, &edu.UniversityLocationName,
			&edu.DegreeName, &edu.MajorName, &edu.StartMonth, &edu.EndMonth,
			&edu.Grades, &edu.IsTopper, &edu.IsCheetah,
		); err != nil {
			return err
		}
		if owner, ok := index[candidateID]; ok {
			owner.Educations = append(owner.Educations, edu)
		}
	}
	return rows.Err()
}

func (s *Store) attachCertifications(ctx context.Context, ids []string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, candidate_id, COALESCE(certification_id, ''), COALESCE(certification_name, ''),
           issue_date, expiry_date, COALESCE(certification_url, '')
    FROM certifications
    WHERE candidate_id = ANY($1)
    ORDER BY candidate_id, position, id
  `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cert Certification
		var candidateID string
		if err := rows.Scan(
			&cert.ID, &candidateID, &cert.CertificationID, &cert.CertificationName,
			&cert.IssueDate, &cert.ExpiryDate, &cert.CertificationURL,
		); err != nil {
			return err
		}
		if owner, ok := index[candidateID]; ok {
			owner.Certifications = append(owner.Certifications, cert)
		}
	}
	return rows.Err()
}

func (s *Store) attachAchievements(ctx context.Context, ids []string, index map[string]*Candidate) error {
	rows, err := s.DB.Query(ctx, `
    SELECT id, candidate_id, title, COALESCE(position_label, ''), awarded_at
    FROM achievements
    WHERE candidate_id = ANY($1)
    ORDER BY candidate_id, position, id
  `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a Achievement
		var candidateID string
		if err := rows.Scan(&a.ID, &candidateID, &a.Title, &a.Position, &a.AwardedAt); err != nil {
			return err
		}
		if owner, ok := index[candidateID]; ok {
			owner.Achievements = append(owner.Achievements, a)
		}
	}
	return rows.Err()
}

func (s *Store) Create(ctx context.Context, c Candidate) (string, error) {
	Normalize(&c)
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
    INSERT INTO candidates (
      id, name, city, cnic, mobile_no, email, linkedin_url, github_url,
      posting_title, source, personality_type, current_salary, expected_salary,
      is_top_developer, status, created_at, updated_at
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$16)
  `, c.ID, c.Name, c.City, c.CNIC, c.MobileNo, c.Email, c.LinkedinURL, c.GithubURL,
		c.PostingTitle, c.Source, c.PersonalityType, c.CurrentSalary, c.ExpectedSalary,
		c.IsTopDeveloper, c.Status, now)
	if err != nil {
		return "", err
	}

	if err := insertChildren(ctx, tx, c); err != nil {
		return "", err
	}
	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return c.ID, nil
}

// Update replaces the candidate row and its child collections. Child ids
// supplied by the caller are preserved; new children get fresh ids, so ids
// are never reused across elements.
func (s *Store) Update(ctx context.Context, candidateID string, c Candidate) error {
	Normalize(&c)
	c.ID = candidateID

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE candidates SET
      name = $2, city = $3, cnic = $4, mobile_no = $5, email = $6,
      linkedin_url = $7, github_url = $8, posting_title = $9, source = $10,
      personality_type = $11, current_salary = $12, expected_salary = $13,
      is_top_developer = $14, status = $15, updated_at = now()
    WHERE id = $1
  `, c.ID, c.Name, c.City, c.CNIC, c.MobileNo, c.Email, c.LinkedinURL, c.GithubURL,
		c.PostingTitle, c.Source, c.PersonalityType, c.CurrentSalary, c.ExpectedSalary,
		c.IsTopDeveloper, c.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	for _, table := range []string{"work_experiences", "candidate_projects", "educations", "certifications", "achievements"} {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE candidate_id = $1`, c.ID); err != nil {
			return err
		}
	}
	if err := insertChildren(ctx, tx, c); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertChildren(ctx context.Context, tx pgx.Tx, c Candidate) error {
	for pos, we := range c.WorkExperiences {
		if we.ID == "" {
			we.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
      INSERT INTO work_experiences (
        id, candidate_id, employer_name, employer_type, employer_size, job_title,
        start_date, end_date, tech_stacks, domains, shift_type, work_mode,
        time_support_zones, position
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
    `, we.ID, c.ID, we.EmployerName, we.EmployerType, we.EmployerSize, we.JobTitle,
			we.StartDate, we.EndDate, we.TechStacks, we.Domains, we.ShiftType, we.WorkMode,
			we.TimeSupportZones, pos)
		if err != nil {
			return err
		}
		for bpos, b := range we.Benefits {
			if b.ID == "" {
				b.ID = uuid.NewString()
			}
			_, err := tx.Exec(ctx, `
        INSERT INTO work_experience_benefits (id, work_experience_id, name, amount, unit, position)
        VALUES ($1,$2,$3,$4,$5,$6)
      `, b.ID, we.ID, b.Name, b.Amount, b.Unit, bpos)
			if err != nil {
				return err
			}
		}
		for ppos, pe := range we.Projects {
			if pe.ID == "" {
				pe.ID = uuid.NewString()
			}
			_, err := tx.Exec(ctx, `
        INSERT INTO work_experience_projects (id, work_experience_id, project_name, contribution_notes, position)
        VALUES ($1,$2,$3,$4,$5)
      `, pe.ID, we.ID, pe.ProjectName, pe.ContributionNotes, ppos)
			if err != nil {
				return err
			}
		}
	}

	for pos, p := range c.Projects {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
      INSERT INTO candidate_projects (
        id, candidate_id, name, description, tech_stacks, domains, team_size,
        is_published, published_url, start_date, end_date, position
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, p.ID, c.ID, p.Name, p.Description, p.TechStacks, p.Domains, p.TeamSize,
			p.IsPublished, p.PublishedURL, p.StartDate, p.EndDate, pos)
		if err != nil {
			return err
		}
	}

	for pos, edu := range c.Educations {
		if edu.ID == "" {
			edu.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
      INSERT INTO educations (
        id, candidate_id, university_location_id, university_location_name,
        degree_name, major_name, start_month, end_month, grades, is_topper,
        is_cheetah, position
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, edu.ID, c.ID, edu.UniversityLocationID, edu.UniversityLocationName,
			edu.DegreeName, edu.MajorName, edu.StartMonth, edu.EndMonth, edu.Grades,
			edu.IsTopper, edu.IsCheetah, pos)
		if err != nil {
			return err
		}
	}

	for pos, cert := range c.Certifications {
		if cert.ID == "" {
			cert.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
      INSERT INTO certifications (
        id, candidate_id, certification_id, certification_name, issue_date,
        expiry_date, certification_url, position
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, cert.ID, c.ID, cert.CertificationID, cert.CertificationName, cert.IssueDate,
			cert.ExpiryDate, cert.CertificationURL, pos)
		if err != nil {
			return err
		}
	}

	for pos, a := range c.Achievements {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		_, err := tx.Exec(ctx, `
      INSERT INTO achievements (id, candidate_id, title, position_label, awarded_at, position)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, a.ID, c.ID, a.Title, a.Position, a.AwardedAt, pos)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, `SELECT status, COUNT(1) FROM candidates GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}

func (s *Store) ReferenceRanges(ctx context.Context, kind string) ([]ReferenceRange, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, kind, start_date, end_date
    FROM reference_ranges
    WHERE kind = $1 OR $1 = ''
    ORDER BY name, start_date
  `, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReferenceRange
	for rows.Next() {
		var ref ReferenceRange
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Kind, &ref.Start, &ref.End); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
