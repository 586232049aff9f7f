package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"ats/internal/domain/candidate"
	"ats/internal/domain/verification"
)

type Service struct {
	Candidates    candidate.StoreAPI
	Verifications verification.StoreAPI
	ExportDir     string
}

func NewService(candidates candidate.StoreAPI, verifications verification.StoreAPI, exportDir string) *Service {
	return &Service{Candidates: candidates, Verifications: verifications, ExportDir: exportDir}
}

type Summary struct {
	TotalCandidates    int            `json:"totalCandidates"`
	ByStatus           map[string]int `json:"byStatus"`
	VerifiedFields     int            `json:"verifiedFields"`
	UnverifiedFields   int            `json:"unverifiedFields"`
	VerifiedPercentage int            `json:"verifiedPercentage"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	total, err := s.Candidates.Count(ctx)
	if err != nil {
		return Summary{}, err
	}
	byStatus, err := s.Candidates.CountByStatus(ctx)
	if err != nil {
		return Summary{}, err
	}
	verifications, err := s.Verifications.CountByStatus(ctx)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		TotalCandidates:  total,
		ByStatus:         byStatus,
		VerifiedFields:   verifications[string(verification.StatusVerified)],
		UnverifiedFields: verifications[string(verification.StatusUnverified)],
		GeneratedAt:      time.Now().UTC(),
	}
	if fields := summary.VerifiedFields + summary.UnverifiedFields; fields > 0 {
		summary.VerifiedPercentage = 100 * summary.VerifiedFields / fields
	}
	return summary, nil
}

// ExportRoster renders the filtered candidate list as a PDF and returns the
// file path.
func (s *Service) ExportRoster(ctx context.Context, list []candidate.Candidate) (string, error) {
	if err := os.MkdirAll(s.ExportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(s.ExportDir, "roster-"+uuid.NewString()+".pdf")
	now := time.Now().UTC()

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(60, 10, "Candidate Roster")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d candidates", now.Format("2006-01-02 15:04"), len(list)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(60, 7, "Name", "1", 0, "", false, 0, "")
	pdf.CellFormat(40, 7, "City", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Experience", "1", 0, "", false, 0, "")
	pdf.CellFormat(30, 7, "Verified %", "1", 0, "", false, 0, "")
	pdf.CellFormat(70, 7, "Email", "1", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i := range list {
		c := &list[i]
		percentage, err := s.verifiedPercentage(ctx, c.ID)
		if err != nil {
			return "", err
		}
		pdf.CellFormat(60, 6, c.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(40, 6, c.City, "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, string(c.Status), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.1f yrs", candidate.YearsOfExperience(c, now)), "1", 0, "", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d%%", percentage), "1", 0, "", false, 0, "")
		pdf.CellFormat(70, 6, c.Email, "1", 1, "", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}

func (s *Service) verifiedPercentage(ctx context.Context, candidateID string) (int, error) {
	records, err := s.Verifications.ListForEntity(ctx, verification.EntityCandidate, candidateID)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	verified := 0
	for _, record := range records {
		if record.Status == verification.StatusVerified {
			verified++
		}
	}
	return 100 * verified / len(records), nil
}
