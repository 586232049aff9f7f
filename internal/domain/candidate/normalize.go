package candidate

import "strings"

// NormalizeTags trims entries and drops case-insensitive duplicates while
// preserving the casing of the first occurrence.
func NormalizeTags(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeEmployer is the grouping key for tenure and promotion metrics.
func NormalizeEmployer(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize applies ingestion-time cleanup to a candidate record.
func Normalize(c *Candidate) {
	for i := range c.WorkExperiences {
		we := &c.WorkExperiences[i]
		we.EmployerName = strings.TrimSpace(we.EmployerName)
		we.JobTitle = strings.TrimSpace(we.JobTitle)
		we.TechStacks = NormalizeTags(we.TechStacks)
		we.Domains = NormalizeTags(we.Domains)
		we.TimeSupportZones = NormalizeTags(we.TimeSupportZones)
	}
	for i := range c.Projects {
		p := &c.Projects[i]
		p.Name = strings.TrimSpace(p.Name)
		p.TechStacks = NormalizeTags(p.TechStacks)
		p.Domains = NormalizeTags(p.Domains)
	}
	for i := range c.Educations {
		edu := &c.Educations[i]
		if edu.StartMonth != nil {
			month := monthStart(*edu.StartMonth)
			edu.StartMonth = &month
		}
		if edu.EndMonth != nil {
			month := monthStart(*edu.EndMonth)
			edu.EndMonth = &month
		}
	}
}
