package scoring

import (
	"fmt"
	"strings"

	"github.com/gradecv/gradecv/internal/domain"
)

// Healthy ranges for section entry counts.
const (
	expHealthyMin    = 2
	expHealthyMax    = 8
	eduHealthyMin    = 1
	eduHealthyMax    = 3
	skillsHealthyMin = 5
	skillsHealthyMax = 20
)

// Internal format scale point allocation (sums to 100).
const (
	sectionPoints      = 10.0 // per canonical section, 4 sections
	contactPoints      = 30.0
	plausibilityPoints = 10.0 // per count check, 3 checks
	overCountPoints    = 7.0  // partial credit when a count exceeds its healthy range
)

// FormatReport carries the validator's findings on its internal 0-100 scale
// plus the separate 0-10 structure grading used by ATS mode.
type FormatReport struct {
	InternalScore   float64 // 0-100, rescaled per mode by the aggregator
	StructureScore  float64 // 0-10
	ContactFields   int
	MissingSections []string
	Issues          []domain.Issue
}

// ValidateFormat checks section presence, contact completeness and entry-count
// plausibility. Missing a canonical section is always critical; incomplete
// contact details are a suggestion; counts outside the healthy range are a
// warning (too few) or an info note (too many).
func ValidateFormat(doc domain.ResumeDocument) FormatReport {
	rep := FormatReport{ContactFields: doc.Contact.PopulatedFields()}

	sections := []struct {
		name    string
		present bool
	}{
		{"contact", rep.ContactFields > 0},
		{"experience", len(doc.Experience) > 0},
		{"education", len(doc.Education) > 0},
		{"skills", len(doc.Skills) > 0},
	}
	for _, s := range sections {
		if s.present {
			rep.InternalScore += sectionPoints
			continue
		}
		rep.MissingSections = append(rep.MissingSections, s.name)
		rep.Issues = append(rep.Issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("Missing required section: %s", s.name),
		})
	}

	rep.InternalScore += contactPoints * float64(rep.ContactFields) / domain.ContactFieldCount
	if rep.ContactFields > 0 && rep.ContactFields < domain.ContactFieldCount {
		rep.Issues = append(rep.Issues, domain.Issue{
			Severity: domain.SeveritySuggestion,
			Message:  fmt.Sprintf("Contact details incomplete: %d of %d fields present", rep.ContactFields, domain.ContactFieldCount),
		})
	}

	checks := []struct {
		name     string
		count    int
		min, max int
		unit     string
	}{
		{"experience", len(doc.Experience), expHealthyMin, expHealthyMax, "entries"},
		{"education", len(doc.Education), eduHealthyMin, eduHealthyMax, "entries"},
		{"skills", len(doc.Skills), skillsHealthyMin, skillsHealthyMax, "skills"},
	}
	for _, c := range checks {
		pts, issue := plausibility(c.name, c.count, c.min, c.max, c.unit)
		rep.InternalScore += pts
		if issue != nil {
			rep.Issues = append(rep.Issues, *issue)
		}
	}

	rep.StructureScore = structureScore(doc)
	return rep
}

// plausibility grades one entry count against its healthy range. A count of
// zero earns nothing and raises no issue here - the missing-section critical
// already covers it.
func plausibility(name string, count, healthyMin, healthyMax int, unit string) (float64, *domain.Issue) {
	switch {
	case count == 0:
		return 0, nil
	case count < healthyMin:
		return plausibilityPoints * float64(count) / float64(healthyMin), &domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Only %d %s %s listed; %d-%d reads as healthy", count, name, unit, healthyMin, healthyMax),
		}
	case count > healthyMax:
		return overCountPoints, &domain.Issue{
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("%s section lists %d %s; trimming below %d keeps it scannable", strings.ToUpper(name[:1])+name[1:], count, unit, healthyMax+1),
		}
	default:
		return plausibilityPoints, nil
	}
}

// Structure grading (ATS mode, 0-10): experience depth 4, education presence 2,
// skills breadth 4.
const (
	structExpPoints    = 4.0
	structExpFullAt    = 4
	structEduPoints    = 2.0
	structSkillsPoints = 4.0
	structSkillsFullAt = 8
)

func structureScore(doc domain.ResumeDocument) float64 {
	score := 0.0
	if n := len(doc.Experience); n >= structExpFullAt {
		score += structExpPoints
	} else {
		score += structExpPoints * float64(n) / structExpFullAt
	}
	if len(doc.Education) > 0 {
		score += structEduPoints
	}
	switch n := len(doc.Skills); {
	case n >= structSkillsFullAt && n <= skillsHealthyMax:
		score += structSkillsPoints
	case n > skillsHealthyMax:
		score += structSkillsPoints * 0.75
	default:
		score += structSkillsPoints * float64(n) / structSkillsFullAt
	}
	return score
}
