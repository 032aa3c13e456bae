package scoring

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradecv/gradecv/internal/domain"
)

var refNow = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func issueWith(t *testing.T, issues []domain.Issue, sev domain.Severity, substr string) domain.Issue {
	t.Helper()
	for _, is := range issues {
		if is.Severity == sev && strings.Contains(is.Message, substr) {
			return is
		}
	}
	t.Fatalf("no %s issue containing %q in %v", sev, substr, issues)
	return domain.Issue{}
}

func hasIssue(issues []domain.Issue, sev domain.Severity, substr string) bool {
	for _, is := range issues {
		if is.Severity == sev && strings.Contains(is.Message, substr) {
			return true
		}
	}
	return false
}

func TestDetectRedFlags_CleanHistory(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Title: "Engineer", Company: "Acme", StartDate: "2019-01", EndDate: "2022-06",
				Description: "• Led migration of 40 services to managed infrastructure"},
			{Title: "Senior Engineer", Company: "Globex", StartDate: "2022-07", EndDate: "present",
				Description: "• Built the observability stack used by 12 teams"},
		},
	}
	assert.Empty(t, DetectRedFlags(doc, refNow))
}

func TestDetectRedFlags_Gaps(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Title: "Engineer", Company: "Acme", StartDate: "2018-01", EndDate: "2019-01"},
			{Title: "Engineer", Company: "Globex", StartDate: "2019-11", EndDate: "2021-01"},
			{Title: "Engineer", Company: "Initech", StartDate: "2022-09", EndDate: "present"},
		},
	}
	issues := DetectRedFlags(doc, refNow)

	gap := issueWith(t, issues, domain.SeverityWarning, "Employment gap")
	assert.Contains(t, gap.Message, "Globex")

	crit := issueWith(t, issues, domain.SeverityCritical, "Employment gap")
	assert.Contains(t, crit.Message, "Initech")
}

func TestDetectRedFlags_JobHopping(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Title: "Engineer", Company: "A", StartDate: "2021-01", EndDate: "2021-08"},
			{Title: "Engineer", Company: "B", StartDate: "2021-09", EndDate: "2022-03"},
			{Title: "Engineer", Company: "C", StartDate: "2022-04", EndDate: "2022-12"},
			{Title: "Engineer", Company: "D", StartDate: "2023-01", EndDate: "present"},
		},
	}
	issues := DetectRedFlags(doc, refNow)
	assert.True(t, hasIssue(issues, domain.SeverityWarning, "job hopping"))
}

func TestDetectRedFlags_DateErrors(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Title: "Engineer", Company: "Acme", StartDate: "sometime", EndDate: "2020-01"},
			{Title: "Engineer", Company: "Globex", StartDate: "2021-05", EndDate: "2020-05"},
		},
	}
	issues := DetectRedFlags(doc, refNow)

	assert.True(t, hasIssue(issues, domain.SeverityCritical, "Unparseable start date"))
	assert.True(t, hasIssue(issues, domain.SeverityCritical, "End date precedes start date"))
	// broken entries are excluded, so no gap math runs on them
	assert.False(t, hasIssue(issues, domain.SeverityWarning, "Employment gap"))
}

func TestDetectRedFlags_UndatedEntriesSkipped(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Title: "Freelancer", Company: "Self-employed"},
		},
	}
	assert.Empty(t, DetectRedFlags(doc, refNow))
}

func TestDetectRedFlags_Phrasing(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Title: "Engineer", Company: "Acme", Description: strings.Join([]string{
				"• Responsible for maintaining the internal billing platform",
				"• Team player who enjoys collaborating across departments",
				"• Did stuff",
			}, "\n")},
		},
	}
	issues := DetectRedFlags(doc, refNow)

	assert.True(t, hasIssue(issues, domain.SeverityWarning, "responsible for"))
	assert.True(t, hasIssue(issues, domain.SeveritySuggestion, "team player"))
	short := issueWith(t, issues, domain.SeverityCritical, "short bullet")
	assert.Contains(t, short.Message, "1 ")
}

func TestDetectRedFlags_BuzzwordWithNumbersPasses(t *testing.T) {
	doc := domain.ResumeDocument{
		Experience: []domain.ExperienceEntry{
			{Description: "• Team player who onboarded 14 new hires across 3 offices"},
		},
	}
	issues := DetectRedFlags(doc, refNow)
	assert.False(t, hasIssue(issues, domain.SeveritySuggestion, "team player"))
}

func TestDetectRedFlags_Photo(t *testing.T) {
	doc := domain.ResumeDocument{Metadata: domain.Metadata{HasPhoto: true}}
	issues := DetectRedFlags(doc, refNow)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "photo")
}

func TestParseResumeDate_Layouts(t *testing.T) {
	for _, s := range []string{"2020-05-01", "2020-05", "05/2020", "5/2020", "May 2020", "2020"} {
		got, ok := parseResumeDate(s)
		require.True(t, ok, s)
		assert.Equal(t, 2020, got.Year(), s)
	}
	_, ok := parseResumeDate("whenever")
	assert.False(t, ok)
}

func TestIsOngoing(t *testing.T) {
	for _, s := range []string{"", "Present", "current", " NOW ", "ongoing"} {
		assert.True(t, isOngoing(s), s)
	}
	assert.False(t, isOngoing("2020-01"))
}
