package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/pkg/textx"
)

// Red-flag policy thresholds.
const (
	gapWarnMonths     = 9.0
	gapCriticalMonths = 18.0
	hopTenureMonths   = 12.0
	hopMaxShortJobs   = 2
	shortBulletRunes  = 30
)

// Configured phrase lists (pre-normalized).
var (
	vaguePhrases = []string{
		"responsible for",
		"duties included",
		"worked on various",
		"involved in",
		"assisted with",
	}
	buzzwords = []string{
		"team player",
		"hard worker",
		"go getter",
		"self starter",
		"detail oriented",
		"results driven",
		"think outside the box",
	}
)

// DetectRedFlags inspects the resume for date errors, employment gaps, job
// hopping, vague phrasing, extremely short bullets, a photo, and unsupported
// buzzwords. It never blocks scoring; it only emits issues. Entries with
// unparseable dates are reported as critical and excluded from gap and tenure
// calculations. now anchors tenure for ongoing positions.
func DetectRedFlags(doc domain.ResumeDocument, now time.Time) []domain.Issue {
	var issues []domain.Issue

	type span struct {
		start, end time.Time
		label      string
	}
	var timeline []span
	shortTenure := 0

	for _, e := range doc.Experience {
		label := strings.TrimSpace(e.Title + " at " + e.Company)
		if e.StartDate == "" && e.EndDate == "" {
			// undated entry: excluded from timeline math, not an error
			continue
		}
		start, okStart := parseResumeDate(e.StartDate)
		if !okStart {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityCritical,
				Message:  fmt.Sprintf("Unparseable start date %q for %s", e.StartDate, label),
			})
			continue
		}
		end := now
		if !isOngoing(e.EndDate) {
			var okEnd bool
			end, okEnd = parseResumeDate(e.EndDate)
			if !okEnd {
				issues = append(issues, domain.Issue{
					Severity: domain.SeverityCritical,
					Message:  fmt.Sprintf("Unparseable end date %q for %s", e.EndDate, label),
				})
				continue
			}
			if end.Before(start) {
				issues = append(issues, domain.Issue{
					Severity: domain.SeverityCritical,
					Message:  fmt.Sprintf("End date precedes start date for %s", label),
				})
				continue
			}
		}
		if monthsBetween(start, end) < hopTenureMonths {
			shortTenure++
		}
		timeline = append(timeline, span{start: start, end: end, label: label})
	}

	sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].start.Before(timeline[j].start) })
	for i := 1; i < len(timeline); i++ {
		gap := monthsBetween(timeline[i-1].end, timeline[i].start)
		switch {
		case gap > gapCriticalMonths:
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityCritical,
				Message:  fmt.Sprintf("Employment gap of %.0f months before %s", gap, timeline[i].label),
			})
		case gap >= gapWarnMonths:
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Employment gap of %.0f months before %s", gap, timeline[i].label),
			})
		}
	}

	if shortTenure > hopMaxShortJobs {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%d positions held for less than a year reads as job hopping", shortTenure),
		})
	}

	issues = append(issues, phraseFlags(doc)...)

	if doc.Metadata.HasPhoto {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  "Resume contains a photo, which many ATS parsers reject",
		})
	}

	return issues
}

// phraseFlags scans descriptions for vague phrasing, extremely short bullets,
// and buzzwords lacking supporting specifics.
func phraseFlags(doc domain.ResumeDocument) []domain.Issue {
	var issues []domain.Issue
	vagueSeen := map[string]bool{}
	buzzSeen := map[string]bool{}
	shortBullets := 0

	var descriptions []string
	for _, e := range doc.Experience {
		descriptions = append(descriptions, e.Description)
	}
	for _, e := range doc.Education {
		descriptions = append(descriptions, e.Description)
	}

	for _, desc := range descriptions {
		for _, stmt := range textx.SplitStatements(desc) {
			if utf8.RuneCountInString(stmt) < shortBulletRunes {
				shortBullets++
			}
			if hit, ok := textx.ContainsAny(stmt, vaguePhrases); ok {
				vagueSeen[hit] = true
			}
			if hit, ok := textx.ContainsAny(stmt, buzzwords); ok && !isQuantified(stmt) {
				buzzSeen[hit] = true
			}
		}
	}

	for _, p := range vaguePhrases {
		if vagueSeen[p] {
			issues = append(issues, domain.Issue{
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Vague phrasing %q weakens your experience; state what you did and the outcome", p),
			})
		}
	}
	if shortBullets > 0 {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityCritical,
			Message:  fmt.Sprintf("%d extremely short bullet points (under %d characters) carry no information", shortBullets, shortBulletRunes),
		})
	}
	for _, b := range buzzwords {
		if buzzSeen[b] {
			issues = append(issues, domain.Issue{
				Severity: domain.SeveritySuggestion,
				Message:  fmt.Sprintf("Buzzword %q without supporting specifics; back it with an example", b),
			})
		}
	}
	return issues
}
