package scoring

import (
	"fmt"
	"strings"

	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/pkg/textx"
)

// Content-quality thresholds below which issues are raised.
const (
	quantificationWarnBelow = 0.15
	bulletDensityWarnBelow  = 0.30
	strongVerbWarnBelow     = 0.25
	weakOpenerWarnAt        = 0.30

	// targetStatementsPerEntry anchors the bullet-density fraction: an entry
	// with this many bullet statements counts as fully fleshed out.
	targetStatementsPerEntry = 3
)

// weakOpeners are the passive first words that drag action-verb strength down.
var weakOpeners = map[string]bool{
	"responsible": true,
	"helped":      true,
	"worked":      true,
	"assisted":    true,
	"participated": true,
	"involved":    true,
	"was":         true,
	"were":        true,
	"duties":      true,
	"tasked":      true,
}

// quantifier tokens beyond plain digits: scale and money words.
var scaleWords = []string{"percent", "million", "billion", "thousand"}

// ContentStats holds the three content-quality fractions, each in [0,1].
type ContentStats struct {
	Quantification float64
	BulletDensity  float64
	StrongVerbs    float64
	Statements     int
	Entries        int
}

// AnalyzeContent scans experience and education descriptions for
// quantification, bullet density and action-verb strength, raising issues
// when a fraction falls below its threshold.
func AnalyzeContent(doc domain.ResumeDocument, profile domain.RoleProfile) (ContentStats, []domain.Issue) {
	verbSet := make(map[string]bool, len(profile.ExpectedActionVerbs))
	for _, v := range profile.ExpectedActionVerbs {
		verbSet[textx.Normalize(v)] = true
	}

	var stats ContentStats
	var statements []string
	for _, e := range doc.Experience {
		stats.Entries++
		statements = append(statements, textx.SplitStatements(e.Description)...)
	}
	for _, e := range doc.Education {
		stats.Entries++
		statements = append(statements, textx.SplitStatements(e.Description)...)
	}
	stats.Statements = len(statements)
	if stats.Statements == 0 {
		return stats, nil
	}

	quantified, strong, weak := 0, 0, 0
	for _, stmt := range statements {
		if isQuantified(stmt) {
			quantified++
		}
		switch {
		case verbSet[textx.FirstWord(stmt)]:
			strong++
		case isWeakOpener(stmt):
			weak++
		}
	}
	stats.Quantification = float64(quantified) / float64(stats.Statements)
	stats.StrongVerbs = float64(strong) / float64(stats.Statements)
	stats.BulletDensity = clamp01(float64(stats.Statements) / float64(stats.Entries*targetStatementsPerEntry))

	var issues []domain.Issue
	if stats.Quantification < quantificationWarnBelow {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("Only %.0f%% of bullet points include measurable results; add numbers, percentages, or scale", stats.Quantification*100),
		})
	}
	if stats.BulletDensity < bulletDensityWarnBelow {
		issues = append(issues, domain.Issue{
			Severity: domain.SeveritySuggestion,
			Message:  fmt.Sprintf("Descriptions are thin: aim for about %d bullet points per entry", targetStatementsPerEntry),
		})
	}
	if stats.StrongVerbs < strongVerbWarnBelow {
		issues = append(issues, domain.Issue{
			Severity: domain.SeveritySuggestion,
			Message:  "Start more bullet points with strong action verbs expected for this role",
		})
	}
	if weakFrac := float64(weak) / float64(stats.Statements); weakFrac >= weakOpenerWarnAt {
		issues = append(issues, domain.Issue{
			Severity: domain.SeverityWarning,
			Message:  fmt.Sprintf("%.0f%% of bullet points open with passive phrasing such as \"responsible for\" or \"helped\"", weakFrac*100),
		})
	}
	return stats, issues
}

// isQuantified reports whether a statement carries a numeral, percentage,
// currency symbol, or scale word.
func isQuantified(stmt string) bool {
	if strings.ContainsAny(stmt, "0123456789%$€£") {
		return true
	}
	norm := textx.Normalize(stmt)
	for _, w := range scaleWords {
		if strings.Contains(norm, w) {
			return true
		}
	}
	return false
}

// isWeakOpener reports whether the statement starts with a passive opener.
func isWeakOpener(stmt string) bool {
	return weakOpeners[textx.FirstWord(stmt)]
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
