package scoring

import (
	"github.com/gradecv/gradecv/internal/domain"
)

// Strength thresholds (fractions unless noted).
const (
	strengthRequiredPct    = 80.0
	strengthQuantification = 0.5
	strengthStrongVerbs    = 0.6
)

// bucketIssues groups issues into the four severity buckets, preserving
// detection order within each bucket. Every bucket is non-nil so the wire
// format always carries four arrays.
func bucketIssues(groups ...[]domain.Issue) domain.IssueBuckets {
	b := domain.IssueBuckets{
		Critical:    []domain.Issue{},
		Warnings:    []domain.Issue{},
		Suggestions: []domain.Issue{},
		Info:        []domain.Issue{},
	}
	for _, group := range groups {
		for _, is := range group {
			switch is.Severity {
			case domain.SeverityCritical:
				b.Critical = append(b.Critical, is)
			case domain.SeverityWarning:
				b.Warnings = append(b.Warnings, is)
			case domain.SeveritySuggestion:
				b.Suggestions = append(b.Suggestions, is)
			default:
				b.Info = append(b.Info, is)
			}
		}
	}
	return b
}

// deriveStrengths lists the passing checks worth calling out.
func deriveStrengths(requiredPct float64, requiredTotal int, content ContentStats, contactFields int, redFlags []domain.Issue, hasExperience bool) []string {
	strengths := []string{}
	if requiredTotal > 0 && requiredPct >= strengthRequiredPct {
		strengths = append(strengths, "Strong keyword match with required skills")
	}
	if content.Statements > 0 && content.Quantification >= strengthQuantification {
		strengths = append(strengths, "Achievements are backed by numbers")
	}
	if content.Statements > 0 && content.StrongVerbs >= strengthStrongVerbs {
		strengths = append(strengths, "Bullet points open with strong action verbs")
	}
	if contactFields == domain.ContactFieldCount {
		strengths = append(strengths, "Complete contact information")
	}
	if hasExperience && len(redFlags) == 0 {
		strengths = append(strengths, "No red flags detected")
	}
	return strengths
}
