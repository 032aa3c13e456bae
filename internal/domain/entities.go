// Package domain defines the core entities of the resume scoring engine.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConfig          = errors.New("configuration error")
	ErrInternal        = errors.New("internal error")
)

// Mode selects the scoring strategy.
type Mode string

const (
	ModeAuto         Mode = "auto"
	ModeATS          Mode = "ats_simulation"
	ModeQualityCoach Mode = "quality_coach"
)

// ParseMode normalizes and validates a mode string. An empty string means auto.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ModeAuto):
		return ModeAuto, nil
	case string(ModeATS):
		return ModeATS, nil
	case string(ModeQualityCoach):
		return ModeQualityCoach, nil
	default:
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, raw)
	}
}

// Severity is the closed four-level issue classification.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
	SeverityInfo       Severity = "info"
)

// Issue is a single actionable finding raised during scoring.
// On the wire an issue is a [severity, message] pair.
type Issue struct {
	Severity Severity
	Message  string
}

// MarshalJSON emits the issue as a two-element array.
func (i Issue) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{string(i.Severity), i.Message})
}

// UnmarshalJSON accepts the two-element array form.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	i.Severity = Severity(pair[0])
	i.Message = pair[1]
	return nil
}

// Contact holds the candidate's contact block. All fields are optional.
type Contact struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Website  string `json:"website,omitempty" yaml:"website,omitempty"`
}

// ContactFieldCount is the number of contact fields completeness is measured against.
const ContactFieldCount = 6

// PopulatedFields counts non-empty contact fields out of ContactFieldCount.
func (c Contact) PopulatedFields() int {
	n := 0
	for _, v := range []string{c.Name, c.Email, c.Phone, c.Location, c.LinkedIn, c.Website} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}

// ExperienceEntry is one job in the experience section.
type ExperienceEntry struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Company     string `json:"company,omitempty" yaml:"company,omitempty"`
	StartDate   string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// EducationEntry is one entry in the education section.
type EducationEntry struct {
	Degree      string `json:"degree,omitempty" yaml:"degree,omitempty"`
	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`
	StartDate   string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Metadata carries parser-level facts about the uploaded document.
type Metadata struct {
	PageCount  int    `json:"pageCount,omitempty" yaml:"pageCount,omitempty"`
	WordCount  int    `json:"wordCount,omitempty" yaml:"wordCount,omitempty"`
	HasPhoto   bool   `json:"hasPhoto,omitempty" yaml:"hasPhoto,omitempty"`
	FileFormat string `json:"fileFormat,omitempty" yaml:"fileFormat,omitempty"`
}

// ResumeDocument is the immutable input to a scoring call. The engine never
// mutates it; absent fields score as empty.
type ResumeDocument struct {
	Contact        Contact           `json:"contact" yaml:"contact"`
	Experience     []ExperienceEntry `json:"experience,omitempty" yaml:"experience,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty" yaml:"education,omitempty"`
	Skills         []string          `json:"skills,omitempty" yaml:"skills,omitempty"`
	Certifications []string          `json:"certifications,omitempty" yaml:"certifications,omitempty"`
	Metadata       Metadata          `json:"metadata" yaml:"metadata"`
}

// RoleProfile is the reference keyword/verb set for a (role, level) pair.
// Loaded once at startup and read-only for the process lifetime.
type RoleProfile struct {
	Role                string   `json:"role" yaml:"role" validate:"required"`
	Level               string   `json:"level" yaml:"level"`
	RequiredKeywords    []string `json:"requiredKeywords" yaml:"requiredKeywords"`
	PreferredKeywords   []string `json:"preferredKeywords" yaml:"preferredKeywords"`
	ExpectedActionVerbs []string `json:"expectedActionVerbs" yaml:"expectedActionVerbs" validate:"min=1"`
}

// RoleDirectory resolves a (role, level) pair to a profile, falling back to a
// generic profile for unknown or absent inputs. Implementations must be safe
// for concurrent reads.
type RoleDirectory interface {
	Resolve(role, level string) RoleProfile
}

// KeywordMatchResult reports how a single keyword matched the resume text.
type KeywordMatchResult struct {
	Keyword     string  `json:"keyword"`
	Matched     bool    `json:"matched"`
	Similarity  float64 `json:"similarity"`
	MatchedText string  `json:"matchedText,omitempty"`
}

// CategoryScore is one line of the breakdown.
type CategoryScore struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Issues   []Issue `json:"issues"`
}

// ScoreBreakdown maps category name to its score line. The category set is
// fixed per mode and the maxScores always sum to 100.
type ScoreBreakdown map[string]CategoryScore

// IssueBuckets groups issues by severity. Order within a bucket is detection order.
type IssueBuckets struct {
	Critical    []Issue `json:"critical"`
	Warnings    []Issue `json:"warnings"`
	Suggestions []Issue `json:"suggestions"`
	Info        []Issue `json:"info"`
}

// ATSKeywordDetails is the keywordDetails payload in ATS simulation mode.
type ATSKeywordDetails struct {
	RequiredTotal    int      `json:"requiredTotal"`
	RequiredMatched  int      `json:"requiredMatched"`
	RequiredPct      float64  `json:"requiredPct"`
	PreferredTotal   int      `json:"preferredTotal"`
	PreferredMatched int      `json:"preferredMatched"`
	PreferredPct     float64  `json:"preferredPct"`
	MissingRequired  []string `json:"missingRequired"`
}

// CoachKeywordDetails is the keywordDetails payload in quality coach mode.
type CoachKeywordDetails struct {
	Total   int     `json:"total"`
	Matched int     `json:"matched"`
	Pct     float64 `json:"pct"`
	Strong  int     `json:"strong"`
}

// ScoreResult is the full outcome of one scoring call, constructed fresh per
// call. autoReject/rejectionReason appear only in ATS mode, cta only in
// quality coach mode.
type ScoreResult struct {
	OverallScore    float64
	Mode            Mode
	Breakdown       ScoreBreakdown
	Issues          IssueBuckets
	Strengths       []string
	KeywordDetails  any
	AutoReject      bool
	RejectionReason string
	CTA             string
}

// MarshalJSON emits the mode-specific wire shape.
func (r ScoreResult) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"overallScore":   r.OverallScore,
		"mode":           r.Mode,
		"breakdown":      r.Breakdown,
		"issues":         r.Issues,
		"strengths":      r.Strengths,
		"keywordDetails": r.KeywordDetails,
	}
	switch r.Mode {
	case ModeATS:
		out["autoReject"] = r.AutoReject
		if r.RejectionReason != "" {
			out["rejectionReason"] = r.RejectionReason
		}
	case ModeQualityCoach:
		out["cta"] = r.CTA
	}
	return json.Marshal(out)
}
