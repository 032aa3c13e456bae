// Package scoring implements the resume scoring engine: keyword matching,
// content-quality heuristics, format validation, red-flag detection, and
// per-mode weighted aggregation into a bounded 0-100 score.
package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/pkg/textx"
)

// Engine scores resumes against an immutable role directory. Every call is a
// pure, synchronous computation; an Engine is safe for concurrent use.
type Engine struct {
	roles domain.RoleDirectory
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock fixes the reference time used for ongoing-position tenure.
// Tests use it to make gap and tenure findings reproducible.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine constructs an Engine over the given role directory.
func NewEngine(roles domain.RoleDirectory, opts ...Option) *Engine {
	e := &Engine{roles: roles, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request is one scoring call's input. The resume is never mutated.
type Request struct {
	Resume         domain.ResumeDocument
	JobDescription string
	Role           string
	Level          string
	Mode           domain.Mode
}

// ResolveMode applies the mode-selection rule: an explicit mode wins; under
// auto, a non-empty job description selects ATS simulation, absence selects
// quality coach.
func ResolveMode(mode domain.Mode, jobDescription string) domain.Mode {
	if mode != "" && mode != domain.ModeAuto {
		return mode
	}
	if strings.TrimSpace(jobDescription) != "" {
		return domain.ModeATS
	}
	return domain.ModeQualityCoach
}

// Score evaluates a resume and returns a fresh ScoreResult. Resume content
// never causes an error; the only error paths are an invalid mode value and a
// missing role directory.
func (e *Engine) Score(_ context.Context, req Request) (domain.ScoreResult, error) {
	if e.roles == nil {
		return domain.ScoreResult{}, fmt.Errorf("%w: role directory not configured", domain.ErrInternal)
	}
	parsed, err := domain.ParseMode(string(req.Mode))
	if err != nil {
		return domain.ScoreResult{}, err
	}
	mode := ResolveMode(parsed, req.JobDescription)

	req.Resume = sanitizeResume(req.Resume)
	profile := e.roles.Resolve(req.Role, req.Level)
	idx := NewTextIndex(SearchableText(req.Resume))
	required := idx.MatchAll(profile.RequiredKeywords)
	preferred := idx.MatchAll(profile.PreferredKeywords)

	content, contentIssues := AnalyzeContent(req.Resume, profile)
	format := ValidateFormat(req.Resume)
	redFlags := DetectRedFlags(req.Resume, e.now())

	if mode == domain.ModeATS {
		return e.scoreATS(required, preferred, content, format, redFlags, contentIssues, req), nil
	}
	return e.scoreCoach(required, preferred, content, format, redFlags, contentIssues, req), nil
}

// sanitizeResume strips control characters from the resume's free-text fields
// before analysis. The caller's document is left untouched; slices are copied
// before their entries are rewritten.
func sanitizeResume(doc domain.ResumeDocument) domain.ResumeDocument {
	doc.Contact.Name = textx.SanitizeText(doc.Contact.Name)
	doc.Contact.Email = textx.SanitizeText(doc.Contact.Email)
	doc.Contact.Phone = textx.SanitizeText(doc.Contact.Phone)
	doc.Contact.Location = textx.SanitizeText(doc.Contact.Location)
	doc.Contact.LinkedIn = textx.SanitizeText(doc.Contact.LinkedIn)
	doc.Contact.Website = textx.SanitizeText(doc.Contact.Website)

	exp := make([]domain.ExperienceEntry, len(doc.Experience))
	copy(exp, doc.Experience)
	for i := range exp {
		exp[i].Title = textx.SanitizeText(exp[i].Title)
		exp[i].Company = textx.SanitizeText(exp[i].Company)
		exp[i].Description = textx.SanitizeText(exp[i].Description)
	}
	doc.Experience = exp

	edu := make([]domain.EducationEntry, len(doc.Education))
	copy(edu, doc.Education)
	for i := range edu {
		edu[i].Degree = textx.SanitizeText(edu[i].Degree)
		edu[i].Institution = textx.SanitizeText(edu[i].Institution)
		edu[i].Description = textx.SanitizeText(edu[i].Description)
	}
	doc.Education = edu

	skills := make([]string, len(doc.Skills))
	for i, s := range doc.Skills {
		skills[i] = textx.SanitizeText(s)
	}
	doc.Skills = skills

	certs := make([]string, len(doc.Certifications))
	for i, c := range doc.Certifications {
		certs[i] = textx.SanitizeText(c)
	}
	doc.Certifications = certs

	return doc
}

func (e *Engine) scoreATS(required, preferred []domain.KeywordMatchResult, content ContentStats, format FormatReport, redFlags, contentIssues []domain.Issue, req Request) domain.ScoreResult {
	reqMatched, reqTotal := countMatched(required), len(required)
	prefMatched, prefTotal := countMatched(preferred), len(preferred)
	reqPct := matchPct(reqMatched, reqTotal)
	prefPct := matchPct(prefMatched, prefTotal)
	missing := missingKeywords(required)

	keywordScore := round1(bucketPoints(reqMatched, reqTotal, atsRequiredCap) + bucketPoints(prefMatched, prefTotal, atsPreferredCap))
	formatScore := round1(rescale(format.InternalScore, atsFormatCap))
	structScore := round1(format.StructureScore)

	keywordIssues := atsKeywordIssues(reqPct, missing, preferred)

	res := domain.ScoreResult{
		Mode:         domain.ModeATS,
		OverallScore: round1(keywordScore + formatScore + structScore),
		Breakdown: domain.ScoreBreakdown{
			"keyword_match": {Score: keywordScore, MaxScore: atsRequiredCap + atsPreferredCap, Issues: keywordIssues},
			"format":        {Score: formatScore, MaxScore: atsFormatCap, Issues: format.Issues},
			"structure":     {Score: structScore, MaxScore: atsStructureCap, Issues: redFlags},
		},
		Issues:    bucketIssues(keywordIssues, contentIssues, format.Issues, redFlags),
		Strengths: deriveStrengths(reqPct, reqTotal, content, format.ContactFields, redFlags, len(req.Resume.Experience) > 0),
		KeywordDetails: domain.ATSKeywordDetails{
			RequiredTotal:    reqTotal,
			RequiredMatched:  reqMatched,
			RequiredPct:      round1(reqPct),
			PreferredTotal:   prefTotal,
			PreferredMatched: prefMatched,
			PreferredPct:     round1(prefPct),
			MissingRequired:  missing,
		},
	}
	if reqPct < autoRejectBelowPct {
		res.AutoReject = true
		res.RejectionReason = fmt.Sprintf(
			"Matched %d of %d required keywords (%.0f%%), below the %.0f%% threshold a typical ATS filter applies",
			reqMatched, reqTotal, reqPct, autoRejectBelowPct)
	}
	return res
}

func (e *Engine) scoreCoach(required, preferred []domain.KeywordMatchResult, content ContentStats, format FormatReport, redFlags, contentIssues []domain.Issue, req Request) domain.ScoreResult {
	matched := countMatched(required) + countMatched(preferred)
	total := len(required) + len(preferred)
	pct := matchPct(matched, total)

	keywordScore := round1(coachKeywordPoints(pct))
	contentScore := round1(coachQuantCap*content.Quantification +
		coachBulletsCap*content.BulletDensity +
		coachVerbsCap*content.StrongVerbs)
	formatScore := round1(rescale(format.InternalScore, coachFormatCap))

	polIssues := polishIssues(req.Resume.Metadata)
	polishScore := round1(wordCountPoints(req.Resume.Metadata.WordCount) +
		pageCountPoints(req.Resume.Metadata.PageCount) +
		contactPolishPoints(format.ContactFields, domain.ContactFieldCount))

	keywordIssues := coachKeywordIssues(pct)

	overall := round1(keywordScore + contentScore + formatScore + polishScore)
	res := domain.ScoreResult{
		Mode:         domain.ModeQualityCoach,
		OverallScore: overall,
		Breakdown: domain.ScoreBreakdown{
			"role_keywords":       {Score: keywordScore, MaxScore: coachKeywordCap, Issues: keywordIssues},
			"content_quality":     {Score: contentScore, MaxScore: coachContentCap, Issues: append(append([]domain.Issue{}, contentIssues...), redFlags...)},
			"format":              {Score: formatScore, MaxScore: coachFormatCap, Issues: format.Issues},
			"professional_polish": {Score: polishScore, MaxScore: coachPolishCap, Issues: polIssues},
		},
		Issues:    bucketIssues(keywordIssues, contentIssues, format.Issues, redFlags, polIssues),
		Strengths: deriveStrengths(matchPct(countMatched(required), len(required)), len(required), content, format.ContactFields, redFlags, len(req.Resume.Experience) > 0),
		KeywordDetails: domain.CoachKeywordDetails{
			Total:   total,
			Matched: matched,
			Pct:     round1(pct),
			Strong:  countStrong(required) + countStrong(preferred),
		},
		CTA: coachCTA(overall),
	}
	return res
}

func atsKeywordIssues(reqPct float64, missing []string, preferred []domain.KeywordMatchResult) []domain.Issue {
	var issues []domain.Issue
	if len(missing) > 0 {
		sev := domain.SeverityWarning
		if reqPct < autoRejectBelowPct {
			sev = domain.SeverityCritical
		}
		issues = append(issues, domain.Issue{
			Severity: sev,
			Message:  fmt.Sprintf("Missing required keywords: %s", strings.Join(truncateList(missing, 5), ", ")),
		})
	}
	if miss := missingKeywords(preferred); len(miss) > len(preferred)/2 && len(preferred) > 0 {
		issues = append(issues, domain.Issue{
			Severity: domain.SeveritySuggestion,
			Message:  fmt.Sprintf("Consider adding preferred keywords: %s", strings.Join(truncateList(miss, 5), ", ")),
		})
	}
	return issues
}

func coachKeywordIssues(pct float64) []domain.Issue {
	if pct >= 20 {
		return nil
	}
	return []domain.Issue{{
		Severity: domain.SeverityWarning,
		Message:  fmt.Sprintf("Resume matches only %.0f%% of the keywords expected for this role", pct),
	}}
}

func polishIssues(meta domain.Metadata) []domain.Issue {
	var issues []domain.Issue
	if meta.WordCount > 0 && (meta.WordCount < idealWordsMin || meta.WordCount > idealWordsMax) {
		issues = append(issues, domain.Issue{
			Severity: domain.SeveritySuggestion,
			Message:  fmt.Sprintf("Resume is %d words; %d-%d reads best", meta.WordCount, idealWordsMin, idealWordsMax),
		})
	}
	if meta.PageCount > 2 {
		issues = append(issues, domain.Issue{
			Severity: domain.SeveritySuggestion,
			Message:  fmt.Sprintf("Resume spans %d pages; one to two pages is the convention", meta.PageCount),
		})
	}
	return issues
}

// coachCTA maps the overall score band to its call-to-action copy.
func coachCTA(overall float64) string {
	switch {
	case overall >= 80:
		return "Your resume is good. Focus on tailoring it to each application."
	case overall >= 60:
		return "Solid foundation. Tighten your bullet points and add measurable results."
	case overall >= 40:
		return "Needs work. Add quantified achievements and fill out the core sections."
	default:
		return "Your resume needs a major revision. Start with the missing sections, then rewrite your experience with action verbs and numbers."
	}
}

func truncateList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return append(append([]string{}, items[:n]...), fmt.Sprintf("and %d more", len(items)-n))
}
