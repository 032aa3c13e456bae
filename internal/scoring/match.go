package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/pkg/textx"
)

// Match classification thresholds. A keyword counts as matched at or above
// matchThreshold; strongThreshold marks matches solid enough to highlight.
const (
	matchThreshold  = 0.5
	strongThreshold = 0.8

	// Minimum keyword length for the word-containment fallback. Without the
	// guard short keywords produce surprising substring hits ("go" inside
	// "django").
	containMinRunes = 4
)

// TextIndex holds the normalized form of the resume's searchable text so a
// batch of keywords can be matched without re-normalizing per keyword.
type TextIndex struct {
	padded string
	tokens []string
}

// NewTextIndex normalizes text once for repeated keyword lookups.
func NewTextIndex(text string) *TextIndex {
	norm := textx.Normalize(text)
	return &TextIndex{
		padded: " " + norm + " ",
		tokens: strings.Fields(norm),
	}
}

// SearchableText joins the resume's skills, experience, education and
// certification text into the blob keywords are matched against.
func SearchableText(doc domain.ResumeDocument) string {
	var b strings.Builder
	b.WriteString(strings.Join(doc.Skills, " "))
	for _, e := range doc.Experience {
		b.WriteByte('\n')
		b.WriteString(e.Title)
		b.WriteByte(' ')
		b.WriteString(e.Company)
		b.WriteByte('\n')
		b.WriteString(e.Description)
	}
	for _, e := range doc.Education {
		b.WriteByte('\n')
		b.WriteString(e.Degree)
		b.WriteByte(' ')
		b.WriteString(e.Institution)
		b.WriteByte('\n')
		b.WriteString(e.Description)
	}
	for _, c := range doc.Certifications {
		b.WriteByte('\n')
		b.WriteString(c)
	}
	return b.String()
}

// Match evaluates a single keyword against the indexed text. Exact phrase
// containment wins outright; otherwise the best of the word-containment
// fallback and the edit-distance ratio over same-width word windows decides.
// Deterministic: identical inputs always yield identical similarity values.
func (ix *TextIndex) Match(keyword string) domain.KeywordMatchResult {
	res := domain.KeywordMatchResult{Keyword: keyword}
	kw := textx.Normalize(keyword)
	if kw == "" || len(ix.tokens) == 0 {
		return res
	}
	if strings.Contains(ix.padded, " "+kw+" ") {
		res.Matched = true
		res.Similarity = 1.0
		res.MatchedText = kw
		return res
	}

	kwWords := strings.Fields(kw)

	// Word-containment fallback for single-word keywords of guarded length.
	if len(kwWords) == 1 && utf8.RuneCountInString(kw) >= containMinRunes {
		for _, tok := range ix.tokens {
			if strings.Contains(tok, kw) {
				sim := float64(utf8.RuneCountInString(kw)) / float64(utf8.RuneCountInString(tok))
				if sim > res.Similarity {
					res.Similarity = sim
					res.MatchedText = tok
				}
			}
		}
	}

	// Edit-distance ratio over sliding word windows the width of the keyword.
	for i := 0; i+len(kwWords) <= len(ix.tokens); i++ {
		cand := strings.Join(ix.tokens[i:i+len(kwWords)], " ")
		if sim := similarity(kw, cand); sim > res.Similarity {
			res.Similarity = sim
			res.MatchedText = cand
		}
	}

	res.Matched = res.Similarity >= matchThreshold
	if !res.Matched {
		res.MatchedText = ""
	}
	return res
}

// MatchAll matches each keyword in order against the indexed text.
func (ix *TextIndex) MatchAll(keywords []string) []domain.KeywordMatchResult {
	out := make([]domain.KeywordMatchResult, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, ix.Match(kw))
	}
	return out
}

// similarity is the bounded edit-distance ratio (len(longer)-dist)/len(longer).
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	if longer == 0 {
		return 1.0
	}
	return float64(longer-levenshtein(ra, rb)) / float64(longer)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func countMatched(results []domain.KeywordMatchResult) int {
	n := 0
	for _, r := range results {
		if r.Matched {
			n++
		}
	}
	return n
}

func countStrong(results []domain.KeywordMatchResult) int {
	n := 0
	for _, r := range results {
		if r.Matched && r.Similarity >= strongThreshold {
			n++
		}
	}
	return n
}

func missingKeywords(results []domain.KeywordMatchResult) []string {
	var out []string
	for _, r := range results {
		if !r.Matched {
			out = append(out, r.Keyword)
		}
	}
	return out
}
