package scoring

import "math"

// Mode weight tables. Each mode's caps sum to 100.
const (
	atsRequiredCap  = 50.0
	atsPreferredCap = 20.0
	atsFormatCap    = 20.0
	atsStructureCap = 10.0

	coachKeywordCap = 25.0
	coachContentCap = 30.0
	coachFormatCap  = 25.0
	coachPolishCap  = 20.0

	coachQuantCap   = 15.0
	coachBulletsCap = 10.0
	coachVerbsCap   = 5.0

	coachWordCountCap = 10.0
	coachPageCountCap = 5.0
	coachContactCap   = 5.0

	autoRejectBelowPct = 60.0
)

// Ideal word-count range for a resume (quality coach polish).
const (
	idealWordsMin = 400
	idealWordsMax = 600
)

// bucketPoints maps a matched/total keyword bucket onto its cap. An empty
// bucket is no constraint to fail and earns full credit.
func bucketPoints(matched, total int, ceiling float64) float64 {
	if total == 0 {
		return ceiling
	}
	return ceiling * float64(matched) / float64(total)
}

// matchPct returns the percentage of matched keywords; an empty set counts as
// fully matched.
func matchPct(matched, total int) float64 {
	if total == 0 {
		return 100
	}
	return 100 * float64(matched) / float64(total)
}

// coachKeywordPoints is the deliberately generous staircase from overall match
// percentage to points: moderate matches earn more than strict proportionality
// would give, then the bottom of the curve falls off linearly.
func coachKeywordPoints(pct float64) float64 {
	switch {
	case pct >= 60:
		return 25
	case pct >= 50:
		return 22
	case pct >= 40:
		return 18
	case pct >= 30:
		return 15
	case pct >= 20:
		return 12
	default:
		return 12 * pct / 20
	}
}

// wordCountPoints peaks over the ideal range and tapers on both sides.
// A zero word count (metadata absent) earns nothing.
func wordCountPoints(words int) float64 {
	switch {
	case words <= 0:
		return 0
	case words < idealWordsMin:
		return coachWordCountCap * float64(words) / idealWordsMin
	case words <= idealWordsMax:
		return coachWordCountCap
	default:
		return coachWordCountCap * idealWordsMax / float64(words)
	}
}

// pageCountPoints rewards the conventional one-to-two pages. An unknown page
// count scores the midpoint rather than punishing a parser that could not tell.
func pageCountPoints(pages int) float64 {
	switch {
	case pages == 0:
		return coachPageCountCap / 2
	case pages <= 2:
		return coachPageCountCap
	case pages == 3:
		return coachPageCountCap * 0.6
	default:
		return coachPageCountCap * 0.2
	}
}

// contactPolishPoints scales contact completeness onto its polish cap.
func contactPolishPoints(fields, total int) float64 {
	return coachContactCap * float64(fields) / float64(total)
}

// rescale maps the format validator's internal 0-100 score onto a mode ceiling.
func rescale(internal, ceiling float64) float64 {
	return internal / 100 * ceiling
}

// round1 rounds to one decimal, the wire precision for all scores.
func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
