// Package corpus loads the calibration corpus: a fixed set of synthetic
// resumes labelled with quality tiers, used to keep scoring output anchored
// to the intended distribution whenever weights change.
package corpus

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gradecv/gradecv/internal/domain"
)

// Tier labels, worst to best. Band boundaries are where each tier's overall
// score is expected to land.
const (
	TierPoor         = "poor"
	TierBelowAverage = "below_average"
	TierAverage      = "average"
	TierGood         = "good"
	TierExcellent    = "excellent"
)

// tierRank orders tiers for monotonicity checks.
var tierRank = map[string]int{
	TierPoor:         0,
	TierBelowAverage: 1,
	TierAverage:      2,
	TierGood:         3,
	TierExcellent:    4,
}

// Band is the expected overall-score range for one tier.
type Band struct {
	Min, Max float64
}

// Bands maps each tier to its expected quality-coach score band. The bands
// deliberately overlap at the edges; calibration asserts tier means, not
// every individual resume.
var Bands = map[string]Band{
	TierPoor:         {Min: 0, Max: 45},
	TierBelowAverage: {Min: 25, Max: 60},
	TierAverage:      {Min: 45, Max: 75},
	TierGood:         {Min: 60, Max: 90},
	TierExcellent:    {Min: 75, Max: 100},
}

// Entry is one labelled calibration resume.
type Entry struct {
	Name   string                `yaml:"name" validate:"required"`
	Tier   string                `yaml:"tier" validate:"required,oneof=poor below_average average good excellent"`
	Role   string                `yaml:"role"`
	Level  string                `yaml:"level"`
	Resume domain.ResumeDocument `yaml:"resume"`
}

// Rank returns the entry's tier order, worst first.
func (e Entry) Rank() int { return tierRank[e.Tier] }

type corpusFile struct {
	Version string  `yaml:"version" validate:"required"`
	Entries []Entry `yaml:"entries" validate:"min=1,dive"`
}

// Corpus is a loaded calibration corpus.
type Corpus struct {
	Version string
	Entries []Entry
}

// Load reads and validates a corpus YAML file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read corpus: %v", domain.ErrConfig, err)
	}
	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse corpus %s: %v", domain.ErrConfig, path, err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("%w: invalid corpus %s: %v", domain.ErrConfig, path, err)
	}
	return &Corpus{Version: file.Version, Entries: file.Entries}, nil
}

// ByTier groups entries by tier, tiers sorted worst to best.
func (c *Corpus) ByTier() ([]string, map[string][]Entry) {
	groups := map[string][]Entry{}
	for _, e := range c.Entries {
		groups[e.Tier] = append(groups[e.Tier], e)
	}
	tiers := make([]string, 0, len(groups))
	for tier := range groups {
		tiers = append(tiers, tier)
	}
	sort.Slice(tiers, func(i, j int) bool { return tierRank[tiers[i]] < tierRank[tiers[j]] })
	return tiers, groups
}
