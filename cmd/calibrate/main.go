// Command calibrate scores the calibration corpus and prints the per-tier
// score distribution. Run it after touching any weight table to see where
// the output distribution moved before the calibration test fails in CI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gradecv/gradecv/internal/corpus"
	"github.com/gradecv/gradecv/internal/domain"
	"github.com/gradecv/gradecv/internal/roles"
	"github.com/gradecv/gradecv/internal/scoring"
)

type scored struct {
	entry   corpus.Entry
	overall float64
	reject  bool
}

func main() {
	corpusPath := flag.String("corpus", "internal/corpus/testdata/corpus.yaml", "calibration corpus path")
	rolesPath := flag.String("roles", "configs/roles.yaml", "role taxonomy path")
	mode := flag.String("mode", string(domain.ModeQualityCoach), "scoring mode: ats_simulation or quality_coach")
	workers := flag.Int("workers", 4, "concurrent scoring workers")
	flag.Parse()

	parsedMode, err := domain.ParseMode(*mode)
	if err != nil {
		slog.Error("invalid mode", slog.Any("error", err))
		os.Exit(2)
	}

	c, err := corpus.Load(*corpusPath)
	if err != nil {
		slog.Error("corpus load failed", slog.Any("error", err))
		os.Exit(1)
	}
	registry, err := roles.Load(*rolesPath)
	if err != nil {
		slog.Error("role taxonomy load failed", slog.Any("error", err))
		os.Exit(1)
	}

	clock := func() time.Time { return time.Now() }
	eng := scoring.NewEngine(registry, scoring.WithClock(clock))

	jobs := make(chan corpus.Entry)
	results := make(chan scored, len(c.Entries))
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range jobs {
				res, err := eng.Score(context.Background(), scoring.Request{
					Resume: e.Resume,
					Role:   e.Role,
					Level:  e.Level,
					Mode:   parsedMode,
				})
				if err != nil {
					slog.Error("score failed", slog.String("entry", e.Name), slog.Any("error", err))
					continue
				}
				results <- scored{entry: e, overall: res.OverallScore, reject: res.AutoReject}
			}
		}()
	}
	for _, e := range c.Entries {
		jobs <- e
	}
	close(jobs)
	wg.Wait()
	close(results)

	byTier := map[string][]scored{}
	for r := range results {
		byTier[r.entry.Tier] = append(byTier[r.entry.Tier], r)
	}

	fmt.Printf("corpus %s, mode %s, %d resumes\n\n", c.Version, parsedMode, len(c.Entries))
	fmt.Printf("%-15s %6s %6s %6s %6s  band\n", "tier", "mean", "min", "max", "rej")
	tiers, _ := c.ByTier()
	for _, tier := range tiers {
		group := byTier[tier]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].overall < group[j].overall })
		sum, rejects := 0.0, 0
		for _, r := range group {
			sum += r.overall
			if r.reject {
				rejects++
			}
		}
		band := corpus.Bands[tier]
		fmt.Printf("%-15s %6.1f %6.1f %6.1f %6d  [%.0f-%.0f]\n",
			tier, sum/float64(len(group)), group[0].overall, group[len(group)-1].overall,
			rejects, band.Min, band.Max)
		for _, r := range group {
			fmt.Printf("    %-35s %6.1f\n", r.entry.Name, r.overall)
		}
	}
}
