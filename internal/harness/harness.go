// Package harness benchmarks a sandwiched learned bloom filter against a
// standard bloom filter over a shared dataset, measuring memory, false
// positive rate, false negatives and query latency.
package harness

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jcalabro/lbf"
	"github.com/jcalabro/lbf/internal/dataset"
	"github.com/jcalabro/lbf/oracle"
	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is how many items a loop processes between
// cancellation checks.
const ctxCheckInterval = 1024

// Run executes one benchmark. The two filters are built concurrently, each
// by a single goroutine that owns it; all measurements run sequentially.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := cfg.Logger

	data, err := load(cfg)
	if err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "dataset loaded",
		"members", len(data.Members),
		"train_negatives", len(data.TrainNegatives),
		"test_negatives", len(data.TestNegatives),
	)

	tree, err := oracle.Fit(
		oracle.SamplesFrom(data.Members, data.TrainNegatives),
		oracle.FitOptions{MaxDepth: cfg.TreeDepth},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to train oracle: %w", err)
	}
	log.InfoContext(ctx, "oracle trained", "depth", tree.Depth(), "leaves", tree.Leaves())

	var (
		standard  *lbf.Filter
		learned   *lbf.Sandwich
		l3Inserts int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := buildStandard(gctx, cfg, data.Members)
		standard = f
		return err
	})
	g.Go(func() error {
		s, n, err := buildSandwich(gctx, cfg, tree, data.Members)
		learned, l3Inserts = s, n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "filters built",
		"standard_bits", standard.MemoryBits(),
		"learned_bits", learned.MemoryBits(),
		"l3_inserts", l3Inserts,
		"policy", string(cfg.Policy),
	)

	stdResult, err := measure(ctx, "standard", standard.MemoryBits(), standard.TestString, data)
	if err != nil {
		return nil, err
	}
	lrnResult, err := measure(ctx, "learned", learned.MemoryBits(), learned.Test, data)
	if err != nil {
		return nil, err
	}

	stages := countStages(learned, data.TestNegatives)
	oracleStats := evaluateOracle(tree, data)

	report := &Report{
		Policy:              cfg.Policy,
		Members:             len(data.Members),
		L3Inserts:           l3Inserts,
		Standard:            stdResult,
		Learned:             lrnResult,
		Oracle:              oracleStats,
		Stages:              stages,
		EstimatedLearnedFPR: learned.EstimatedFalsePositiveRate(oracleStats.FalsePositiveRate),
	}

	cfg.Metrics.ObserveResult(stdResult)
	cfg.Metrics.ObserveResult(lrnResult)
	cfg.Metrics.ObserveStages(stages)

	log.InfoContext(ctx, "benchmark completed",
		"standard_fpr", stdResult.FalsePositiveRate,
		"learned_fpr", lrnResult.FalsePositiveRate,
		"learned_false_negatives", lrnResult.FalseNegatives,
	)
	if lrnResult.FalseNegatives > 0 {
		log.WarnContext(ctx, "learned filter produced false negatives",
			"count", lrnResult.FalseNegatives,
			"policy", string(cfg.Policy),
		)
	}
	return report, nil
}

func load(cfg Config) (*dataset.Dataset, error) {
	if cfg.DatasetPath == "" {
		return dataset.Synthetic(cfg.Items), nil
	}
	return dataset.Open(cfg.DatasetPath)
}

func buildStandard(ctx context.Context, cfg Config, members []string) (*lbf.Filter, error) {
	f, err := lbf.New(cfg.StandardSize, cfg.StandardHashes)
	if err != nil {
		return nil, fmt.Errorf("failed to create standard filter: %w", err)
	}
	for i, m := range members {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		f.AddString(m)
	}
	return f, nil
}

func buildSandwich(ctx context.Context, cfg Config, clf lbf.Classifier, members []string) (*lbf.Sandwich, int, error) {
	s, err := lbf.NewSandwich(cfg.L1Size, cfg.L1Hashes, cfg.L3Size, cfg.L3Hashes, clf)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create sandwich filter: %w", err)
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, 0))
	var l3Inserts int
	for i, m := range members {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}

		switch cfg.Policy {
		case PolicyRandom:
			s.AddL1(m)
			if rng.Float64() < cfg.MissRate {
				s.AddL3(m)
				l3Inserts++
			}
		default:
			if s.Add(m) {
				l3Inserts++
			}
		}
	}
	return s, l3Inserts, nil
}

// measure times test over the test non-members, then counts false
// negatives over the members in a separate, untimed pass.
func measure(ctx context.Context, name string, memoryBits uint64, test func(string) bool, data *dataset.Dataset) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var falsePositives int
	start := time.Now()
	for _, u := range data.TestNegatives {
		if test(u) {
			falsePositives++
		}
	}
	elapsed := time.Since(start)

	var falseNegatives int
	for i, m := range data.Members {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		if !test(m) {
			falseNegatives++
		}
	}

	queries := len(data.TestNegatives)
	return Result{
		Name:              name,
		MemoryBits:        memoryBits,
		Queries:           queries,
		FalsePositives:    falsePositives,
		FalseNegatives:    falseNegatives,
		FalsePositiveRate: float64(falsePositives) / float64(queries),
		NsPerQuery:        float64(elapsed.Nanoseconds()) / float64(queries),
	}, nil
}

func countStages(s *lbf.Sandwich, negatives []string) StageCounts {
	var c StageCounts
	for _, u := range negatives {
		ok, stage := s.Explain(u)
		switch stage {
		case lbf.StageL1:
			c.L1Rejected++
		case lbf.StageOracle:
			c.OracleAccepted++
		case lbf.StageL3:
			if ok {
				c.L3Accepted++
			} else {
				c.L3Rejected++
			}
		}
	}
	return c
}

func evaluateOracle(c lbf.Classifier, data *dataset.Dataset) OracleStats {
	stats := OracleStats{}
	if t, ok := c.(*oracle.Tree); ok {
		stats.Depth = t.Depth()
		stats.Leaves = t.Leaves()
	}

	var fp, fn int
	for _, u := range data.TestNegatives {
		if c.Classify(lbf.ExtractFeatures(u)) {
			fp++
		}
	}
	for _, m := range data.Members {
		if !c.Classify(lbf.ExtractFeatures(m)) {
			fn++
		}
	}
	stats.FalsePositiveRate = float64(fp) / float64(len(data.TestNegatives))
	stats.FalseNegativeRate = float64(fn) / float64(len(data.Members))
	return stats
}
