package harness

import (
	"fmt"
	"log/slog"
)

// L3Policy decides which members a sandwich inserts into its fallback filter.
type L3Policy string

const (
	// PolicyClassifier inserts a member into L3 exactly when the oracle
	// rejects it. This keeps the sandwich free of false negatives.
	PolicyClassifier L3Policy = "classifier"

	// PolicyRandom inserts a random MissRate fraction of members into L3,
	// regardless of the oracle's answer. It can produce false negatives.
	PolicyRandom L3Policy = "random"
)

// Default values applied by Config.Validate.
const (
	DefaultItems          = 5000
	DefaultStandardSize   = 3000
	DefaultStandardHashes = 3
	DefaultL1Size         = 1000
	DefaultL1Hashes       = 2
	DefaultL3Size         = 500
	DefaultL3Hashes       = 2
	DefaultMissRate       = 0.10
	DefaultTreeDepth      = 3
)

// Config holds the parameters of one benchmark run.
type Config struct {
	// Items is the number of members and of each non-member split in the
	// synthetic dataset. Ignored when DatasetPath is set.
	Items int

	// DatasetPath is an optional CSV file with url and label columns.
	DatasetPath string

	// StandardSize and StandardHashes configure the baseline filter.
	StandardSize   uint64
	StandardHashes uint32

	// L1Size, L1Hashes, L3Size and L3Hashes configure the sandwich.
	L1Size   uint64
	L1Hashes uint32
	L3Size   uint64
	L3Hashes uint32

	// Policy selects how members reach L3. Default: PolicyClassifier.
	Policy L3Policy

	// MissRate is the fraction of members PolicyRandom sends to L3.
	// Must be within [0, 1]. Default: DefaultMissRate.
	MissRate float64

	// Seed seeds PolicyRandom.
	Seed uint64

	// TreeDepth bounds the trained oracle. Zero means DefaultTreeDepth; a
	// negative depth trains a single leaf.
	TreeDepth int

	// Logger receives progress logs. If nil, logs are discarded.
	Logger *slog.Logger

	// Metrics receives the results. If nil, NoopCollector is used.
	Metrics Collector
}

// DefaultConfig returns the reference benchmark parameters: 5000 URLs, a
// 3000-bit standard filter and a 1000+500-bit sandwich.
func DefaultConfig() Config {
	return Config{
		Items:          DefaultItems,
		StandardSize:   DefaultStandardSize,
		StandardHashes: DefaultStandardHashes,
		L1Size:         DefaultL1Size,
		L1Hashes:       DefaultL1Hashes,
		L3Size:         DefaultL3Size,
		L3Hashes:       DefaultL3Hashes,
		Policy:         PolicyClassifier,
		MissRate:       DefaultMissRate,
		TreeDepth:      DefaultTreeDepth,
	}
}

// Validate applies defaults to unset fields and rejects values that
// cannot be normalized.
//
// Default values applied:
//   - Items and every filter size and hash count: the Default constants if zero
//   - Policy: PolicyClassifier if empty
//   - MissRate: DefaultMissRate if zero and Policy is PolicyRandom
//   - TreeDepth: DefaultTreeDepth if zero
//   - Logger: a discarding logger if nil
//   - Metrics: NoopCollector{} if nil
func (c *Config) Validate() error {
	if c.Items <= 0 {
		c.Items = DefaultItems
	}
	if c.StandardSize == 0 {
		c.StandardSize = DefaultStandardSize
	}
	if c.StandardHashes == 0 {
		c.StandardHashes = DefaultStandardHashes
	}
	if c.L1Size == 0 {
		c.L1Size = DefaultL1Size
	}
	if c.L1Hashes == 0 {
		c.L1Hashes = DefaultL1Hashes
	}
	if c.L3Size == 0 {
		c.L3Size = DefaultL3Size
	}
	if c.L3Hashes == 0 {
		c.L3Hashes = DefaultL3Hashes
	}

	switch c.Policy {
	case "":
		c.Policy = PolicyClassifier
	case PolicyClassifier, PolicyRandom:
	default:
		return fmt.Errorf("unknown L3 policy %q", c.Policy)
	}
	if c.MissRate < 0 || c.MissRate > 1 {
		return fmt.Errorf("miss rate %v outside [0, 1]", c.MissRate)
	}
	if c.Policy == PolicyRandom && c.MissRate == 0 {
		c.MissRate = DefaultMissRate
	}

	if c.TreeDepth == 0 {
		c.TreeDepth = DefaultTreeDepth
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Metrics == nil {
		c.Metrics = NoopCollector{}
	}
	return nil
}
