package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateAppliesDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Validate())

	want := DefaultConfig()
	require.Equal(t, want.Items, cfg.Items)
	require.Equal(t, want.StandardSize, cfg.StandardSize)
	require.Equal(t, want.StandardHashes, cfg.StandardHashes)
	require.Equal(t, want.L1Size, cfg.L1Size)
	require.Equal(t, want.L1Hashes, cfg.L1Hashes)
	require.Equal(t, want.L3Size, cfg.L3Size)
	require.Equal(t, want.L3Hashes, cfg.L3Hashes)
	require.Equal(t, PolicyClassifier, cfg.Policy)
	require.Equal(t, DefaultTreeDepth, cfg.TreeDepth)
	require.NotNil(t, cfg.Logger)
	require.IsType(t, NoopCollector{}, cfg.Metrics)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Items:     10,
		L1Size:    64,
		L3Hashes:  5,
		Policy:    PolicyRandom,
		MissRate:  0.5,
		TreeDepth: -1,
	}
	require.NoError(t, cfg.Validate())
	require.Equal(t, 10, cfg.Items)
	require.Equal(t, uint64(64), cfg.L1Size)
	require.Equal(t, uint32(5), cfg.L3Hashes)
	require.Equal(t, 0.5, cfg.MissRate)
	require.Equal(t, -1, cfg.TreeDepth)
}

func TestValidateRandomPolicyDefaultMissRate(t *testing.T) {
	cfg := Config{Policy: PolicyRandom}
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultMissRate, cfg.MissRate)
}

func TestValidateRejects(t *testing.T) {
	cfg := Config{Policy: "sometimes"}
	require.Error(t, cfg.Validate())

	cfg = Config{MissRate: 1.5}
	require.Error(t, cfg.Validate())

	cfg = Config{MissRate: -0.1}
	require.Error(t, cfg.Validate())
}
