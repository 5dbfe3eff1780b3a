package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/jcalabro/lbf/internal/harness"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	require.Equal(t, harness.DefaultConfig(), opts.cfg)
	require.Equal(t, "text", opts.format)
	require.Equal(t, "info", opts.logLevel)
	require.Empty(t, opts.metricsAddr)
}

func TestParseFlagsOverrides(t *testing.T) {
	opts, err := parseFlags([]string{
		"-items", "100",
		"-standard-hashes", "5",
		"-l3-size", "800",
		"-policy", "random",
		"-miss-rate", "0.2",
		"-seed", "9",
		"-format", "json",
	}, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 100, opts.cfg.Items)
	require.Equal(t, uint32(5), opts.cfg.StandardHashes)
	require.Equal(t, uint64(800), opts.cfg.L3Size)
	require.Equal(t, harness.PolicyRandom, opts.cfg.Policy)
	require.InDelta(t, 0.2, opts.cfg.MissRate, 1e-12)
	require.Equal(t, uint64(9), opts.cfg.Seed)
	require.Equal(t, "json", opts.format)
}

func TestParseFlagsRejects(t *testing.T) {
	for _, args := range [][]string{
		{"-format", "yaml"},
		{"-nope"},
		{"extra"},
		{"-standard-hashes", "4294967296"},
		{"-l1-hashes", "4294967296"},
		{"-l3-hashes", "4294967296"},
	} {
		_, err := parseFlags(args, io.Discard)
		require.Error(t, err, "args %v", args)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(&buf, "warn", true)
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(&buf, "loud", false)
	require.Error(t, err)
}

func TestRunText(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-items", "300"}, &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "===== BENCHMARK RESULTS =====")
	require.Contains(t, stderr.String(), "benchmark completed")
}

func TestRunJSON(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-items", "300", "-format", "json", "-log-level", "error"}, &stdout, io.Discard)
	require.NoError(t, err)

	var report harness.Report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
	require.Equal(t, 300, report.Members)
	require.Equal(t, uint64(1500), report.Learned.MemoryBits)
}

func TestRunInvalidPolicy(t *testing.T) {
	err := run(context.Background(), []string{"-policy", "sometimes"}, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestRunServesMetrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		body      []byte
		scrapeErr error
	)
	onServe = func(addr string) {
		defer cancel()
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			scrapeErr = err
			return
		}
		defer resp.Body.Close()
		body, scrapeErr = io.ReadAll(resp.Body)
	}
	t.Cleanup(func() { onServe = nil })

	err := run(ctx, []string{"-items", "300", "-metrics-addr", "127.0.0.1:0", "-log-level", "error"}, io.Discard, io.Discard)
	require.NoError(t, err)
	require.NoError(t, scrapeErr)
	require.Contains(t, string(body), `lbf_memory_bits{filter="learned"} 1500`)
	require.Contains(t, string(body), `lbf_memory_bits{filter="standard"} 3000`)
}

func TestRunMetricsBadAddr(t *testing.T) {
	err := run(context.Background(), []string{"-items", "300", "-metrics-addr", "not-an-addr", "-log-level", "error"}, io.Discard, io.Discard)
	require.Error(t, err)
}
