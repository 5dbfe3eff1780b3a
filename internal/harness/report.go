package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Result holds the measurements of one filter.
type Result struct {
	Name              string  `json:"name"`
	MemoryBits        uint64  `json:"memory_bits"`
	Queries           int     `json:"queries"`
	FalsePositives    int     `json:"false_positives"`
	FalseNegatives    int     `json:"false_negatives"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	NsPerQuery        float64 `json:"ns_per_query"`
}

// StageCounts records which sandwich stage decided each non-member query.
type StageCounts struct {
	L1Rejected     int `json:"l1_rejected"`
	OracleAccepted int `json:"oracle_accepted"`
	L3Accepted     int `json:"l3_accepted"`
	L3Rejected     int `json:"l3_rejected"`
}

// Total returns the number of queries counted.
func (c StageCounts) Total() int {
	return c.L1Rejected + c.OracleAccepted + c.L3Accepted + c.L3Rejected
}

// OracleStats describes the trained classifier on its own.
type OracleStats struct {
	Depth             int     `json:"depth"`
	Leaves            int     `json:"leaves"`
	FalsePositiveRate float64 `json:"false_positive_rate"`
	FalseNegativeRate float64 `json:"false_negative_rate"`
}

// Report is the outcome of a benchmark run.
type Report struct {
	Policy              L3Policy    `json:"policy"`
	Members             int         `json:"members"`
	L3Inserts           int         `json:"l3_inserts"`
	Standard            Result      `json:"standard"`
	Learned             Result      `json:"learned"`
	Oracle              OracleStats `json:"oracle"`
	Stages              StageCounts `json:"stages"`
	EstimatedLearnedFPR float64     `json:"estimated_learned_fpr"`
}

// Compression returns how much smaller the learned filter is than the
// standard one, in percent. It is negative when the learned filter is larger.
func (r *Report) Compression() float64 {
	if r.Standard.MemoryBits == 0 {
		return 0
	}
	return (1 - float64(r.Learned.MemoryBits)/float64(r.Standard.MemoryBits)) * 100
}

// WriteText writes the report in a human-readable layout.
func (r *Report) WriteText(w io.Writer) error {
	var b bytes.Buffer

	fmt.Fprintln(&b, "===== BENCHMARK RESULTS =====")
	fmt.Fprintln(&b, "1. Memory Footprint (Bits):")
	fmt.Fprintf(&b, "   - Standard BF: %d bits\n", r.Standard.MemoryBits)
	fmt.Fprintf(&b, "   - Learned BF:  %d bits (%.0f%% Compression)\n\n", r.Learned.MemoryBits, r.Compression())

	fmt.Fprintln(&b, "2. False Positive Rate (FPR):")
	fmt.Fprintf(&b, "   - Standard BF: %.2f%%\n", r.Standard.FalsePositiveRate*100)
	fmt.Fprintf(&b, "   - Learned BF:  %.2f%% (estimated %.2f%%)\n\n", r.Learned.FalsePositiveRate*100, r.EstimatedLearnedFPR*100)

	fmt.Fprintln(&b, "3. Query Latency (Per URL):")
	fmt.Fprintf(&b, "   - Standard BF: %.0f ns\n", r.Standard.NsPerQuery)
	fmt.Fprintf(&b, "   - Learned BF:  %.0f ns\n\n", r.Learned.NsPerQuery)

	fmt.Fprintln(&b, "4. False Negatives:")
	fmt.Fprintf(&b, "   - Standard BF: %d of %d\n", r.Standard.FalseNegatives, r.Members)
	fmt.Fprintf(&b, "   - Learned BF:  %d of %d (L3 policy: %s, %d in L3)\n\n", r.Learned.FalseNegatives, r.Members, r.Policy, r.L3Inserts)

	fmt.Fprintln(&b, "5. Learned BF Stages (non-member queries):")
	fmt.Fprintf(&b, "   - Rejected by L1:     %d\n", r.Stages.L1Rejected)
	fmt.Fprintf(&b, "   - Accepted by oracle: %d\n", r.Stages.OracleAccepted)
	fmt.Fprintf(&b, "   - Accepted by L3:     %d\n", r.Stages.L3Accepted)
	fmt.Fprintf(&b, "   - Rejected by L3:     %d\n", r.Stages.L3Rejected)
	fmt.Fprintf(&b, "   - Oracle: depth %d, %d leaves, FPR %.2f%%, FNR %.2f%%\n",
		r.Oracle.Depth, r.Oracle.Leaves, r.Oracle.FalsePositiveRate*100, r.Oracle.FalseNegativeRate*100)
	fmt.Fprintln(&b, "=============================")

	_, err := w.Write(b.Bytes())
	return err
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
