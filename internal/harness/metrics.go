package harness

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector receives the outcome of a benchmark run.
// Implement it to export results to a monitoring system.
type Collector interface {
	// ObserveResult is called once per measured filter.
	ObserveResult(r Result)

	// ObserveStages is called once with the learned filter's stage breakdown.
	ObserveStages(c StageCounts)
}

// NoopCollector discards everything.
type NoopCollector struct{}

func (NoopCollector) ObserveResult(Result)      {}
func (NoopCollector) ObserveStages(StageCounts) {}

// PrometheusCollector exports results as Prometheus metrics, labelled by
// filter name.
type PrometheusCollector struct {
	memoryBits     *prometheus.GaugeVec
	fpRate         *prometheus.GaugeVec
	latency        *prometheus.GaugeVec
	queries        *prometheus.CounterVec
	falsePositives *prometheus.CounterVec
	falseNegatives *prometheus.CounterVec
	stages         *prometheus.CounterVec
}

// NewPrometheusCollector creates a collector and registers its metrics
// with reg.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		memoryBits: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lbf_memory_bits",
			Help: "Bit array length of the filter",
		}, []string{"filter"}),
		fpRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lbf_false_positive_ratio",
			Help: "Measured false positive rate (0.0-1.0)",
		}, []string{"filter"}),
		latency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lbf_query_latency_ns",
			Help: "Mean query latency in nanoseconds",
		}, []string{"filter"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lbf_queries_total",
			Help: "Total non-member queries measured",
		}, []string{"filter"}),
		falsePositives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lbf_false_positives_total",
			Help: "Total non-member queries reported present",
		}, []string{"filter"}),
		falseNegatives: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lbf_false_negatives_total",
			Help: "Total member queries reported absent",
		}, []string{"filter"}),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lbf_sandwich_stage_total",
			Help: "Non-member queries by the sandwich stage that decided them",
		}, []string{"stage", "result"}),
	}

	for _, col := range []prometheus.Collector{
		c.memoryBits, c.fpRate, c.latency, c.queries, c.falsePositives, c.falseNegatives, c.stages,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveResult implements Collector.
func (c *PrometheusCollector) ObserveResult(r Result) {
	c.memoryBits.WithLabelValues(r.Name).Set(float64(r.MemoryBits))
	c.fpRate.WithLabelValues(r.Name).Set(r.FalsePositiveRate)
	c.latency.WithLabelValues(r.Name).Set(r.NsPerQuery)
	c.queries.WithLabelValues(r.Name).Add(float64(r.Queries))
	c.falsePositives.WithLabelValues(r.Name).Add(float64(r.FalsePositives))
	c.falseNegatives.WithLabelValues(r.Name).Add(float64(r.FalseNegatives))
}

// ObserveStages implements Collector.
func (c *PrometheusCollector) ObserveStages(s StageCounts) {
	c.stages.WithLabelValues("l1", "absent").Add(float64(s.L1Rejected))
	c.stages.WithLabelValues("oracle", "present").Add(float64(s.OracleAccepted))
	c.stages.WithLabelValues("l3", "present").Add(float64(s.L3Accepted))
	c.stages.WithLabelValues("l3", "absent").Add(float64(s.L3Rejected))
}
