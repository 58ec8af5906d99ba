package metrics

import "github.com/prometheus/client_golang/prometheus"

func newAnalysisCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "stages_total",
			Help:      "Total analyzer stage executions.",
		},
		[]string{"service", "stage"},
	)
}

// AnalysisCounter is an analysis observer backed by a prometheus counter.
type AnalysisCounter struct {
	service string
	counter *prometheus.CounterVec
}

func (c *AnalysisCounter) ObserveAnalysis(stage string, _ ...any) {
	if c == nil || c.counter == nil {
		return
	}
	if stage == "" {
		stage = "unknown"
	}
	c.counter.WithLabelValues(c.service, stage).Inc()
}
