package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for lead intake and export.
type LeadMetrics struct {
	submissionsTotal *prometheus.CounterVec
	qualityScore     prometheus.Histogram
	rejectedTotal    *prometheus.CounterVec
	exportTotal      *prometheus.CounterVec
	submitLatency    prometheus.Histogram
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asbestos",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Qualified contact submissions by tier",
		}, []string{"level"}),
		qualityScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "asbestos",
			Subsystem: "leads",
			Name:      "quality_score",
			Help:      "Distribution of lead quality scores",
			Buckets:   []float64{0, 20, 40, 60, 80, 100, 120, 150},
		}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asbestos",
			Subsystem: "leads",
			Name:      "invalid_requests_total",
			Help:      "Contact requests refused before qualification",
		}, []string{"reason"}),
		exportTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "asbestos",
			Subsystem: "export",
			Name:      "jobs_total",
			Help:      "Sheets export attempts by outcome",
		}, []string{"outcome"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "asbestos",
			Subsystem: "leads",
			Name:      "submit_latency_seconds",
			Help:      "Latency of qualify-and-persist for a contact submission",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.qualityScore, m.rejectedTotal, m.exportTotal, m.submitLatency)
	return m
}

func (m *LeadMetrics) ObserveQualified(level string, score int) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(level).Inc()
	m.qualityScore.Observe(float64(score))
}

func (m *LeadMetrics) ObserveInvalidRequest(reason string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(reason).Inc()
}

// ObserveExport records one export attempt. outcome is exported, retried,
// failed or enqueue_failed.
func (m *LeadMetrics) ObserveExport(outcome string) {
	if m == nil {
		return
	}
	m.exportTotal.WithLabelValues(outcome).Inc()
}

func (m *LeadMetrics) ObserveSubmitLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}
