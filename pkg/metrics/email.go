package metrics

import "github.com/prometheus/client_golang/prometheus"

// EmailMetrics counts transactional email outcomes per template.
type EmailMetrics struct {
	sent   *prometheus.CounterVec
	failed *prometheus.CounterVec
}

// NewEmailMetrics registers the email counters on the provided registerer.
func NewEmailMetrics(reg prometheus.Registerer) *EmailMetrics {
	if reg == nil {
		return &EmailMetrics{}
	}
	sent := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Transactional emails delivered to the mail provider.",
	}, []string{"template"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_failed_total",
		Help: "Transactional emails that could not be rendered or delivered.",
	}, []string{"template"})
	reg.MustRegister(sent, failed)
	return &EmailMetrics{sent: sent, failed: failed}
}

func (e *EmailMetrics) IncSent(template string) {
	if e == nil || e.sent == nil {
		return
	}
	e.sent.WithLabelValues(normalizeLabel(template)).Inc()
}

func (e *EmailMetrics) IncFailed(template string) {
	if e == nil || e.failed == nil {
		return
	}
	e.failed.WithLabelValues(normalizeLabel(template)).Inc()
}
