package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "prefmirror"

// Save results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Registry holds all application metrics.
//
// A nil *Registry is valid and records nothing.
type Registry struct {
	reg *prometheus.Registry

	SavesTotal          *prometheus.CounterVec
	SaveDuration        prometheus.Histogram
	FieldsWritten       prometheus.Counter
	RunStateTransitions *prometheus.CounterVec
}

// NewRegistry creates a registry with every application metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		SavesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Settings snapshot saves by result",
		}, []string{"result"}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "save_duration_seconds",
			Help:      "Time from opening the write transaction to commit or abort",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		FieldsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fields_written_total",
			Help:      "Settings fields written by committed saves",
		}),
		RunStateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runstate_transitions_total",
			Help:      "Run-state broadcasts made by post-save reconciliation",
		}, []string{"to"}),
	}

	r.reg.MustRegister(r.SavesTotal, r.SaveDuration, r.FieldsWritten, r.RunStateTransitions)
	return r
}

// Registerer returns the registerer for additional collectors such as the
// storage engine gauges.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.reg
}

// Gatherer returns the gatherer backing Handler and WriteTextfile.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveSave records one save attempt.
func (r *Registry) ObserveSave(elapsed time.Duration, fields int, err error) {
	if r == nil {
		return
	}
	r.SaveDuration.Observe(elapsed.Seconds())
	if err != nil {
		r.SavesTotal.WithLabelValues(ResultError).Inc()
		return
	}
	r.SavesTotal.WithLabelValues(ResultOK).Inc()
	r.FieldsWritten.Add(float64(fields))
}

// ObserveTransition records a reconciliation broadcast.
func (r *Registry) ObserveTransition(to string) {
	if r == nil {
		return
	}
	r.RunStateTransitions.WithLabelValues(to).Inc()
}

// Handler returns an HTTP handler serving the registry in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry to path in the node-exporter textfile
// format. The file is replaced atomically.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
