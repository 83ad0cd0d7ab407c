package api

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the service counters, registered on the server's
// isolated registry.
type metrics struct {
	documentsTotal  *prometheus.CounterVec
	recordsTotal    prometheus.Counter
	paramsTotal     prometheus.Counter
	warningsTotal   prometheus.Counter
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		documentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fdskit_documents_total",
			Help: "Documents processed, by handler and outcome.",
		}, []string{"handler", "outcome"}),
		recordsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fdskit_records_total",
			Help: "Namelist records decoded.",
		}),
		paramsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fdskit_params_total",
			Help: "Parameters decoded.",
		}),
		warningsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fdskit_warnings_total",
			Help: "Unknown-group warnings emitted.",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fdskit_request_duration_seconds",
			Help:    "Request handling duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
	}
	reg.MustRegister(
		m.documentsTotal,
		m.recordsTotal,
		m.paramsTotal,
		m.warningsTotal,
		m.requestDuration,
	)
	return m
}
