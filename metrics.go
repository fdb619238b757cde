/*------------------------------------------------------------------------------
* metrics.go : prometheus instrumentation for the filtering transcoder
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the counters and histograms the CLI driver (cmd/rtcmfilter)
// registers against a caller-supplied prometheus.Registerer. They're kept
// off the package-level default registry so a single process can run
// several independent filter pipelines without collisions, mirroring the
// per-instance style the teacher's own app/plot and app/rtkrcv commands use
// their Prometheus client in (see DESIGN.md).
type Metrics struct {
	MessagesTotal       *prometheus.CounterVec
	SignalsDroppedTotal *prometheus.CounterVec
	OutputBytes         prometheus.Histogram
}

// NewMetrics constructs and registers a Metrics set.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MessagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtcm_msm4",
			Name:      "messages_total",
			Help:      "MSM4 messages processed, by outcome status.",
		}, []string{"status"}),
		SignalsDroppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtcm_msm4",
			Name:      "signals_dropped_total",
			Help:      "Decoded signals dropped during re-encoding, by constellation and reason.",
		}, []string{"constellation", "reason"}),
		OutputBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rtcm_msm4",
			Name:      "output_bytes",
			Help:      "Size in bytes of each successfully re-encoded frame.",
			Buckets:   prometheus.ExponentialBuckets(32, 2, 8),
		}),
	}
	reg.MustRegister(m.MessagesTotal, m.SignalsDroppedTotal, m.OutputBytes)
	return m
}

// ObserveConvert records the outcome of one Convert call.
func (m *Metrics) ObserveConvert(status Status, out []byte) {
	if m == nil {
		return
	}
	m.MessagesTotal.WithLabelValues(status.String()).Inc()
	if status == StatusOK {
		m.OutputBytes.Observe(float64(len(out)))
	}
}

// ObserveSignalDropped records one signal dropped for constellation sys, for
// the given reason ("unknown-signal", "not-selected" or "no-space").
func (m *Metrics) ObserveSignalDropped(sys Constellation, reason string) {
	if m == nil {
		return
	}
	m.SignalsDroppedTotal.WithLabelValues(sys.String(), reason).Inc()
}
