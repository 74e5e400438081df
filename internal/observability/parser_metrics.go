// Package observability exposes prometheus instrumentation for the streaming
// tool-call parser.
package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ParserMetrics tracks health of the streaming tool-call parse pipeline.
type ParserMetrics struct {
	partialDecodes   prometheus.Counter
	partialMisses    prometheus.Counter
	repairs          prometheus.Counter
	finalized        *prometheus.CounterVec
	finalizeFailures *prometheus.CounterVec
	unknownCallIDs   prometheus.Counter
}

var (
	defaultParserMetrics     *ParserMetrics
	defaultParserMetricsOnce sync.Once
)

// NewParserMetrics builds a ParserMetrics recorder using the default registry.
func NewParserMetrics() *ParserMetrics {
	defaultParserMetricsOnce.Do(func() {
		defaultParserMetrics = newParserMetrics(prometheus.DefaultRegisterer)
	})
	return defaultParserMetrics
}

// NewParserMetricsWithRegisterer allows tests to provide a dedicated registry.
func NewParserMetricsWithRegisterer(reg prometheus.Registerer) *ParserMetrics {
	return newParserMetrics(reg)
}

func newParserMetrics(reg prometheus.Registerer) *ParserMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &ParserMetrics{
		partialDecodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callstream",
			Subsystem: "parser",
			Name:      "partial_decode_total",
			Help:      "Number of deltas that produced a partial tool-call preview",
		}),
		partialMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callstream",
			Subsystem: "parser",
			Name:      "partial_miss_total",
			Help:      "Number of deltas whose accumulated text had no decodable prefix yet",
		}),
		repairs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callstream",
			Subsystem: "parser",
			Name:      "argument_repair_total",
			Help:      "Number of partial argument payloads decoded only after JSON repair",
		}),
		finalized: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callstream",
			Subsystem: "parser",
			Name:      "finalized_total",
			Help:      "Tool calls finalized successfully, by name classification",
		}, []string{"class"}),
		finalizeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "callstream",
			Subsystem: "parser",
			Name:      "finalize_failure_total",
			Help:      "Tool calls that failed finalization, by reason",
		}, []string{"reason"}),
		unknownCallIDs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "callstream",
			Subsystem: "parser",
			Name:      "unknown_call_id_total",
			Help:      "Deltas or finalizations addressed to an untracked call id",
		}),
	}
}

// RecordPartialDecode counts a delta that yielded a partial preview.
func (m *ParserMetrics) RecordPartialDecode() {
	if m == nil || m.partialDecodes == nil {
		return
	}
	m.partialDecodes.Inc()
}

// RecordPartialMiss counts a delta with no decodable prefix yet.
func (m *ParserMetrics) RecordPartialMiss() {
	if m == nil || m.partialMisses == nil {
		return
	}
	m.partialMisses.Inc()
}

// RecordRepair counts a partial decode that needed argument repair.
func (m *ParserMetrics) RecordRepair() {
	if m == nil || m.repairs == nil {
		return
	}
	m.repairs.Inc()
}

// RecordFinalized counts a successful finalization by classification.
func (m *ParserMetrics) RecordFinalized(class string) {
	if m == nil || m.finalized == nil {
		return
	}
	m.finalized.WithLabelValues(class).Inc()
}

// RecordFinalizeFailure counts a terminal per-call failure by reason.
func (m *ParserMetrics) RecordFinalizeFailure(reason string) {
	if m == nil || m.finalizeFailures == nil {
		return
	}
	m.finalizeFailures.WithLabelValues(reason).Inc()
}

// RecordUnknownCallID counts an operation addressed to an untracked id.
func (m *ParserMetrics) RecordUnknownCallID() {
	if m == nil || m.unknownCallIDs == nil {
		return
	}
	m.unknownCallIDs.Inc()
}
