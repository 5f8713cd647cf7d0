package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"resqnet/pkg/errors"
)

const namespace = "resqnet"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry       *prometheus.Registry
	workflowOps    *prometheus.CounterVec
	aiCalls        *prometheus.CounterVec
	storeConflicts *prometheus.CounterVec
	logins         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		workflowOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_operations_total",
			Help:      "Workflow operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_calls_total",
			Help:      "AI adapter calls by capability and outcome (ok or fallback).",
		}, []string{"capability", "outcome"}),
		storeConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_conflicts_total",
			Help:      "Rejected optimistic writes per collection.",
		}, []string{"collection"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by role and outcome.",
		}, []string{"role", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.workflowOps,
		m.aiCalls,
		m.storeConflicts,
		m.logins,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// outcome maps an error to a low-cardinality label.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return strings.ToLower(appErr.Code)
	}
	return "error"
}

func (m *Metrics) ObserveWorkflow(operation string, err error) {
	if m == nil {
		return
	}
	m.workflowOps.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *Metrics) ObserveAI(capability string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "fallback"
	}
	m.aiCalls.WithLabelValues(capability, result).Inc()
}

func (m *Metrics) ObserveConflict(collection string) {
	if m == nil {
		return
	}
	m.storeConflicts.WithLabelValues(collection).Inc()
}

func (m *Metrics) ObserveLogin(role string, err error) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(role, outcome(err)).Inc()
}
