package metrics

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/pkg/errors"
)

func TestObserveWorkflow(t *testing.T) {
	m := New()

	m.ObserveWorkflow("accept_task", nil)
	m.ObserveWorkflow("accept_task", errors.NotFound("Task", nil))
	m.ObserveWorkflow("accept_task", fmt.Errorf("wrapped: %w", errors.Conflict("stale")))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.workflowOps.WithLabelValues("accept_task", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workflowOps.WithLabelValues("accept_task", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workflowOps.WithLabelValues("accept_task", "conflict")))
}

func TestObserveAI(t *testing.T) {
	m := New()

	m.ObserveAI("rate_severity", nil)
	m.ObserveAI("rate_severity", fmt.Errorf("timeout"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiCalls.WithLabelValues("rate_severity", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiCalls.WithLabelValues("rate_severity", "fallback")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveWorkflow("x", nil)
		m.ObserveAI("x", nil)
		m.ObserveConflict("resqnet_tasks")
		m.ObserveLogin("Citizen", nil)
	})
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ObserveConflict("resqnet_tasks")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `resqnet_store_conflicts_total{collection="resqnet_tasks"} 1`)
}
