package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMonitor_ObserveAIRequest(t *testing.T) {
	m := NewMonitor()
	m.ObserveAIRequest("recipes", OutcomeOK, 2*time.Second)
	m.ObserveAIRequest("recipes", OutcomeOK, time.Second)
	m.ObserveAIRequest("recipes", OutcomeFailed, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.aiRequests.WithLabelValues("recipes", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequests.WithLabelValues("recipes", OutcomeFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.aiDuration))
}

func TestMonitor_RecordStoreWrite(t *testing.T) {
	m := NewMonitor()
	m.RecordStoreWrite("fridjy_inventory", nil)
	m.RecordStoreWrite("fridjy_inventory", errors.New("disk full"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeWrites.WithLabelValues("fridjy_inventory", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeWrites.WithLabelValues("fridjy_inventory", OutcomeFailed)))
}

func TestMonitor_Handler(t *testing.T) {
	m := NewMonitor()
	m.SetInventorySize(4)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "fridjy_inventory_items 4"))
}

func TestMonitor_NilIsNoop(t *testing.T) {
	var m *Monitor
	assert.NotPanics(t, func() {
		m.ObserveAIRequest("insights", OutcomeDegraded, time.Millisecond)
		m.RecordStoreWrite("fridjy_health_logs", nil)
		m.SetInventorySize(1)
	})
	assert.Zero(t, m.Uptime())
}
