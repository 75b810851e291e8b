package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.UpstreamSucceeded()
	m.UpstreamSucceeded()
	m.UpstreamFailed()
	m.Observe(5, 2)
	m.Observe(3, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.droppedItems))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.apps))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Observe(4, 0)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "argocd_status_apps 4")
	assert.Contains(t, string(body), "argocd_status_dropped_items_total 0")
}
