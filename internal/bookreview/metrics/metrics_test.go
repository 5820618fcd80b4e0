package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *metrics.Metrics
	m.ObserveLogin(metrics.ResultSuccess)
	m.ObserveRefresh(metrics.ResultFailure)
	m.ObserveRevocations("refresh", 3)
	m.ObserveGateRejection("token_revoked")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	require.NotNil(t, m.Middleware(next))
}

func TestCounters(t *testing.T) {
	m := metrics.New()
	m.ObserveLogin(metrics.ResultSuccess)
	m.ObserveLogin(metrics.ResultFailure)
	m.ObserveLogin(metrics.ResultFailure)
	m.ObserveRevocations("refresh", 2)
	m.ObserveRevocations("refresh", 0)

	expected := `
# HELP bookreview_logins_total Login attempts by result.
# TYPE bookreview_logins_total counter
bookreview_logins_total{result="failure"} 2
bookreview_logins_total{result="success"} 1
# HELP bookreview_revocations_total Tokens revoked by scope.
# TYPE bookreview_revocations_total counter
bookreview_revocations_total{scope="refresh"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"bookreview_logins_total", "bookreview_revocations_total"))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := metrics.New()
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `bookreview_http_request_duration_seconds_count{code="418",method="GET"} 1`)
	require.Contains(t, string(body), "go_goroutines")
}
