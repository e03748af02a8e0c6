package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequestRecordsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/orders", "200", 42*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/orders", "200", 10*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/orders", "201", 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	total, ok := byName["http_requests_total"]
	require.True(t, ok, "counter family not registered")

	var getCount float64
	for _, metric := range total.GetMetric() {
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		if labels["method"] == "GET" {
			getCount = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), getCount)

	_, ok = byName["http_request_duration_seconds"]
	assert.True(t, ok, "histogram family not registered")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", "200", time.Millisecond)
	m.IncInFlight()
	m.DecInFlight()

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "", "500", time.Millisecond)
}
