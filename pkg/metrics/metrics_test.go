package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetrics(t *testing.T) {
	InitMetrics()
	InitMetrics() // 重复调用不会重复注册

	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsInProgress)
	assert.NotNil(t, OrdersCreatedTotal)
	assert.NotNil(t, OrdersFailedTotal)
	assert.NotNil(t, BooksSoldTotal)
}

func TestCounter(t *testing.T) {
	InitMetrics()

	before := getCounterValue(t, OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	IncCounter(OrdersCreatedTotal)
	assert.Equal(t, before+2, getCounterValue(t, OrdersCreatedTotal))

	before = getCounterValue(t, BooksSoldTotal)
	AddCounter(BooksSoldTotal, 5)
	assert.Equal(t, before+5, getCounterValue(t, BooksSoldTotal))
}

func TestCounterVec(t *testing.T) {
	InitMetrics()

	get := map[string]string{"method": "GET", "path": "/api/v1/books/", "status": "200"}
	post := map[string]string{"method": "POST", "path": "/api/v1/orders/", "status": "201"}

	IncCounterVec(HTTPRequestsTotal, get)
	IncCounterVec(HTTPRequestsTotal, post)
	IncCounterVec(HTTPRequestsTotal, get)

	assert.Equal(t, float64(2), getCounterVecValue(t, HTTPRequestsTotal, get))
	assert.Equal(t, float64(1), getCounterVecValue(t, HTTPRequestsTotal, post))

	IncCounterVec(OrdersFailedTotal, map[string]string{"reason": "validation"})
	assert.Equal(t, float64(1), getCounterVecValue(t, OrdersFailedTotal, map[string]string{"reason": "validation"}))
}

func TestGauge(t *testing.T) {
	InitMetrics()
	HTTPRequestsInProgress.Set(0)

	IncGauge(HTTPRequestsInProgress)
	IncGauge(HTTPRequestsInProgress)
	DecGauge(HTTPRequestsInProgress)

	assert.Equal(t, float64(1), getGaugeValue(t, HTTPRequestsInProgress))
}

func TestHistogram(t *testing.T) {
	InitMetrics()

	ObserveHistogram(OrderCreationDuration, 0.05)
	ObserveHistogram(OrderCreationDuration, 0.5)

	var metric dto.Metric
	require.NoError(t, OrderCreationDuration.Write(&metric))
	assert.Equal(t, uint64(2), metric.Histogram.GetSampleCount())
	assert.InDelta(t, 0.55, metric.Histogram.GetSampleSum(), 1e-9)

	labels := map[string]string{"method": "GET", "path": "/api/v1/books/"}
	ObserveHistogramVec(HTTPRequestDuration, labels, 0.02)
	metric = dto.Metric{}
	require.NoError(t, HTTPRequestDuration.With(labels).(prometheus.Histogram).Write(&metric))
	assert.Equal(t, uint64(1), metric.Histogram.GetSampleCount())
}

func TestNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		IncCounter(nil)
		IncCounterVec(nil, nil)
		IncGauge(nil)
		ObserveHistogram(nil, 1)
	})
}

func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counter.Write(&metric))
	return metric.Counter.GetValue()
}

func getCounterVecValue(t *testing.T, counterVec *prometheus.CounterVec, labels map[string]string) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, counterVec.With(labels).Write(&metric))
	return metric.Counter.GetValue()
}

func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, gauge.Write(&metric))
	return metric.Gauge.GetValue()
}
