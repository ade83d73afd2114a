package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementAthletesCreated()
	m.IncrementAthletesCreated()
	m.IncrementAthletesDeleted()
	m.ObserveCacheLookup("categoria", "hit")

	assert.InDelta(t, 2, testutil.ToFloat64(m.AthletesCreated), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AthletesDeleted), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "hit")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("categoria", "miss")), 0)
}

func TestObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("/atletas/{id}", "GET", "200", time.Now().Add(-10*time.Millisecond))

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))
}
