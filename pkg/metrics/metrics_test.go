package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("crew-booking", prometheus.NewRegistry())

	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 201, 10*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/bookings", 409, 5*time.Millisecond)
	m.ObserveAdmission(true)
	m.ObserveAdmission(false)
	m.ObserveAdmission(false)
	m.ObserveCacheLookup(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("crew-booking", "POST", "/api/v1/bookings", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("crew-booking", "POST", "/api/v1/bookings", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AdmissionDecisions.WithLabelValues("crew-booking", "accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AdmissionDecisions.WithLabelValues("crew-booking", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FreeWindowsCache.WithLabelValues("crew-booking", "hit")))
}

func TestMetrics_DBQueryErrors(t *testing.T) {
	m := NewWithRegistry("crew-booking", prometheus.NewRegistry())

	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("select", time.Millisecond, sql.ErrNoRows)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 0.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("crew-booking", "select")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("crew-booking", "insert")))
}

func TestMetrics_PoolStats(t *testing.T) {
	m := NewWithRegistry("crew-booking", prometheus.NewRegistry())

	m.SetDBPoolStats(sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3, MaxOpenConnections: 25})

	assert.Equal(t, 5.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("crew-booking", "open")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("crew-booking", "in_use")))
	assert.Equal(t, 25.0, testutil.ToFloat64(m.DBConnections.WithLabelValues("crew-booking", "max_open")))
}
