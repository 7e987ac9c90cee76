package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirinyoku/tix-console/internal/domain"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.TrackBooking(OutcomeConfirmed)
	m.TrackBooking(OutcomeConfirmed)
	m.TrackBooking(OutcomePaymentFailed)
	m.TrackCancellation(OutcomeRefundFailed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookings.WithLabelValues(OutcomeConfirmed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookings.WithLabelValues(OutcomePaymentFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancellations.WithLabelValues(OutcomeRefundFailed)))
}

func TestMetrics_Summary(t *testing.T) {
	m := New()

	m.TrackBooking(OutcomeConfirmed)
	m.TrackBooking(OutcomeSeatsTaken)
	m.TrackCancellation(OutcomeCancelled)
	m.SetSeatCounts(domain.EventCounts{Available: 37, Reserved: 3, Total: 40})
	m.AddRevenue(435)
	m.AddRevenue(-145)

	s, err := m.Summary()
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{OutcomeConfirmed: 1, OutcomeSeatsTaken: 1}, s.Bookings)
	assert.Equal(t, map[string]float64{OutcomeCancelled: 1}, s.Cancellations)
	assert.Equal(t, 37.0, s.Available)
	assert.Equal(t, 3.0, s.Reserved)
	assert.Equal(t, 290.0, s.Revenue)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.TrackBooking(OutcomeConfirmed)
		m.TrackCancellation(OutcomeCancelled)
		m.SetSeatCounts(domain.EventCounts{})
		m.AddRevenue(1)
	})
}
