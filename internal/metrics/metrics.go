package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/kirinyoku/tix-console/internal/domain"
)

const namespace = "tixconsole"

// Booking outcomes.
const (
	OutcomeConfirmed        = "confirmed"
	OutcomeRejected         = "rejected"
	OutcomeSeatsTaken       = "seats_taken"
	OutcomeInvalidSelection = "invalid_selection"
	OutcomePaymentFailed    = "payment_failed"
	OutcomeError            = "error"
)

// Cancellation outcomes.
const (
	OutcomeCancelled    = "cancelled"
	OutcomeNotFound     = "not_found"
	OutcomeRefundFailed = "refund_failed"
)

// Metrics tracks what happened during one console session. It owns its
// registry so several instances can live side by side in tests. A nil
// *Metrics ignores every update.
type Metrics struct {
	registry      *prometheus.Registry
	bookings      *prometheus.CounterVec
	cancellations *prometheus.CounterVec
	seats         *prometheus.GaugeVec
	revenue       prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		bookings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bookings_total",
				Help:      "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		cancellations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cancellations_total",
				Help:      "Cancellation attempts by outcome",
			},
			[]string{"outcome"},
		),
		seats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "seats",
				Help:      "Seats by status",
			},
			[]string{"status"},
		),
		revenue: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "revenue",
				Help:      "Amount currently held by live bookings",
			},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) TrackBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TrackCancellation(outcome string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetSeatCounts(c domain.EventCounts) {
	if m == nil {
		return
	}
	m.seats.WithLabelValues(string(domain.SeatAvailable)).Set(float64(c.Available))
	m.seats.WithLabelValues(string(domain.SeatReserved)).Set(float64(c.Reserved))
}

func (m *Metrics) AddRevenue(amount float64) {
	if m == nil {
		return
	}
	m.revenue.Add(amount)
}

type Summary struct {
	Bookings      map[string]float64
	Cancellations map[string]float64
	Available     float64
	Reserved      float64
	Revenue       float64
}

// Summary gathers the registry into plain numbers for the exit log.
func (m *Metrics) Summary() (Summary, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Bookings:      map[string]float64{},
		Cancellations: map[string]float64{},
	}

	for _, mf := range families {
		switch mf.GetName() {
		case namespace + "_bookings_total":
			collectCounters(mf, s.Bookings)
		case namespace + "_cancellations_total":
			collectCounters(mf, s.Cancellations)
		case namespace + "_seats":
			for _, metric := range mf.GetMetric() {
				switch label(metric, "status") {
				case string(domain.SeatAvailable):
					s.Available = metric.GetGauge().GetValue()
				case string(domain.SeatReserved):
					s.Reserved = metric.GetGauge().GetValue()
				}
			}
		case namespace + "_revenue":
			for _, metric := range mf.GetMetric() {
				s.Revenue = metric.GetGauge().GetValue()
			}
		}
	}

	return s, nil
}

func collectCounters(mf *dto.MetricFamily, into map[string]float64) {
	for _, metric := range mf.GetMetric() {
		into[label(metric, "outcome")] = metric.GetCounter().GetValue()
	}
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
