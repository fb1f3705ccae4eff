package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_writes_total",
			Help: "Completed collection writes",
		},
		[]string{"collection", "op"},
	)

	writeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "record_write_failures_total",
			Help: "Collection writes rejected by the store",
		},
		[]string{"collection"},
	)

	collectionSeeds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collection_seeds_total",
			Help: "Lazy seeds of empty collections",
		},
		[]string{"collection"},
	)

	changeNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "change_notifications_total",
			Help: "Change notifications dispatched to subscribers",
		},
		[]string{"key"},
	)

	changeSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "change_subscribers",
			Help: "Currently registered change subscribers",
		},
	)
)

type Monitor struct{}

func NewMonitor() *Monitor {
	return &Monitor{}
}

// Track collection writes
func (m *Monitor) TrackWrite(collection, op string) {
	recordWrites.WithLabelValues(collection, op).Inc()
}

// Track rejected writes
func (m *Monitor) TrackWriteFailure(collection string) {
	writeFailures.WithLabelValues(collection).Inc()
}

// Track lazy seeding
func (m *Monitor) TrackSeed(collection string) {
	collectionSeeds.WithLabelValues(collection).Inc()
}

// Track notification dispatch
func (m *Monitor) TrackNotification(key string) {
	changeNotifications.WithLabelValues(key).Inc()
}

// Track subscriber count
func (m *Monitor) SetSubscribers(n int) {
	changeSubscribers.Set(float64(n))
}
