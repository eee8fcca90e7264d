package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	eventReceivedCounter  prometheus.Counter
	eventIgnoredCounter   prometheus.Counter
	actionAppliedCounter  prometheus.Counter
	promotionFiredCounter prometheus.Counter
	watchdogFiredCounter  prometheus.Counter
	intentFailedCounter   prometheus.Counter
	activeRoomsGauge      prometheus.Gauge
}

func (m *metrics) EventReceived() {
	m.eventReceivedCounter.Inc()
}

func (m *metrics) EventIgnored() {
	m.eventIgnoredCounter.Inc()
}

func (m *metrics) ActionApplied() {
	m.actionAppliedCounter.Inc()
}

func (m *metrics) PromotionFired() {
	m.promotionFiredCounter.Inc()
}

func (m *metrics) WatchdogFired() {
	m.watchdogFiredCounter.Inc()
}

func (m *metrics) IntentFailed() {
	m.intentFailedCounter.Inc()
}

func (m *metrics) SetActiveRoomsCount(count int) {
	m.activeRoomsGauge.Set(float64(count))
}

var Metrics = &metrics{
	eventReceivedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "server_events_received_total",
		Help: "Total number of server events received",
	}),
	eventIgnoredCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "server_events_ignored_total",
		Help: "Total number of malformed or unknown server events ignored",
	}),
	actionAppliedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "actions_applied_total",
		Help: "Total number of actions applied by the reducer",
	}),
	promotionFiredCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "promotions_fired_total",
		Help: "Total number of reveal pipeline promotions",
	}),
	watchdogFiredCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "watchdog_force_clears_total",
		Help: "Total number of watchdog force clears",
	}),
	intentFailedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "intents_failed_total",
		Help: "Total number of player intents rejected by the server",
	}),
	activeRoomsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "active_rooms_count",
		Help: "Count of the entries in the room manager activeRooms map",
	}),
}
