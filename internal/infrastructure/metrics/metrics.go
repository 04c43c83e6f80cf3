package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TradeMetrics holds all shop/trade counters and histograms.
type TradeMetrics struct {
	TradesExecutedTotal prometheus.CounterVec
	TradesFailedTotal   prometheus.CounterVec
	TradeAmountTotal    prometheus.CounterVec
	TradeDuration       prometheus.HistogramVec

	ShopsActive   prometheus.Gauge
	ShopsCreated  prometheus.Counter
	ShopsRemoved  prometheus.Counter
	FlushDuration prometheus.Histogram
	FlushErrors   prometheus.Counter
}

func NewTradeMetrics() *TradeMetrics {
	return &TradeMetrics{
		TradesExecutedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shop_trades_executed_total",
				Help: "Committed trades by shop and direction",
			},
			[]string{"shop_id", "direction"},
		),

		TradesFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shop_trades_failed_total",
				Help: "Rejected or aborted trades by failure reason",
			},
			[]string{"reason"},
		),

		TradeAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shop_trade_amount_total",
				Help: "Total currency moved by committed trades",
			},
			[]string{"shop_id", "direction"},
		),

		TradeDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shop_trade_duration_seconds",
				Help:    "Trade execution time inside the tick loop",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
			},
			[]string{"direction"},
		),

		ShopsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shop_registry_shops",
				Help: "Shops currently held by the registry",
			},
		),

		ShopsCreated: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shop_registry_created_total",
				Help: "Shops created since process start",
			},
		),

		ShopsRemoved: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shop_registry_removed_total",
				Help: "Shops removed since process start",
			},
		),

		FlushDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "shop_snapshot_flush_duration_seconds",
				Help:    "Time spent writing registry snapshots to the store",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
		),

		FlushErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shop_snapshot_flush_errors_total",
				Help: "Snapshot flushes that failed",
			},
		),
	}
}

// RecordTradeExecuted records a committed trade.
func (m *TradeMetrics) RecordTradeExecuted(shopID, direction string, totalPrice int64, durationSeconds float64) {
	m.TradesExecutedTotal.WithLabelValues(shopID, direction).Inc()
	m.TradeAmountTotal.WithLabelValues(shopID, direction).Add(float64(totalPrice))
	m.TradeDuration.WithLabelValues(direction).Observe(durationSeconds)
}

// RecordTradeFailed records a rejected or rolled-back trade.
func (m *TradeMetrics) RecordTradeFailed(reason string) {
	m.TradesFailedTotal.WithLabelValues(reason).Inc()
}

func (m *TradeMetrics) RecordShopCreated() {
	m.ShopsCreated.Inc()
	m.ShopsActive.Inc()
}

func (m *TradeMetrics) RecordShopRemoved() {
	m.ShopsRemoved.Inc()
	m.ShopsActive.Dec()
}

func (m *TradeMetrics) SetShopsActive(n int) {
	m.ShopsActive.Set(float64(n))
}

// RecordFlush records a snapshot flush attempt.
func (m *TradeMetrics) RecordFlush(durationSeconds float64, err error) {
	m.FlushDuration.Observe(durationSeconds)
	if err != nil {
		m.FlushErrors.Inc()
	}
}
