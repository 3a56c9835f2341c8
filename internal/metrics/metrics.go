package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	AnalysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "five",
		Name:      "analysis_duration_seconds",
		Help:      "Время выполнения анализа доски",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"op"})

	Moves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "five",
		Name:      "moves_total",
		Help:      "Количество примененных ходов",
	}, []string{"action"})

	BoardsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "five",
		Name:      "boards_active",
		Help:      "Количество досок в памяти",
	})

	CacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "five",
		Name:      "analysis_cache_total",
		Help:      "Обращения к кэшу анализа",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(AnalysisDuration, Moves, BoardsActive, CacheLookups)
}

// ObserveSince записывает длительность операции анализа
func ObserveSince(op string, start time.Time) {
	AnalysisDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
