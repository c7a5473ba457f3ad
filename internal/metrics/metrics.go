package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "userdict_reloads_total",
		Help: "Dictionary cache reloads by outcome.",
	}, []string{"outcome"})

	persists = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "userdict_persist_total",
		Help: "Asynchronous word persistence attempts by outcome.",
	}, []string{"outcome"})

	cachedWords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "userdict_cached_words",
		Help: "Number of words currently held in the in-memory cache.",
	})

	initOnce sync.Once
)

// Init registers the collectors with the default registry. Must be called
// once at startup; the record helpers are safe to call without it.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(reloads, persists, cachedWords)
	})
}

// RecordReload counts one cache reload with the given outcome.
func RecordReload(outcome string) {
	reloads.WithLabelValues(outcome).Inc()
}

// RecordPersist counts one persistence attempt with the given outcome.
func RecordPersist(outcome string) {
	persists.WithLabelValues(outcome).Inc()
}

// SetCachedWords updates the cache size gauge.
func SetCachedWords(n int) {
	cachedWords.Set(float64(n))
}
