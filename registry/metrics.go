package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	compileOK    = "ok"
	compileError = "error"
	lookupHit    = "hit"
	lookupMiss   = "miss"
)

var (
	metricCompiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "registry",
		Name:      "compiles_total",
		Help:      "Total number of pattern compilations, per result (ok/error)",
	}, []string{"result"})
	metricCompileSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "relex",
		Subsystem: "registry",
		Name:      "compile_seconds",
		Help:      "Time spent compiling a pattern to a minimal DFA",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	})
	metricLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "registry",
		Name:      "lookups_total",
		Help:      "Total number of registry lookups, per result (hit/miss)",
	}, []string{"result"})
)

func init() {
	metricCompiles.WithLabelValues(compileOK)
	metricCompiles.WithLabelValues(compileError)
	metricLookups.WithLabelValues(lookupHit)
	metricLookups.WithLabelValues(lookupMiss)
}
