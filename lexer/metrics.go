package lexer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "lexer",
		Name:      "tokens_total",
		Help:      "Total number of tokens produced, per token type",
	}, []string{"type"})
	metricRefills = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relex",
		Subsystem: "lexer",
		Name:      "refills_total",
		Help:      "Total number of chunks read into lexer windows",
	})
)
