// Package registry caches compiled matchers by pattern.
//
// Compiling a pattern runs the full parse, NFA, subset and minimization
// pipeline, so callers that look the same pattern up repeatedly (the lexer
// does so for every token type) share one Registry. Each pattern is compiled
// at most once, including patterns that fail to compile: the error is cached
// alongside the matcher.
package registry

import (
	"log/slog"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/coregx/relex"
)

type entry struct {
	m   *relex.Matcher
	err error
}

// Registry is a concurrency-safe cache of compiled matchers.
type Registry struct {
	entries *xsync.MapOf[string, *entry]
	logger  *slog.Logger
}

// New creates an empty registry. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: xsync.NewMapOf[string, *entry](),
		logger:  logger,
	}
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return New(nil)
})

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry()
}

// Get returns the matcher for pattern, compiling it on first use.
//
// Concurrent first lookups of one pattern compile it once; the others wait
// for and share the result.
func (r *Registry) Get(pattern string) (*relex.Matcher, error) {
	e, loaded := r.entries.LoadOrCompute(pattern, func() *entry {
		return r.compile(pattern)
	})
	if loaded {
		metricLookups.WithLabelValues(lookupHit).Inc()
	} else {
		metricLookups.WithLabelValues(lookupMiss).Inc()
	}
	return e.m, e.err
}

// MustGet is like Get but panics if the pattern does not compile.
func (r *Registry) MustGet(pattern string) *relex.Matcher {
	m, err := r.Get(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of cached patterns, failed ones included.
func (r *Registry) Len() int {
	return r.entries.Size()
}

func (r *Registry) compile(pattern string) *entry {
	t0 := time.Now()
	m, err := relex.Compile(pattern)
	metricCompileSeconds.Observe(time.Since(t0).Seconds())

	if err != nil {
		metricCompiles.WithLabelValues(compileError).Inc()
		r.logger.Warn("pattern failed to compile", "pattern", pattern, "error", err)
		return &entry{err: err}
	}

	metricCompiles.WithLabelValues(compileOK).Inc()
	r.logger.Debug("compiled pattern",
		"pattern", pattern,
		"states", m.Automaton().Len(),
		"alphabet", len(m.Automaton().Alphabet()),
		"took", time.Since(t0))
	return &entry{m: m}
}
