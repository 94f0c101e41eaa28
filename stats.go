package framenest

import (
	"github.com/rcrowley/go-metrics"
)

// Stat names counted by an injector when a receiver is attached.
const (
	statGets                = "gets"
	statCacheHits           = "cacheHits"
	statInstantiations      = "instantiations"
	statInstantiationErrors = "instantiationErrors"
)

// StatsReceiver is a minimal instrumentation seam backed by go-metrics. The
// wrapper exists so the metrics dependency does not leak to anyone pulling
// this in as a library; injectors default to no receiver at all.
type StatsReceiver interface {
	Counter(name string) Counter
}

// Counter is a monotonically increasing count.
type Counter interface {
	Inc(delta int64)
	Count() int64
}

// DefaultStatsReceiver returns a receiver backed by a private go-metrics
// registry.
func DefaultStatsReceiver() StatsReceiver {
	return &metricsReceiver{registry: metrics.NewRegistry()}
}

type metricsReceiver struct {
	registry metrics.Registry
}

func (r *metricsReceiver) Counter(name string) Counter {
	return r.registry.GetOrRegister(name, metrics.NewCounter).(metrics.Counter)
}
