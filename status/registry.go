// Package status holds lock-free presentation counters published by the
// director and read by the frame loop for logging.
package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry groups metrics by value type
// Publishers cache the pointers once; per-frame writes are plain atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Count returns the number of registered metrics of every type
func (r *Registry) Count() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Summary renders every metric as key=value, grouped by type and sorted by key
func (r *Registry) Summary() string {
	var parts []string
	r.Strings.Range(func(k string, v *AtomicString) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v.Load()))
	})
	r.Ints.Range(func(k string, v *atomic.Int64) {
		parts = append(parts, fmt.Sprintf("%s=%d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *AtomicFloat) {
		parts = append(parts, fmt.Sprintf("%s=%.3f", k, v.Get()))
	})
	r.Bools.Range(func(k string, v *atomic.Bool) {
		parts = append(parts, fmt.Sprintf("%s=%t", k, v.Load()))
	})
	return strings.Join(parts, " ")
}
