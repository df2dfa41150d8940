package engine

import (
	"sync"
	"sync/atomic"
)

// matchCounters accumulates per-rule match counts during a batch. Workers
// increment concurrently; the assigner flushes once per batch through the
// rule persistence collaborator.
type matchCounters struct {
	counts sync.Map // rule ID -> *atomic.Int64
}

func (c *matchCounters) increment(ruleID int64) {
	v, _ := c.counts.LoadOrStore(ruleID, &atomic.Int64{})
	v.(*atomic.Int64).Add(1)
}

// snapshot drains the accumulated counts.
func (c *matchCounters) snapshot() map[int64]int64 {
	out := make(map[int64]int64)
	c.counts.Range(func(k, v any) bool {
		if n := v.(*atomic.Int64).Swap(0); n > 0 {
			out[k.(int64)] = n
		}
		return true
	})
	return out
}
