package s2a4c

import "sync/atomic"

// Stats is a point-in-time snapshot of router activity counters. Counters are
// best effort: they are updated atomically but a snapshot taken while calls
// are in flight may be mid-transition (for example registered but not yet
// dispatched).
type Stats struct {
	Registered        int64 // registrations accepted and recorded in the correlation map
	Dispatched        int64 // request envelopes handed to the request queue
	DroppedDispatches int64 // dispatches abandoned because the router closed first
	Delivered         int64 // responses matched to a pending call and sent to its reply channel
	UnknownResponses  int64 // responses whose identifier had no pending call
	Timeouts          int64 // calls that gave up waiting
	WorkerPanics      int64 // handler panics recovered inside spawned workers
	PendingCalls      int64 // entries currently in the correlation map
	PendingDispatches int64 // dispatch goroutines currently waiting on the request queue
}

type routerStats struct {
	registered        atomic.Int64
	dispatched        atomic.Int64
	droppedDispatches atomic.Int64
	delivered         atomic.Int64
	unknownResponses  atomic.Int64
	timeouts          atomic.Int64
	workerPanics      atomic.Int64
	pendingDispatches atomic.Int64
}

// Stats returns a snapshot of the router's activity counters.
func (r *Router[Req, Resp]) Stats() Stats {
	return Stats{
		Registered:        r.stats.registered.Load(),
		Dispatched:        r.stats.dispatched.Load(),
		DroppedDispatches: r.stats.droppedDispatches.Load(),
		Delivered:         r.stats.delivered.Load(),
		UnknownResponses:  r.stats.unknownResponses.Load(),
		Timeouts:          r.stats.timeouts.Load(),
		WorkerPanics:      r.stats.workerPanics.Load(),
		PendingCalls:      r.pending.len(),
		PendingDispatches: r.stats.pendingDispatches.Load(),
	}
}
