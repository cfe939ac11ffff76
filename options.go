package s2a4c

import (
	"github.com/go-logr/logr"
	"k8s.io/utils/clock"
)

// DefaultQueueCapacity is the bound applied to each of the three queues when
// no capacity option overrides it.
const DefaultQueueCapacity = 100

// Unbounded is the capacity value that selects an unbounded queue.
const Unbounded = 0

// RouterOption is a functional option for configuring a Router.
type RouterOption[Req any, Resp any] func(*Router[Req, Resp])

// WithRegistrationQueueCapacity sets the registration queue capacity.
// Values <= 0 select an unbounded queue.
func WithRegistrationQueueCapacity[Req any, Resp any](capacity int) RouterOption[Req, Resp] {
	return func(r *Router[Req, Resp]) {
		r.registrationCap = capacity
	}
}

// WithRequestQueueCapacity sets the request queue capacity.
// Values <= 0 select an unbounded queue.
func WithRequestQueueCapacity[Req any, Resp any](capacity int) RouterOption[Req, Resp] {
	return func(r *Router[Req, Resp]) {
		r.requestCap = capacity
	}
}

// WithResponseQueueCapacity sets the response queue capacity.
// Values <= 0 select an unbounded queue.
func WithResponseQueueCapacity[Req any, Resp any](capacity int) RouterOption[Req, Resp] {
	return func(r *Router[Req, Resp]) {
		r.responseCap = capacity
	}
}

// WithLogger sets the logger for router-internal events. The default discards
// everything, keeping internal failures silent and non-fatal.
func WithLogger[Req any, Resp any](logger logr.Logger) RouterOption[Req, Resp] {
	return func(r *Router[Req, Resp]) {
		r.logger = logger
	}
}

// WithClock sets the clock used for endpoint timeout timers, mainly so tests
// can substitute a fake.
func WithClock[Req any, Resp any](c clock.Clock) RouterOption[Req, Resp] {
	return func(r *Router[Req, Resp]) {
		r.clock = c
	}
}
