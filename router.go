package s2a4c

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"k8s.io/utils/clock"
)

// Router converts synchronous call/response code into an asynchronous
// request pipeline. Callers submit requests through Endpoints; the router
// tags each request with a fresh correlation identifier, hands it to a pool
// of workers over a shared request queue, collects tagged responses from a
// shared response queue in arbitrary order, and routes each response back to
// the exact caller waiting for it.
//
// One Router serves arbitrarily many concurrent Endpoints and workers. All
// shared mutable state lives in the correlation map and the queues, so a
// *Router can be handed around freely.
type Router[Req any, Resp any] struct {
	registrations *queue[registration[Req, Resp]]
	requests      *queue[RequestEnvelope[Req]]
	responses     *queue[ResponseEnvelope[Resp]]
	pending       pendingCalls[Resp]

	registrationCap int
	requestCap      int
	responseCap     int
	logger          logr.Logger
	clock           clock.Clock
	newID           func() uuid.UUID

	running   atomic.Bool
	closed    chan struct{}
	closeOnce sync.Once
	quiesced  chan struct{}
	regDone   chan struct{}
	respDone  chan struct{}
	stopped   chan struct{}

	dispatchers sync.WaitGroup

	workerMu     sync.Mutex
	spawningDone bool
	workers      sync.WaitGroup

	stats routerStats
}

// NewRouter creates a router with all three queues bounded at
// DefaultQueueCapacity unless overridden by options. The queues exist from
// construction, so workers can be spawned and requests submitted before Run
// starts; nothing moves until then.
//
// Examples:
//
//	// Defaults: registration, request and response queues bounded at 100
//	router := NewRouter[string, string]()
//
//	// Unbounded response queue, custom request bound
//	router := NewRouter[string, string](
//	    WithResponseQueueCapacity[string, string](Unbounded),
//	    WithRequestQueueCapacity[string, string](16))
func NewRouter[Req any, Resp any](opts ...RouterOption[Req, Resp]) *Router[Req, Resp] {
	r := &Router[Req, Resp]{
		registrationCap: DefaultQueueCapacity,
		requestCap:      DefaultQueueCapacity,
		responseCap:     DefaultQueueCapacity,
		logger:          logr.Discard(),
		clock:           clock.RealClock{},
		newID:           uuid.New,
		closed:          make(chan struct{}),
		quiesced:        make(chan struct{}),
		regDone:         make(chan struct{}),
		respDone:        make(chan struct{}),
		stopped:         make(chan struct{}),
	}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	r.registrations = newQueue[registration[Req, Resp]](r.registrationCap)
	r.requests = newQueue[RequestEnvelope[Req]](r.requestCap)
	r.responses = newQueue[ResponseEnvelope[Resp]](r.responseCap)
	return r
}

// Run starts the registration and response loops and does not return until
// both have terminated, which happens after Close is called or ctx is
// cancelled. Calling Run a second time just waits for shutdown.
func (r *Router[Req, Resp]) Run(ctx context.Context) {
	if !r.running.CompareAndSwap(false, true) {
		r.logger.V(1).Info("router already running")
		<-r.stopped
		return
	}
	r.logger.Info("router running")
	go r.registrationLoop()
	go r.responseLoop()

	select {
	case <-ctx.Done():
		r.Close()
	case <-r.closed:
	}

	// Shutdown cascade. Each stage owns the close of the next stage's input,
	// so nothing is closed while a producer can still send to it.
	<-r.regDone
	r.dispatchers.Wait()
	r.requests.Close()

	r.workerMu.Lock()
	r.spawningDone = true
	r.workerMu.Unlock()
	r.workers.Wait()

	close(r.quiesced)
	<-r.respDone

	for _, reply := range r.pending.drain() {
		close(reply)
	}
	r.requests.halt()
	r.registrations.halt()
	r.responses.halt()
	close(r.stopped)
	r.logger.Info("router stopped")
}

// Start launches Run on its own goroutine and returns immediately.
func (r *Router[Req, Resp]) Start(ctx context.Context) {
	go r.Run(ctx)
}

// Close begins shutdown: in-flight calls are allowed to finish where
// possible, abandoned callers are released with ErrResponseReceive, and Run
// returns once both loops have terminated. Close is idempotent and returns
// without waiting; use StoppedChan to observe completion.
func (r *Router[Req, Resp]) Close() {
	r.closeOnce.Do(func() { close(r.closed) })
}

// IsClosed reports whether shutdown has begun.
func (r *Router[Req, Resp]) IsClosed() bool {
	select {
	case <-r.closed:
		return true
	default:
		return false
	}
}

// StoppedChan returns a channel that is closed once shutdown has completed
// and both loops have terminated.
func (r *Router[Req, Resp]) StoppedChan() <-chan struct{} {
	return r.stopped
}

func (r *Router[Req, Resp]) registrationLoop() {
	defer close(r.regDone)
	for {
		select {
		case <-r.closed:
			r.drainRegistrations()
			return
		case reg, ok := <-r.registrations.RecvChan():
			if !ok {
				return
			}
			r.register(reg)
		}
	}
}

// drainRegistrations processes whatever the registration queue accepted
// before shutdown began. Entries the non-blocking drain cannot reach (still
// inside an unbounded queue's pump) are released later by the stopped signal.
func (r *Router[Req, Resp]) drainRegistrations() {
	for {
		select {
		case reg, ok := <-r.registrations.RecvChan():
			if !ok {
				return
			}
			r.register(reg)
		default:
			return
		}
	}
}

func (r *Router[Req, Resp]) register(reg registration[Req, Resp]) {
	id := r.newID()
	for !r.pending.insert(id, reg.reply) {
		r.logger.V(1).Info("identifier collision, minting a new one", "id", id)
		id = r.newID()
	}
	r.stats.registered.Add(1)
	r.stats.pendingDispatches.Add(1)
	r.dispatchers.Add(1)
	go r.dispatch(RequestEnvelope[Req]{ID: id, Request: reg.request})
}

// dispatch hands one envelope to the request queue from its own goroutine so
// a full queue never stalls the registration loop. A dispatch still blocked
// when the router closes is dropped; the caller sees only a response that
// never arrives, released by its timeout or the shutdown sweep.
func (r *Router[Req, Resp]) dispatch(env RequestEnvelope[Req]) {
	defer r.dispatchers.Done()
	defer r.stats.pendingDispatches.Add(-1)
	select {
	case r.requests.SendChan() <- env:
		r.stats.dispatched.Add(1)
		return
	default:
	}
	select {
	case r.requests.SendChan() <- env:
		r.stats.dispatched.Add(1)
	case <-r.closed:
		r.stats.droppedDispatches.Add(1)
		r.logger.V(1).Info("dropped dispatch, router closed", "id", env.ID)
	}
}

func (r *Router[Req, Resp]) responseLoop() {
	defer close(r.respDone)
	for {
		select {
		case <-r.quiesced:
			r.drainResponses()
			return
		case env, ok := <-r.responses.RecvChan():
			if !ok {
				return
			}
			r.deliver(env)
		}
	}
}

func (r *Router[Req, Resp]) drainResponses() {
	for {
		select {
		case env, ok := <-r.responses.RecvChan():
			if !ok {
				return
			}
			r.deliver(env)
		default:
			return
		}
	}
}

// deliver routes one response to the caller waiting on its identifier. The
// reply channel has capacity 1 and take succeeds at most once per entry, so
// the send never blocks: a caller that already timed out simply never
// receives the buffered value.
func (r *Router[Req, Resp]) deliver(env ResponseEnvelope[Resp]) {
	reply, ok := r.pending.take(env.ID)
	if !ok {
		r.stats.unknownResponses.Add(1)
		r.logger.V(1).Info("response without a pending call, ignoring", "id", env.ID)
		return
	}
	r.stats.delivered.Add(1)
	reply <- env.Response
}
