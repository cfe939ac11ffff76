package s2a4c

import (
	"context"
	"time"
)

// Endpoint is a caller-facing handle that submits one request at a time to
// its router and waits for the matching response. Endpoints are cheap,
// stateless and independent; create as many as there are concurrent callers,
// or share one, both are safe.
type Endpoint[Req any, Resp any] struct {
	router  *Router[Req, Resp]
	timeout time.Duration
}

// Endpoint returns a handle for submitting requests with the given per-call
// timeout. A timeout of 0 waits forever.
func (r *Router[Req, Resp]) Endpoint(timeout time.Duration) *Endpoint[Req, Resp] {
	return &Endpoint[Req, Resp]{router: r, timeout: timeout}
}

// HandleRequest submits request and blocks until the matching response
// arrives, the endpoint's timeout elapses, ctx is cancelled, or the router
// shuts down. It never hangs past its timeout and returns:
//
//   - the response, once a worker answers the request's identifier
//   - ErrRequestSend when the router is closed at submission time
//   - ErrTimeout when the configured timeout elapses first
//   - ErrResponseReceive when the router shuts down before a response
//   - ctx.Err() when ctx is cancelled while submitting or waiting
//
// Timing out abandons the call locally: no cancellation propagates to the
// worker, whose late response is then discarded by the router.
func (e *Endpoint[Req, Resp]) HandleRequest(ctx context.Context, request Req) (Resp, error) {
	var zero Resp
	r := e.router

	select {
	case <-r.closed:
		return zero, ErrRequestSend
	default:
	}

	reply := make(chan Resp, 1)
	select {
	case r.registrations.SendChan() <- registration[Req, Resp]{request: request, reply: reply}:
	case <-r.closed:
		return zero, ErrRequestSend
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	var expired <-chan time.Time
	if e.timeout > 0 {
		timer := r.clock.NewTimer(e.timeout)
		defer timer.Stop()
		expired = timer.C()
	}

	select {
	case resp, ok := <-reply:
		if !ok {
			return zero, ErrResponseReceive
		}
		return resp, nil
	case <-expired:
		r.stats.timeouts.Add(1)
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-r.stopped:
		// A response delivered just before shutdown completed may already
		// sit in the reply buffer; prefer it over reporting a dead router.
		select {
		case resp, ok := <-reply:
			if ok {
				return resp, nil
			}
		default:
		}
		return zero, ErrResponseReceive
	}
}

// Timeout returns the per-call timeout this endpoint was created with.
func (e *Endpoint[Req, Resp]) Timeout() time.Duration {
	return e.timeout
}
