package s2a4c

// WorkerFunc is the body of a worker spawned by SpawnWorkers. It must keep
// consuming request envelopes until the requests channel closes, and must
// eventually produce exactly one response envelope, carrying the request's
// identifier, for every envelope it accepts. A worker that drops a request
// manifests only as the corresponding caller's timeout.
type WorkerFunc[Req any, Resp any] func(requests <-chan RequestEnvelope[Req], responses chan<- ResponseEnvelope[Resp])

// SpawnWorkers starts n concurrent workers reading the shared request queue
// and writing the shared response queue. Workers may be spawned before Run
// and at any time while the router is live; after Close it is a logged no-op.
// Spawned workers are waited for during shutdown, after the request queue
// closes and drains.
func (r *Router[Req, Resp]) SpawnWorkers(n int, fn WorkerFunc[Req, Resp]) {
	r.workerMu.Lock()
	defer r.workerMu.Unlock()
	if r.spawningDone || r.IsClosed() {
		r.logger.Info("router closed, not spawning workers", "count", n)
		return
	}
	r.workers.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer r.workers.Done()
			fn(r.requests.RecvChan(), r.responses.SendChan())
		}()
	}
}

// SpawnHandlerWorkers starts n workers that answer each request with
// handle(request). A panic in the handler is recovered and counted; the
// poisoned request produces no response, so its caller times out, and the
// worker moves on to the next request.
func (r *Router[Req, Resp]) SpawnHandlerWorkers(n int, handle func(Req) Resp) {
	r.SpawnWorkers(n, func(requests <-chan RequestEnvelope[Req], responses chan<- ResponseEnvelope[Resp]) {
		for env := range requests {
			resp, ok := r.safeHandle(handle, env)
			if !ok {
				continue
			}
			responses <- ResponseEnvelope[Resp]{ID: env.ID, Response: resp}
		}
	})
}

func (r *Router[Req, Resp]) safeHandle(handle func(Req) Resp, env RequestEnvelope[Req]) (resp Resp, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.stats.workerPanics.Add(1)
			r.logger.Error(nil, "worker handler panicked", "id", env.ID, "panic", rec)
			ok = false
		}
	}()
	return handle(env.Request), true
}

// WorkerChannels returns the receive side of the request queue and the send
// side of the response queue, for workers managed outside the router. Such
// workers should exit when the requests channel closes; the router does not
// wait for them during shutdown, and responses they send afterwards are
// dropped unread.
func (r *Router[Req, Resp]) WorkerChannels() (<-chan RequestEnvelope[Req], chan<- ResponseEnvelope[Resp]) {
	return r.requests.RecvChan(), r.responses.SendChan()
}
