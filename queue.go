package s2a4c

import "sync"

// queue is a FIFO conduit between producers and consumers. With a positive
// capacity it is a single buffered channel, so senders block once the buffer
// fills. With capacity <= 0 it is unbounded: a pump goroutine shuttles values
// from the input channel to the output channel through a growable buffer, so
// senders never block.
type queue[T any] struct {
	in       chan T
	out      chan T
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func newQueue[T any](capacity int) *queue[T] {
	q := &queue[T]{stop: make(chan struct{})}
	if capacity > 0 {
		ch := make(chan T, capacity)
		q.in = ch
		q.out = ch
		return q
	}
	q.in = make(chan T)
	q.out = make(chan T)
	q.wg.Add(1)
	go q.pump()
	return q
}

// SendChan returns the channel onto which values can be sent.
func (q *queue[T]) SendChan() chan<- T {
	return q.in
}

// RecvChan returns the channel from which values can be received.
func (q *queue[T]) RecvChan() <-chan T {
	return q.out
}

// Close closes the send side. Values already accepted remain receivable;
// once they are drained the receive side reports closed. Only the sole
// owner of the send side may call Close, and only once.
func (q *queue[T]) Close() {
	close(q.in)
}

// halt terminates the pump goroutine without closing the send side, dropping
// any values still buffered. Used at router teardown for queues whose send
// side has concurrent producers and therefore can never be closed safely.
// Safe to call more than once; a no-op for bounded queues.
func (q *queue[T]) halt() {
	q.stopOnce.Do(func() { close(q.stop) })
	q.wg.Wait()
}

func (q *queue[T]) pump() {
	defer q.wg.Done()
	defer close(q.out)
	in := q.in
	var buf []T
	for in != nil || len(buf) > 0 {
		// Receiving from a nil channel blocks forever, so a closed input
		// leaves only the drain and stop cases live. Likewise out stays nil
		// until there is something to offer.
		var out chan T
		var head T
		if len(buf) > 0 {
			out = q.out
			head = buf[0]
		}
		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			buf = append(buf, v)
		case out <- head:
			buf = buf[1:]
		case <-q.stop:
			return
		}
	}
}
