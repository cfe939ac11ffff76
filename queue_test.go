package s2a4c

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueueBoundedFIFO(t *testing.T) {
	q := newQueue[int](8)
	for i := 0; i < 5; i++ {
		q.SendChan() <- i
	}
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, withTimeout(t, q.RecvChan()))
	}
}

func TestQueueBoundedCloseDrains(t *testing.T) {
	q := newQueue[int](8)
	q.SendChan() <- 1
	q.SendChan() <- 2
	q.Close()

	assert.Equal(t, 1, withTimeout(t, q.RecvChan()))
	assert.Equal(t, 2, withTimeout(t, q.RecvChan()))

	select {
	case _, ok := <-q.RecvChan():
		assert.False(t, ok, "queue should report closed once drained")
	case <-time.After(testTimeout):
		t.Fatal("queue did not close after draining")
	}
}

func TestQueueUnboundedNeverBlocksSenders(t *testing.T) {
	q := newQueue[int](Unbounded)

	// Send a thousand values with nobody receiving.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			q.SendChan() <- i
		}
	}()
	select {
	case <-done:
	case <-time.After(testTimeout):
		t.Fatal("unbounded queue blocked a sender")
	}

	for i := 0; i < 1000; i++ {
		assert.Equal(t, i, withTimeout(t, q.RecvChan()))
	}
}

func TestQueueUnboundedCloseDrains(t *testing.T) {
	q := newQueue[int](Unbounded)
	for i := 0; i < 3; i++ {
		q.SendChan() <- i
	}
	q.Close()

	for i := 0; i < 3; i++ {
		assert.Equal(t, i, withTimeout(t, q.RecvChan()))
	}
	select {
	case _, ok := <-q.RecvChan():
		assert.False(t, ok, "queue should report closed once drained")
	case <-time.After(testTimeout):
		t.Fatal("queue did not close after draining")
	}
}

func TestQueueHaltStopsPump(t *testing.T) {
	q := newQueue[int](Unbounded)
	for i := 0; i < 3; i++ {
		q.SendChan() <- i
	}

	// halt terminates the pump without closing the send side; buffered
	// values are dropped and the receive side closes.
	q.halt()
	q.halt()

	deadline := time.After(testTimeout)
	for {
		select {
		case _, ok := <-q.RecvChan():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("queue did not shut down after halt")
		}
	}
}
