package s2a4c

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestRouterStoppedChan verifies that Run terminates after Close and signals
// completion via StoppedChan
func TestRouterStoppedChan(t *testing.T) {
	router := NewRouter[string, string]()
	router.Start(context.Background())

	router.Close()

	select {
	case <-router.StoppedChan():
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for Router to stop")
	}
}

// TestRouterDoubleClose verifies that Close is idempotent
func TestRouterDoubleClose(t *testing.T) {
	router := NewRouter[string, string]()
	router.Start(context.Background())

	router.Close()
	router.Close()

	select {
	case <-router.StoppedChan():
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for Router to stop")
	}
	if !router.IsClosed() {
		t.Error("IsClosed should report true after Close")
	}
}

// TestRouterContextCancel verifies that cancelling Run's context shuts the
// router down
func TestRouterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	router := NewRouter[string, string]()
	router.Start(ctx)

	cancel()

	select {
	case <-router.StoppedChan():
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for Router to stop after context cancel")
	}
}

// TestRouterCloseBeforeRun verifies that Run returns promptly when the router
// was closed before it ever ran
func TestRouterCloseBeforeRun(t *testing.T) {
	router := NewRouter[string, string]()
	router.Close()

	done := make(chan bool)
	go func() {
		router.Run(context.Background())
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return for a closed router")
	}
}

// TestSpawnAfterClose verifies that SpawnWorkers on a stopped router is a
// no-op rather than a panic or a deadlock
func TestSpawnAfterClose(t *testing.T) {
	router := NewRouter[string, string]()
	router.Start(context.Background())
	router.Close()
	<-router.StoppedChan()

	router.SpawnWorkers(2, func(requests <-chan RequestEnvelope[string], responses chan<- ResponseEnvelope[string]) {
		for range requests {
		}
	})

	if !router.IsClosed() {
		t.Error("router should remain closed")
	}
}

// TestShutdownReleasesWaiters verifies that a caller blocked with no workers
// gets ErrResponseReceive when the router stops instead of hanging
func TestShutdownReleasesWaiters(t *testing.T) {
	router := NewRouter[string, string]()
	router.Start(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := router.Endpoint(0).HandleRequest(context.Background(), "nobody answers")
		errCh <- err
	}()

	// Let the call register before shutting down
	time.Sleep(50 * time.Millisecond)
	router.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrResponseReceive) {
			t.Errorf("Expected ErrResponseReceive, got: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for the abandoned caller to be released")
	}
}

// TestShutdownDrainsAcceptedRegistrations verifies that registrations sitting
// in the queue when shutdown begins are still carried through to workers
func TestShutdownDrainsAcceptedRegistrations(t *testing.T) {
	router := NewRouter[string, string]()
	router.SpawnHandlerWorkers(1, echoWorker(0))

	const calls = 3
	errCh := make(chan error, calls)
	respCh := make(chan string, calls)
	for i := 0; i < calls; i++ {
		go func(i int) {
			resp, err := router.Endpoint(0).HandleRequest(context.Background(), fmt.Sprintf("buffered-%d", i))
			if err != nil {
				errCh <- err
			} else {
				respCh <- resp
			}
		}(i)
	}

	// The registrations buffer in the queue while the router has never run;
	// closing first forces Run straight into its drain path.
	time.Sleep(50 * time.Millisecond)
	router.Close()
	router.Run(context.Background())

	got := map[string]bool{}
	for i := 0; i < calls; i++ {
		select {
		case err := <-errCh:
			t.Fatalf("call failed during drain: %v", err)
		case resp := <-respCh:
			got[resp] = true
		case <-time.After(testTimeout):
			t.Fatal("Timeout waiting for drained calls to complete")
		}
	}
	if len(got) != calls {
		t.Errorf("Expected %d distinct responses, got %d", calls, len(got))
	}
}
