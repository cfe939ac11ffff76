package s2a4c

import "errors"

var (
	// ErrRequestSend is returned by Endpoint.HandleRequest when the router is
	// closed and can no longer accept registrations. Not retryable without
	// constructing a new router.
	ErrRequestSend = errors.New("request submission failed: router closed")

	// ErrResponseReceive is returned by Endpoint.HandleRequest when the reply
	// channel is closed before a response arrives, which happens when the
	// router shuts down while the call is still pending.
	ErrResponseReceive = errors.New("reply channel closed without a response")

	// ErrTimeout is returned by Endpoint.HandleRequest when no response
	// arrives within the endpoint's configured timeout. The caller may retry;
	// router state is unaffected.
	ErrTimeout = errors.New("timed out waiting for response")
)
