package s2a4c

import "github.com/google/uuid"

// RequestEnvelope carries a request and its correlation identifier from the
// router to whichever worker picks it up. It lives only on the request queue
// between dispatch and worker pickup.
type RequestEnvelope[Req any] struct {
	ID      uuid.UUID // Correlation identifier minted at registration
	Request Req       // The caller's request payload
}

// ResponseEnvelope carries a worker's response and the identifier of the
// request it answers. It lives only on the response queue between worker
// completion and router pickup.
type ResponseEnvelope[Resp any] struct {
	ID       uuid.UUID // Correlation identifier copied from the request envelope
	Response Resp      // The worker's response payload
}

// registration pairs a request with the private reply channel of the caller
// that submitted it. The reply channel always has capacity 1 so delivery
// never blocks the response loop, even when the caller has already given up.
type registration[Req any, Resp any] struct {
	request Req
	reply   chan Resp
}
