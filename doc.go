// Package s2a4c turns synchronous call/response code into an asynchronous,
// many-producer/many-consumer pipeline while preserving request-response
// correlation and optional per-call timeouts.
//
// Callers issue a request and await the matching response without knowing
// which worker produced it or in what order concurrent calls complete.
//
// The main components include:
//
//   - Router: owns the registration, request and response queues plus the
//     correlation map, runs the two background loops that tag outbound
//     requests and route inbound responses, and manages shutdown
//   - Endpoint: caller-facing handle that submits one request and blocks
//     until the matching response, a timeout, or router shutdown
//   - Workers: external collaborators consuming RequestEnvelopes from the
//     shared request queue and producing ResponseEnvelopes, started with
//     SpawnWorkers/SpawnHandlerWorkers or wired by hand via WorkerChannels
//
// Each queue is independently bounded or unbounded, every call is tagged
// with a unique 128-bit identifier, responses are delivered at most once,
// and a caller that times out abandons its call locally without cancelling
// the worker still computing it.
package s2a4c
