package s2a4c

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// pendingCalls maps correlation identifiers to the reply channels of callers
// still waiting for a response. The registration loop inserts entries and the
// response loop removes them, concurrently and without external locking.
// Removal is atomic, so a response is handed to at most one winner.
type pendingCalls[Resp any] struct {
	entries sync.Map // uuid.UUID -> chan Resp
	size    atomic.Int64
}

// insert records a reply channel under id. It reports false when the
// identifier is already present, so the caller can re-mint and retry.
func (p *pendingCalls[Resp]) insert(id uuid.UUID, reply chan Resp) bool {
	if _, loaded := p.entries.LoadOrStore(id, reply); loaded {
		return false
	}
	p.size.Add(1)
	return true
}

// take removes and returns the reply channel recorded under id. Under any
// number of concurrent callers exactly one receives ok for a given entry.
func (p *pendingCalls[Resp]) take(id uuid.UUID) (chan Resp, bool) {
	v, loaded := p.entries.LoadAndDelete(id)
	if !loaded {
		return nil, false
	}
	p.size.Add(-1)
	return v.(chan Resp), true
}

// drain removes every entry and returns the reply channels, for the shutdown
// sweep that tells abandoned callers nothing is coming.
func (p *pendingCalls[Resp]) drain() []chan Resp {
	var replies []chan Resp
	p.entries.Range(func(key, _ any) bool {
		if v, loaded := p.entries.LoadAndDelete(key); loaded {
			p.size.Add(-1)
			replies = append(replies, v.(chan Resp))
		}
		return true
	})
	return replies
}

func (p *pendingCalls[Resp]) len() int64 {
	return p.size.Load()
}
