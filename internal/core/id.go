package core

import (
	"sync"
	"time"
)

// IDGenerator issues millisecond-timestamp identifiers that stay
// strictly increasing even under repeated calls within the same
// millisecond. Creation order remains recoverable from the id value.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns the next identifier.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
