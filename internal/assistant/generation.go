package assistant

import "sync/atomic"

// Ticket identifies one issued request.
type Ticket uint64

// Generation tracks the most recent request so that a response arriving
// after a newer request was issued can be dropped instead of overwriting
// what the learner is looking at.
type Generation struct {
	latest atomic.Uint64
}

func (g *Generation) Next() Ticket {
	return Ticket(g.latest.Add(1))
}

func (g *Generation) IsLatest(ticket Ticket) bool {
	return uint64(ticket) == g.latest.Load()
}
