package options

import (
	"context"
	"sync"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// Ticket identifies one option query
type Ticket struct {
	Seq   uint64
	Query string
}

// Search tracks the latest option query of a picker. Only the response to the
// latest query is accepted; responses to superseded queries are dropped.
type Search struct {
	mu     sync.Mutex
	seq    uint64
	latest string
}

// Begin starts a query, superseding every earlier one
func (s *Search) Begin(query string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.latest = query
	return Ticket{Seq: s.seq, Query: query}
}

// Accept reports whether a response to t may be applied
func (s *Search) Accept(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.Seq == s.seq
}

// Latest returns the text of the latest query
func (s *Search) Latest() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Result is the outcome of one option query
type Result struct {
	Ticket  Ticket
	Options []models.Option
	Err     error
}

// Run loads the options for t. The caller checks Accept before using the result.
func Run(ctx context.Context, l Loader, t Ticket) Result {
	opts, err := l.Load(ctx, t.Query)
	return Result{Ticket: t, Options: opts, Err: err}
}
