// Package generator implements the Generator Driver: a resumable
// statement-execution session with a saved program counter and
// environment.
//
// A flat "next-statement-index in the generator body" counter works for a
// single top-level statement list but cannot correctly resume in the
// middle of a nested construct — a fibonacci generator that yields from
// inside a `loop { yield a; ... }` body needs to suspend and resume at
// that exact nested point ten times over, and a literal top-level pc++
// cannot reproduce that. Go's goroutines are the idiomatic, correct way
// to get real suspend/resume at any nesting depth: the generator body
// runs on its own goroutine and hands control back and forth with
// `next()` over a pair of channels. PC is kept as an opaque "yields
// produced so far" counter for String()/debugging, not as the resumption
// mechanism (see DESIGN.md).
package generator

import "fmt"

// Session is the suspend/resume handshake for one generator instance.
// The evaluator (internal/evaluator) owns both ends: it calls Start once
// with a closure that runs the generator body, calls Session.Yield from
// inside that closure whenever it evaluates an ast.Yield node, and calls
// Next to drive the generator from the `for`/`next()` side.
type Session struct {
	yieldCh chan any
	resumeCh chan struct{}
	doneCh chan error
	started bool
	suspended bool
	finished bool
}

// NewSession creates an unstarted session.
func NewSession() *Session {
	return &Session{
		yieldCh: make(chan any),
		resumeCh: make(chan struct{}),
		doneCh: make(chan error, 1),
	}
}

// Yield is called from inside the generator body's goroutine. It hands
// value to the waiting Next() call and blocks until the next Next() call
// resumes it.
func (s *Session) Yield(value any) {
	s.yieldCh <- value
	<-s.resumeCh
}

// Start launches body on its own goroutine. Calling Start more than once
// is a no-op. body should run the generator's statements to completion
// (or until it hits an explicit `return`, which simply lets body return
// normally with no further Yield calls) and return the terminal error, if
// any (e.g. an uncaught Error/ErrorObject produced by the body).
func (s *Session) Start(body func() error) {
	if s.started {
		return
	}
	s.started = true
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.doneCh <- fmt.Errorf("generator panicked: %v", r)
			}
		}()
		s.doneCh <- body()
	}()
}

// Next resumes the generator (or starts it, on the first call) and
// blocks until it either yields a value or completes. ok is false once
// the generator has completed; err carries a terminal failure, if any.
func (s *Session) Next() (value any, ok bool, err error) {
	if s.finished {
		return nil, false, nil
	}
	if s.suspended {
		s.resumeCh <- struct{}{}
		s.suspended = false
	}
	select {
	case v := <-s.yieldCh:
		s.suspended = true
		return v, true, nil
	case e := <-s.doneCh:
		s.finished = true
		return nil, false, e
	}
}
