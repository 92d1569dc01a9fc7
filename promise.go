package planeshift

import "sync"

// PromiseState is the state of a Promise.
type PromiseState uint8

const (
	// PromisePending means the promise has not been settled yet.
	PromisePending PromiseState = iota

	// PromiseResolved means the promise holds a value.
	PromiseResolved

	// PromiseRejected means the promise holds an error.
	PromiseRejected
)

// String returns the state name.
func (s PromiseState) String() string {
	switch s {
	case PromisePending:
		return "pending"
	case PromiseResolved:
		return "resolved"
	case PromiseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Promise is a one-shot completion signal with any number of subscribers.
//
// A promise starts pending and is settled exactly once, by Resolve or
// Reject. Continuations registered with Then or Catch before settlement run
// on the goroutine that settles the promise; continuations registered after
// settlement run immediately on the caller's goroutine. Callers must not
// assume goroutine affinity.
//
// Promise is safe for concurrent use.
type Promise[T any] struct {
	mu        sync.Mutex
	state     PromiseState
	value     T
	err       error
	onResolve []func(T)
	onReject  []func(error)
}

// NewPromise returns a pending promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{}
}

// ResolvedPromise returns a promise already resolved with value.
func ResolvedPromise[T any](value T) *Promise[T] {
	return &Promise[T]{state: PromiseResolved, value: value}
}

// RejectedPromise returns a promise already rejected with err.
func RejectedPromise[T any](err error) *Promise[T] {
	return &Promise[T]{state: PromiseRejected, err: err}
}

// Then registers fn to run with the resolved value. It returns p.
//
// If p is already resolved, fn runs synchronously before Then returns.
// If p is rejected, fn is dropped.
func (p *Promise[T]) Then(fn func(T)) *Promise[T] {
	p.mu.Lock()
	switch p.state {
	case PromisePending:
		p.onResolve = append(p.onResolve, fn)
		p.mu.Unlock()
	case PromiseResolved:
		v := p.value
		p.mu.Unlock()
		fn(v)
	default:
		p.mu.Unlock()
	}
	return p
}

// Catch registers fn to run with the rejection error. It returns p.
//
// If p is already rejected, fn runs synchronously before Catch returns.
// If p is resolved, fn is dropped.
func (p *Promise[T]) Catch(fn func(error)) *Promise[T] {
	p.mu.Lock()
	switch p.state {
	case PromisePending:
		p.onReject = append(p.onReject, fn)
		p.mu.Unlock()
	case PromiseRejected:
		err := p.err
		p.mu.Unlock()
		fn(err)
	default:
		p.mu.Unlock()
	}
	return p
}

// Resolve settles p with value and runs every queued Then continuation
// once. It panics if p is already settled.
func (p *Promise[T]) Resolve(value T) {
	p.mu.Lock()
	if p.state != PromisePending {
		s := p.state
		p.mu.Unlock()
		panic("planeshift: Resolve on " + s.String() + " promise")
	}
	p.state = PromiseResolved
	p.value = value
	queued := p.onResolve
	p.onResolve, p.onReject = nil, nil
	p.mu.Unlock()

	for _, fn := range queued {
		fn(value)
	}
}

// Reject settles p with err and runs every queued Catch continuation once.
// It panics if p is already settled.
func (p *Promise[T]) Reject(err error) {
	p.mu.Lock()
	if p.state != PromisePending {
		s := p.state
		p.mu.Unlock()
		panic("planeshift: Reject on " + s.String() + " promise")
	}
	p.state = PromiseRejected
	p.err = err
	queued := p.onReject
	p.onResolve, p.onReject = nil, nil
	p.mu.Unlock()

	for _, fn := range queued {
		fn(err)
	}
}

// State returns the current state.
func (p *Promise[T]) State() PromiseState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Value returns the resolved value, or the rejection error. Both are zero
// while p is pending.
func (p *Promise[T]) Value() (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.err
}
