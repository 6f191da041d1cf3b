package store

import (
	"context"
)

// Effect is a deferred computation. Instead of describing a state change,
// it receives dispatch access and may issue zero or more actions over time,
// typically around a network request.
type Effect func(ctx context.Context, dispatch DispatchFunc)

// Run schedules effect on its own goroutine and returns immediately.
// The returned channel is closed when the effect finishes; callers that
// need completion (tests, one-shot commands, request handlers) can wait on
// it, everyone else can drop it. Overlapping runs of the same effect are
// independent: there is no de-duplication and no cancellation of a
// superseded run.
func (s *Store[S]) Run(ctx context.Context, effect Effect) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		effect(ctx, s.Dispatch)
	}()
	return done
}
