package history

import (
	"context"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/logging"
	"github.com/crewwatch-io/crewwatch/internal/store"
)

// Middleware returns a dispatch middleware that journals every successful
// roster fetch. Journal failures are logged, never surfaced: the dispatch
// path must not fail.
func Middleware(s *Store) store.Middleware {
	return func(next store.DispatchFunc) store.DispatchFunc {
		return func(action store.Action) {
			next(action)

			loaded, ok := action.(crew.LoadedAction)
			if !ok {
				return
			}
			if err := s.RecordFetch(context.Background(), loaded.FetchedAt, loaded.Members); err != nil {
				logging.Warn("failed to record fetch in history", "error", err)
			}
		}
	}
}
