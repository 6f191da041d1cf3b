package snapshot

import (
	"context"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/logging"
	"github.com/crewwatch-io/crewwatch/internal/store"
)

// Middleware returns a dispatch middleware that persists a snapshot to the
// backend after every successful roster fetch. Restored rosters are not
// re-persisted. Persistence failures are logged, never surfaced: the
// dispatch path must not fail.
func Middleware(backend Backend) store.Middleware {
	// The snapshot is seeded from the backend on the first fetch and then
	// lives across dispatches, so the serial continues from the persisted
	// value instead of restarting at one per process. Dispatches are
	// serialized by the store, so no lock is needed here.
	var snap *Snapshot

	return func(next store.DispatchFunc) store.DispatchFunc {
		return func(action store.Action) {
			next(action)

			loaded, ok := action.(crew.LoadedAction)
			if !ok {
				return
			}
			if snap == nil {
				prior, err := backend.Read(context.Background())
				if err != nil {
					logging.Warn("could not read prior snapshot, starting fresh", "error", err)
					prior = Empty()
				}
				snap = prior
			}
			snap.TakenAt = time.Now().UTC()
			snap.Crew = crew.State{
				Members:   loaded.Members,
				Status:    crew.StatusIdle,
				FetchedAt: loaded.FetchedAt,
			}
			if err := backend.Write(context.Background(), snap); err != nil {
				logging.Warn("failed to persist snapshot", "error", err)
			}
		}
	}
}
