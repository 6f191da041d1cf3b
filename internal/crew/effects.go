package crew

import (
	"context"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/store"
)

// Fetch returns the effect that refreshes the roster from src.
//
// The effect dispatches LoadingAction synchronously before the request is
// issued, then exactly one terminal action: LoadedAction with the roster on
// success, FailedAction otherwise. Overlapping runs each perform an
// independent fetch; whichever terminal action lands last wins.
func Fetch(src Source) store.Effect {
	return func(ctx context.Context, dispatch store.DispatchFunc) {
		dispatch(LoadingAction{})

		members, err := src.Astronauts(ctx)
		if err != nil {
			dispatch(FailedAction{Message: err.Error()})
			return
		}

		dispatch(LoadedAction{Members: members, FetchedAt: time.Now().UTC()})
	}
}
