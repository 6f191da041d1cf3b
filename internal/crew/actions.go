package crew

import (
	"time"
)

// Action kinds for the roster state machine.
const (
	KindLoading  = "crew.loading"
	KindLoaded   = "crew.loaded"
	KindFailed   = "crew.failed"
	KindRestored = "crew.restored"
)

// LoadingAction marks a fetch as started. No payload.
type LoadingAction struct{}

// Kind implements store.Action.
func (LoadingAction) Kind() string { return KindLoading }

// LoadedAction carries the full roster from a successful fetch.
type LoadedAction struct {
	Members   []Member
	FetchedAt time.Time
}

// Kind implements store.Action.
func (LoadedAction) Kind() string { return KindLoaded }

// RestoredAction replays a roster recovered from persistence, e.g. a
// snapshot read at boot. It reduces like LoadedAction but is not a fetch:
// persistence and journaling middlewares leave it alone, so replaying a
// snapshot never re-persists it or fabricates journal entries.
type RestoredAction struct {
	Members   []Member
	FetchedAt time.Time
}

// Kind implements store.Action.
func (RestoredAction) Kind() string { return KindRestored }

// FailedAction marks a fetch as failed with a human-readable message.
type FailedAction struct {
	Message string
}

// Kind implements store.Action.
func (FailedAction) Kind() string { return KindFailed }
