package crew

import (
	"github.com/crewwatch-io/crewwatch/internal/store"
)

// Reduce computes the next roster state. It is pure: unknown actions pass
// through unchanged (this also serves the store's init dispatch, which
// arrives with the zero state and an unrecognized kind), and Members is
// only ever replaced by LoadedAction.
func Reduce(s State, action store.Action) State {
	if s.Status == "" {
		s = Initial()
	}

	switch a := action.(type) {
	case LoadingAction:
		s.Status = StatusLoading
		return s
	case LoadedAction:
		s.Status = StatusIdle
		s.Members = a.Members
		s.LastError = ""
		s.FetchedAt = a.FetchedAt
		return s
	case RestoredAction:
		s.Status = StatusIdle
		s.Members = a.Members
		s.LastError = ""
		s.FetchedAt = a.FetchedAt
		return s
	case FailedAction:
		s.Status = StatusFailed
		s.LastError = a.Message
		return s
	default:
		return s
	}
}
