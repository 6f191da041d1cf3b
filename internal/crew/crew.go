// Package crew holds the roster state machine: the people currently in
// space, the fetch status, and the reducer and effect that drive both.
package crew

import (
	"context"
	"time"
)

// Status enumerates the roster fetch states.
type Status string

const (
	// StatusIdle means no fetch is in flight; the roster is whatever the
	// last successful fetch produced.
	StatusIdle Status = "idle"
	// StatusLoading holds from the moment a fetch is dispatched until its
	// terminal action lands.
	StatusLoading Status = "loading"
	// StatusFailed means the last fetch ended in an error.
	StatusFailed Status = "failed"
)

// Member is one person currently in space. Records are immutable once
// constructed and sourced entirely from the feed.
type Member struct {
	Name  string `json:"name"`
	Craft string `json:"craft,omitempty"`
}

// State is the roster slice of application state. It is replaced wholesale
// on every dispatch, never mutated in place.
type State struct {
	Members   []Member  `json:"members"`
	Status    Status    `json:"status"`
	LastError string    `json:"last_error,omitempty"`
	FetchedAt time.Time `json:"fetched_at,omitzero"`
}

// Initial returns the default roster state: empty and idle.
func Initial() State {
	return State{Members: []Member{}, Status: StatusIdle}
}

// Source supplies the current crew roster. The HTTP feed client implements
// it; tests substitute fakes.
type Source interface {
	Astronauts(ctx context.Context) ([]Member, error)
}
