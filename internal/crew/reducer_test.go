package crew

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type unknownAction struct{}

func (unknownAction) Kind() string { return "something.else" }

func TestReduce_DefaultsZeroState(t *testing.T) {
	s := Reduce(State{}, unknownAction{})

	assert.Equal(t, StatusIdle, s.Status)
	assert.NotNil(t, s.Members)
	assert.Empty(t, s.Members)
}

func TestReduce_UnknownActionIsIdentity(t *testing.T) {
	before := State{
		Members:   []Member{{Name: "Buzz Aldrin", Craft: "ISS"}},
		Status:    StatusIdle,
		FetchedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, before, Reduce(before, unknownAction{}))
}

func TestReduce_Loading(t *testing.T) {
	before := State{
		Members: []Member{{Name: "Buzz Aldrin"}},
		Status:  StatusIdle,
	}

	s := Reduce(before, LoadingAction{})

	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, before.Members, s.Members, "loading must not touch the roster")
}

func TestReduce_LoadedReplacesRosterWholesale(t *testing.T) {
	fetchedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	before := State{
		Members: []Member{{Name: "Old Entry"}},
		Status:  StatusLoading,
	}

	s := Reduce(before, LoadedAction{
		Members:   []Member{{Name: "Buzz Aldrin", Craft: "ISS"}, {Name: "Sally Ride", Craft: "Tiangong"}},
		FetchedAt: fetchedAt,
	})

	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, []Member{{Name: "Buzz Aldrin", Craft: "ISS"}, {Name: "Sally Ride", Craft: "Tiangong"}}, s.Members)
	assert.Equal(t, fetchedAt, s.FetchedAt)
	assert.Empty(t, s.LastError)
}

func TestReduce_RestoredBehavesLikeLoaded(t *testing.T) {
	fetchedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	s := Reduce(State{Status: StatusFailed, LastError: "boom"}, RestoredAction{
		Members:   []Member{{Name: "Buzz Aldrin", Craft: "ISS"}},
		FetchedAt: fetchedAt,
	})

	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, []Member{{Name: "Buzz Aldrin", Craft: "ISS"}}, s.Members)
	assert.Equal(t, fetchedAt, s.FetchedAt)
	assert.Empty(t, s.LastError)
}

func TestReduce_Failed(t *testing.T) {
	before := State{
		Members: []Member{{Name: "Buzz Aldrin"}},
		Status:  StatusLoading,
	}

	s := Reduce(before, FailedAction{Message: "connection refused"})

	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "connection refused", s.LastError)
	assert.Equal(t, before.Members, s.Members, "a failed fetch must keep the last good roster")
}

func TestReduce_LoadedClearsEarlierFailure(t *testing.T) {
	s := Reduce(State{Status: StatusFailed, LastError: "boom"}, LoadedAction{
		Members: []Member{{Name: "Buzz Aldrin"}},
	})

	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.LastError)
}
