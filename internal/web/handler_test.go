package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource returns a fixed roster or error.
type fakeSource struct {
	members []crew.Member
	err     error
}

func (f *fakeSource) Astronauts(ctx context.Context) ([]crew.Member, error) {
	return f.members, f.err
}

func newTestHandler(src crew.Source) (http.Handler, *store.Store[crew.State]) {
	st := store.New(crew.Reduce)
	return NewHandler(st, src), st
}

func TestHandler_Page(t *testing.T) {
	h, _ := newTestHandler(&fakeSource{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "People currently in space")
	assert.Contains(t, body, `hx-post="/crew/refresh"`)
	assert.Contains(t, body, `class="indicator"`)
	assert.Contains(t, body, "No roster loaded yet.")
}

func TestHandler_RosterShowsMembers(t *testing.T) {
	h, st := newTestHandler(&fakeSource{})
	st.Dispatch(crew.LoadedAction{
		Members:   []crew.Member{{Name: "Buzz Aldrin", Craft: "ISS"}},
		FetchedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/crew", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Buzz Aldrin")
	assert.Contains(t, body, "ISS")
	assert.Contains(t, body, "2025-03-01")
}

func TestHandler_RefreshFromHTMXReturnsFragment(t *testing.T) {
	h, st := newTestHandler(&fakeSource{members: []crew.Member{{Name: "Sally Ride", Craft: "Tiangong"}}})

	req := httptest.NewRequest(http.MethodPost, "/crew/refresh", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sally Ride")
	assert.Equal(t, crew.StatusIdle, st.State().Status)
	assert.Len(t, st.State().Members, 1)
}

func TestHandler_RefreshWithoutHTMXRedirects(t *testing.T) {
	h, _ := newTestHandler(&fakeSource{members: []crew.Member{{Name: "Sally Ride"}}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/crew/refresh", nil))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestHandler_RefreshFailureRendersError(t *testing.T) {
	h, st := newTestHandler(&fakeSource{err: fmt.Errorf("feed unreachable")})

	req := httptest.NewRequest(http.MethodPost, "/crew/refresh", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "feed unreachable")
	assert.Equal(t, crew.StatusFailed, st.State().Status)
}

func TestHandler_APICrew(t *testing.T) {
	h, st := newTestHandler(&fakeSource{})
	st.Dispatch(crew.LoadedAction{Members: []crew.Member{{Name: "Buzz Aldrin", Craft: "ISS"}}})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/crew", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var state crew.State
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, crew.StatusIdle, state.Status)
	require.Len(t, state.Members, 1)
	assert.Equal(t, "Buzz Aldrin", state.Members[0].Name)
}

func TestHandler_Healthz(t *testing.T) {
	h, _ := newTestHandler(&fakeSource{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandler_UnknownRoute(t *testing.T) {
	h, _ := newTestHandler(&fakeSource{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
