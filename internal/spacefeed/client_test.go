package spacefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Astronauts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/astros.json", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"message": "success",
			"number": 2,
			"people": [
				{"name": "Buzz Aldrin", "craft": "ISS"},
				{"name": "Sally Ride", "craft": "Tiangong"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	members, err := c.Astronauts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []crew.Member{
		{Name: "Buzz Aldrin", Craft: "ISS"},
		{Name: "Sally Ride", Craft: "Tiangong"},
	}, members)
}

func TestClient_Astronauts_PreservesFeedOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"success","number":3,"people":[
			{"name":"C","craft":"ISS"},{"name":"A","craft":"ISS"},{"name":"B","craft":"ISS"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	members, err := c.Astronauts(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "C", members[0].Name)
	assert.Equal(t, "A", members[1].Name)
	assert.Equal(t, "B", members[2].Name)
}

func TestClient_Astronauts_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Astronauts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestClient_Astronauts_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "succ`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Astronauts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode astros response")
}

func TestClient_Astronauts_FeedReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "failure", "people": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Astronauts(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failure")
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
