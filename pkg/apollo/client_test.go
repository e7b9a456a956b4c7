package apollo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPerson_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/people/match", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body MatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@acme.com", body.Email)
		assert.Equal(t, "Jane", body.FirstName)
		assert.Equal(t, "Doe", body.LastName)
		assert.Empty(t, body.Name)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"person":{"name":"Jane Doe","title":"Staff Engineer","linkedin_url":"http://www.linkedin.com/in/janedoe","organization":{"name":"Acme"}}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.MatchPerson(context.Background(), MatchRequest{Email: "jane@acme.com", FirstName: "Jane", LastName: "Doe"})

	require.NoError(t, err)
	require.NotNil(t, resp.Person)
	assert.Equal(t, "Jane Doe", resp.Person.Name)
	assert.Equal(t, "Staff Engineer", resp.Person.Title)
	assert.Equal(t, "http://www.linkedin.com/in/janedoe", resp.Person.LinkedInURL)
	require.NotNil(t, resp.Person.Organization)
	assert.Equal(t, "Acme", resp.Person.Organization.Name)
}

func TestMatchPerson_NoPerson(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"person":null}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.MatchPerson(context.Background(), MatchRequest{Email: "nobody@acme.com"})

	require.NoError(t, err)
	assert.Nil(t, resp.Person)
}

func TestMatchPerson_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"` + strings.Repeat("x", 400) + `"}`))
	}))
	defer srv.Close()

	client := NewClient("bad-key", WithBaseURL(srv.URL))
	resp, err := client.MatchPerson(context.Background(), MatchRequest{Email: "jane@acme.com"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "401")
	assert.Less(t, len(err.Error()), 300)
}

func TestMatchPerson_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := client.MatchPerson(context.Background(), MatchRequest{Email: "jane@acme.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestMatchPerson_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.MatchPerson(ctx, MatchRequest{Email: "jane@acme.com"})

	assert.Error(t, err)
	assert.Nil(t, resp)
}
