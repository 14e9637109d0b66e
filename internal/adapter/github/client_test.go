package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/YanisseIsmaili/github-monitor/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/", 100)
	require.NoError(t, err)
	return c
}

func TestListRepositories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "owner", r.URL.Query().Get("affiliation"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"id": 1, "name": "api-gateway", "full_name": "me/api-gateway",
			 "description": "edge service", "language": "Go",
			 "html_url": "https://github.com/me/api-gateway",
			 "default_branch": "main", "updated_at": "2026-08-30T12:00:00Z"},
			{"id": 2, "name": "frontend", "full_name": "me/frontend",
			 "html_url": "https://github.com/me/frontend", "default_branch": "main",
			 "updated_at": "2026-08-29T09:30:00Z"}
		]`)
	})

	c := newTestClient(t, mux)
	repos, err := c.ListRepositories(context.Background(), "tok", domain.AccessOwner)
	require.NoError(t, err)
	require.Len(t, repos, 2)

	assert.Equal(t, int64(1), repos[0].ID)
	assert.Equal(t, "api-gateway", repos[0].Name)
	assert.Equal(t, "me/api-gateway", repos[0].FullName)
	assert.Equal(t, "edge service", repos[0].Description)
	assert.Equal(t, "Go", repos[0].Language)
	assert.Equal(t, domain.AccessOwner, repos[0].Access)
	assert.Equal(t, 2026, repos[0].UpdatedAt.Year())

	assert.Empty(t, repos[1].Language, "missing language maps to empty")
}

func TestListRepositoriesCarriesStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/repos", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Bad credentials"}`, http.StatusUnauthorized)
	})

	c := newTestClient(t, mux)
	_, err := c.ListRepositories(context.Background(), "bad", domain.AccessOwner)
	require.Error(t, err)

	var apiErr *port.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, port.IsAuthFailure(err))
}

func TestListBranches(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/me/api-gateway/branches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"name": "main"}, {"name": "dev"}]`)
	})

	c := newTestClient(t, mux)
	branches, err := c.ListBranches(context.Background(), "tok", "me/api-gateway")
	require.NoError(t, err)
	assert.Equal(t, []domain.Branch{{Name: "main"}, {Name: "dev"}}, branches)
}

func TestListCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/me/api-gateway/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dev", r.URL.Query().Get("sha"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"sha": "abc123",
			 "commit": {"message": "fix: first line\n\nbody",
			            "author": {"name": "Alice", "date": "2026-08-30T12:00:00Z"}}}
		]`)
	})

	c := newTestClient(t, mux)
	commits, err := c.ListCommits(context.Background(), "tok", "me/api-gateway", "dev", 10)
	require.NoError(t, err)
	require.Len(t, commits, 1)

	assert.Equal(t, "abc123", commits[0].SHA)
	assert.Equal(t, "Alice", commits[0].Author)
	assert.Contains(t, commits[0].Message, "fix: first line")
	assert.False(t, commits[0].AuthoredAt.IsZero())
}

func TestVerifyCredential(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"login": "yanisse", "avatar_url": "https://avatars.example/1"}`)
	})

	c := newTestClient(t, mux)
	user, err := c.VerifyCredential(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, "yanisse", user.Login)
	assert.Equal(t, "yanisse", user.Name, "name falls back to login")
	assert.Equal(t, "https://avatars.example/1", user.AvatarURL)
}

func TestSplitFullName(t *testing.T) {
	_, _, err := splitFullName("justaname")
	assert.Error(t, err)

	owner, name, err := splitFullName("me/repo")
	require.NoError(t, err)
	assert.Equal(t, "me", owner)
	assert.Equal(t, "repo", name)
}
