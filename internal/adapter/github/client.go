package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/YanisseIsmaili/github-monitor/internal/port"
	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// Client implements port.RepoSource against the GitHub REST API.
type Client struct {
	baseURL *url.URL
	perPage int
}

// NewClient creates a GitHub client. baseURL overrides the API endpoint
// (used in tests); empty means api.github.com. perPage bounds the single
// repository-list page fetched per affiliation.
func NewClient(baseURL string, perPage int) (*Client, error) {
	c := &Client{perPage: perPage}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("github: parse base url: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.baseURL = u
	}
	return c, nil
}

// api builds an authenticated go-github client for one call. Tokens change
// at login, so clients are constructed per request rather than held.
func (c *Client) api(ctx context.Context, token string) *gh.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gh.NewClient(oauth2.NewClient(ctx, ts))
	if c.baseURL != nil {
		client.BaseURL = c.baseURL
	}
	return client
}

// ListRepositories fetches one page of repositories under the given
// affiliation, most recently updated first.
func (c *Client) ListRepositories(ctx context.Context, token string, access domain.AccessType) ([]domain.Repo, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Affiliation: string(access),
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: c.perPage},
	}

	repos, resp, err := c.api(ctx, token).Repositories.ListByAuthenticatedUser(ctx, opts)
	if err != nil {
		return nil, apiError("list repositories", resp, err)
	}

	out := make([]domain.Repo, 0, len(repos))
	for _, r := range repos {
		out = append(out, domain.Repo{
			ID:            r.GetID(),
			Name:          r.GetName(),
			FullName:      r.GetFullName(),
			Description:   r.GetDescription(),
			Language:      r.GetLanguage(),
			HTMLURL:       r.GetHTMLURL(),
			DefaultBranch: r.GetDefaultBranch(),
			UpdatedAt:     r.GetUpdatedAt().Time,
			Access:        access,
		})
	}
	return out, nil
}

// ListBranches returns the repository's branches in API order.
func (c *Client) ListBranches(ctx context.Context, token, fullName string) ([]domain.Branch, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	branches, resp, err := c.api(ctx, token).Repositories.ListBranches(ctx, owner, name, nil)
	if err != nil {
		return nil, apiError("list branches", resp, err)
	}

	out := make([]domain.Branch, 0, len(branches))
	for _, b := range branches {
		out = append(out, domain.Branch{Name: b.GetName()})
	}
	return out, nil
}

// ListCommits returns up to limit commits on branch; empty branch means the
// repository's default branch.
func (c *Client) ListCommits(ctx context.Context, token, fullName, branch string, limit int) ([]domain.Commit, error) {
	owner, name, err := splitFullName(fullName)
	if err != nil {
		return nil, err
	}

	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{PerPage: limit},
	}

	commits, resp, err := c.api(ctx, token).Repositories.ListCommits(ctx, owner, name, opts)
	if err != nil {
		return nil, apiError("list commits", resp, err)
	}

	out := make([]domain.Commit, 0, len(commits))
	for _, rc := range commits {
		commit := rc.GetCommit()
		out = append(out, domain.Commit{
			SHA:        rc.GetSHA(),
			Message:    commit.GetMessage(),
			Author:     commit.GetAuthor().GetName(),
			AuthoredAt: commit.GetAuthor().GetDate().Time,
		})
	}
	return out, nil
}

// VerifyCredential resolves the token to its user profile.
func (c *Client) VerifyCredential(ctx context.Context, token string) (*domain.UserProfile, error) {
	user, resp, err := c.api(ctx, token).Users.Get(ctx, "")
	if err != nil {
		return nil, apiError("verify credential", resp, err)
	}

	name := user.GetName()
	if name == "" {
		name = user.GetLogin()
	}

	return &domain.UserProfile{
		Login:     user.GetLogin(),
		Name:      name,
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

func splitFullName(fullName string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("github: malformed full name %q", fullName)
	}
	return owner, name, nil
}

func apiError(op string, resp *gh.Response, err error) error {
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	return &port.APIError{Op: op, StatusCode: status, Err: err}
}
