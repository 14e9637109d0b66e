package port

import (
	"context"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
)

// RepoSource abstracts the remote repository-hosting API. All calls are
// read-only and carry the bearer credential explicitly; a non-success
// response surfaces as an *APIError, never a panic.
type RepoSource interface {
	// ListRepositories returns the repositories the credential can see under
	// the given affiliation, in the API's most-recently-updated order.
	ListRepositories(ctx context.Context, token string, access domain.AccessType) ([]domain.Repo, error)

	// ListBranches returns the branches of a repository in API order.
	ListBranches(ctx context.Context, token, fullName string) ([]domain.Branch, error)

	// ListCommits returns up to limit commits on the given branch. An empty
	// branch name means the repository's default branch.
	ListCommits(ctx context.Context, token, fullName, branch string, limit int) ([]domain.Commit, error)

	// VerifyCredential checks the token and returns the profile it belongs to.
	VerifyCredential(ctx context.Context, token string) (*domain.UserProfile, error)
}
