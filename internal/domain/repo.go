package domain

import "time"

// AccessType describes the user's relationship to a repository, i.e. which
// affiliation fetch surfaced it.
type AccessType string

const (
	AccessOwner        AccessType = "owner"
	AccessCollaborator AccessType = "collaborator"
)

// ViewMode filters the merged repository set by provenance.
type ViewMode string

const (
	ViewModeAll          ViewMode = "all"
	ViewModeOwned        ViewMode = "owned"
	ViewModeCollaborator ViewMode = "collaborator"
)

// ValidViewMode reports whether s is a recognized view mode.
func ValidViewMode(s string) bool {
	switch ViewMode(s) {
	case ViewModeAll, ViewModeOwned, ViewModeCollaborator:
		return true
	}
	return false
}

// Repo represents a GitHub repository as returned by the remote API.
// Repos are ephemeral: rebuilt wholesale on every refresh, never persisted.
type Repo struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Description   string     `json:"description,omitempty"`
	Language      string     `json:"language,omitempty"`
	HTMLURL       string     `json:"html_url"`
	DefaultBranch string     `json:"default_branch"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Access        AccessType `json:"access_type"`
}

// Branch is a lightweight branch reference.
type Branch struct {
	Name string `json:"name"`
}

// Commit is one entry in a repository's aggregated recent-commit window.
type Commit struct {
	SHA        string    `json:"sha"`
	Message    string    `json:"message"`
	Author     string    `json:"author"`
	AuthoredAt time.Time `json:"authored_at"`
}

// RepoWithCommits pairs a repository with its aggregated recent commits.
type RepoWithCommits struct {
	Repo

	RecentCommits []Commit `json:"recent_commits"`
}
