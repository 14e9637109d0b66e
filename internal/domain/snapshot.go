package domain

import "time"

// RepoCard is a repository as handed to the presentation layer: live data
// plus the user's persisted customizations for it.
type RepoCard struct {
	RepoWithCommits

	Collapsed bool     `json:"collapsed"`
	Color     string   `json:"color,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Snapshot is the read-only state the presentation layer renders. Repos are
// already filtered and ordered; Stats covers the full fetched set.
type Snapshot struct {
	Authenticated   bool         `json:"authenticated"`
	User            *UserProfile `json:"user,omitempty"`
	ViewMode        ViewMode     `json:"view_mode"`
	SearchQuery     string       `json:"search_query"`
	ActiveTagFilter string       `json:"active_tag_filter,omitempty"`
	AutoRefresh     bool         `json:"auto_refresh"`
	Loading         bool         `json:"loading"`
	Error           string       `json:"error,omitempty"`
	LastUpdate      *time.Time   `json:"last_update,omitempty"`
	Repos           []RepoCard   `json:"repos"`
	Stats           Stats        `json:"stats"`
}

// RefreshEvent is broadcast to presentation subscribers when a refresh
// cycle completes.
type RefreshEvent struct {
	At        time.Time `json:"at"`
	RepoCount int       `json:"repo_count"`
	Error     string    `json:"error,omitempty"`
}
