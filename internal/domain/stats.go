package domain

import "time"

// Stats is a derived analytics snapshot over the current repository and
// commit state. Recomputed on demand, never persisted.
type Stats struct {
	TotalRepos      int             `json:"total_repos"`
	TotalCommits    int             `json:"total_commits"`
	ActiveRepos     int             `json:"active_repos"`
	InactiveRepos   int             `json:"inactive_repos"`
	ReposByLanguage map[string]int  `json:"repos_by_language"`
	TopContributors []Contributor   `json:"top_contributors"`
	TopLanguages    []LanguageShare `json:"top_languages"`
}

// Contributor is a per-author aggregate across all repositories' commit windows.
type Contributor struct {
	Name       string    `json:"name"`
	Commits    int       `json:"commits"`
	Repos      int       `json:"repos"`
	LastCommit time.Time `json:"last_commit"`
}

// LanguageShare is one entry of the top-languages ranking.
type LanguageShare struct {
	Language   string  `json:"language"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// LanguageOther is the histogram bucket for repositories without a primary language.
const LanguageOther = "Other"
