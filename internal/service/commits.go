package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/YanisseIsmaili/github-monitor/internal/port"
)

// CommitAggregator collects a repository's recent commits across a bounded
// set of branches. It never fails upward: any error at any stage degrades to
// a smaller (possibly empty) commit window for that repository.
type CommitAggregator struct {
	source      port.RepoSource
	maxBranches int
	window      int
}

// NewCommitAggregator creates an aggregator reading at most maxBranches
// branches and keeping a window of the most recent commits per repository.
func NewCommitAggregator(source port.RepoSource, maxBranches, window int) *CommitAggregator {
	return &CommitAggregator{source: source, maxBranches: maxBranches, window: window}
}

// Aggregate returns the repository's deduplicated recent-commit window,
// sorted by author date descending. Branch commit fetches run concurrently
// with per-branch failure isolation; if branch listing fails or contributes
// nothing, the default branch is tried before giving up with an empty list.
func (a *CommitAggregator) Aggregate(ctx context.Context, token string, repo domain.Repo) []domain.Commit {
	var pool []domain.Commit

	branches, err := a.source.ListBranches(ctx, token, repo.FullName)
	if err != nil {
		slog.Debug("branch listing failed, falling back to default branch",
			"repo", repo.FullName, "error", err)
	} else {
		if len(branches) > a.maxBranches {
			branches = branches[:a.maxBranches]
		}

		var mu sync.Mutex
		var wg sync.WaitGroup
		for _, branch := range branches {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				commits, err := a.source.ListCommits(ctx, token, repo.FullName, name, a.window)
				if err != nil {
					slog.Debug("branch commits failed", "repo", repo.FullName, "branch", name, "error", err)
					return
				}
				mu.Lock()
				pool = append(pool, commits...)
				mu.Unlock()
			}(branch.Name)
		}
		wg.Wait()
	}

	if len(pool) == 0 {
		commits, err := a.source.ListCommits(ctx, token, repo.FullName, "", a.window)
		if err != nil {
			slog.Debug("default branch commits failed", "repo", repo.FullName, "error", err)
			return []domain.Commit{}
		}
		pool = commits
	}

	return trimWindow(pool, a.window)
}

// trimWindow deduplicates by sha (first occurrence wins), sorts by author
// date descending, and truncates to the window size.
func trimWindow(pool []domain.Commit, window int) []domain.Commit {
	seen := make(map[string]struct{}, len(pool))
	unique := make([]domain.Commit, 0, len(pool))
	for _, c := range pool {
		if _, ok := seen[c.SHA]; ok {
			continue
		}
		seen[c.SHA] = struct{}{}
		unique = append(unique, c)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].AuthoredAt.After(unique[j].AuthoredAt)
	})

	if len(unique) > window {
		unique = unique[:window]
	}
	return unique
}
