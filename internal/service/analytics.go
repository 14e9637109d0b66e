package service

import (
	"sort"
	"time"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
)

const activityWindow = 7 * 24 * time.Hour

// ComputeStats derives the analytics snapshot from the current repository
// and commit state. Pure function: empty input yields zeroed aggregates.
func ComputeStats(now time.Time, repos []domain.RepoWithCommits) domain.Stats {
	stats := domain.Stats{
		TotalRepos:      len(repos),
		ReposByLanguage: make(map[string]int),
		TopContributors: []domain.Contributor{},
		TopLanguages:    []domain.LanguageShare{},
	}

	activeSince := now.Add(-activityWindow)

	type authorAgg struct {
		commits    int
		repos      map[string]struct{}
		lastCommit time.Time
	}
	authors := make(map[string]*authorAgg)

	for _, repo := range repos {
		stats.TotalCommits += len(repo.RecentCommits)

		if repo.UpdatedAt.After(activeSince) {
			stats.ActiveRepos++
		} else {
			stats.InactiveRepos++
		}

		lang := repo.Language
		if lang == "" {
			lang = domain.LanguageOther
		}
		stats.ReposByLanguage[lang]++

		for _, commit := range repo.RecentCommits {
			agg := authors[commit.Author]
			if agg == nil {
				agg = &authorAgg{repos: make(map[string]struct{})}
				authors[commit.Author] = agg
			}
			agg.commits++
			agg.repos[repo.Name] = struct{}{}
			if commit.AuthoredAt.After(agg.lastCommit) {
				agg.lastCommit = commit.AuthoredAt
			}
		}
	}

	for name, agg := range authors {
		stats.TopContributors = append(stats.TopContributors, domain.Contributor{
			Name:       name,
			Commits:    agg.commits,
			Repos:      len(agg.repos),
			LastCommit: agg.lastCommit,
		})
	}
	sort.SliceStable(stats.TopContributors, func(i, j int) bool {
		return stats.TopContributors[i].Commits > stats.TopContributors[j].Commits
	})
	if len(stats.TopContributors) > 10 {
		stats.TopContributors = stats.TopContributors[:10]
	}

	for lang, count := range stats.ReposByLanguage {
		share := domain.LanguageShare{Language: lang, Count: count}
		if stats.TotalRepos > 0 {
			share.Percentage = float64(count) / float64(stats.TotalRepos) * 100
		}
		stats.TopLanguages = append(stats.TopLanguages, share)
	}
	sort.SliceStable(stats.TopLanguages, func(i, j int) bool {
		if stats.TopLanguages[i].Count != stats.TopLanguages[j].Count {
			return stats.TopLanguages[i].Count > stats.TopLanguages[j].Count
		}
		return stats.TopLanguages[i].Language < stats.TopLanguages[j].Language
	})
	if len(stats.TopLanguages) > 5 {
		stats.TopLanguages = stats.TopLanguages[:5]
	}

	return stats
}
