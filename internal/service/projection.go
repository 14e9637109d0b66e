package service

import (
	"sort"
	"strings"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
)

// ProjectView computes the displayed repository sequence: search filter, tag
// filter, then a stable sort by position in the manual order list. Repos in
// the order list come first, in list order; the rest keep fetch order.
func ProjectView(repos []domain.RepoWithCommits, query, tagFilter string, tags map[int64][]string, order []int64) []domain.RepoWithCommits {
	filtered := make([]domain.RepoWithCommits, 0, len(repos))
	query = strings.ToLower(strings.TrimSpace(query))

	for _, repo := range repos {
		if query != "" && !matchesQuery(repo.Repo, query) {
			continue
		}
		if tagFilter != "" && !hasTag(tags[repo.ID], tagFilter) {
			continue
		}
		filtered = append(filtered, repo)
	}

	if len(order) == 0 {
		return filtered
	}

	position := make(map[int64]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		pi, iOK := position[filtered[i].ID]
		pj, jOK := position[filtered[j].ID]
		switch {
		case iOK && jOK:
			return pi < pj
		case iOK:
			return true
		default:
			return false
		}
	})

	return filtered
}

func matchesQuery(repo domain.Repo, query string) bool {
	return strings.Contains(strings.ToLower(repo.Name), query) ||
		strings.Contains(strings.ToLower(repo.Description), query) ||
		strings.Contains(strings.ToLower(repo.FullName), query)
}

func hasTag(tags []string, tagID string) bool {
	for _, t := range tags {
		if t == tagID {
			return true
		}
	}
	return false
}
