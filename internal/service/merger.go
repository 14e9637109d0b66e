package service

import "github.com/YanisseIsmaili/github-monitor/internal/domain"

// MergeRepositories combines the owner- and collaborator-affiliated fetches
// into one deduplicated collection, filtered by view mode. The owner list is
// inserted first and the first record per id wins, so a repository appearing
// under both affiliations keeps owner provenance. Order of survivors follows
// fetch-arrival order.
func MergeRepositories(owned, collaborating []domain.Repo, mode domain.ViewMode) []domain.Repo {
	var candidates []domain.Repo
	switch mode {
	case domain.ViewModeOwned:
		candidates = owned
	case domain.ViewModeCollaborator:
		candidates = collaborating
	default:
		candidates = make([]domain.Repo, 0, len(owned)+len(collaborating))
		candidates = append(candidates, owned...)
		candidates = append(candidates, collaborating...)
	}

	seen := make(map[int64]struct{}, len(candidates))
	merged := make([]domain.Repo, 0, len(candidates))
	for _, r := range candidates {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}
