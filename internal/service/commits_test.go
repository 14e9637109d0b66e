package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func commit(sha string, age time.Duration) domain.Commit {
	return domain.Commit{SHA: sha, Message: "msg " + sha, Author: "alice", AuthoredAt: baseTime.Add(-age)}
}

func testRepo() domain.Repo {
	return domain.Repo{ID: 1, Name: "api-gateway", FullName: "me/api-gateway", DefaultBranch: "main"}
}

func TestAggregateAcrossBranches(t *testing.T) {
	src := newFakeSource()
	src.branches["me/api-gateway"] = []domain.Branch{{Name: "main"}, {Name: "dev"}}
	src.commits["me/api-gateway@main"] = []domain.Commit{commit("a", time.Hour), commit("b", 2*time.Hour)}
	src.commits["me/api-gateway@dev"] = []domain.Commit{commit("b", 2*time.Hour), commit("c", 30*time.Minute)}

	agg := NewCommitAggregator(src, 3, 10)
	got := agg.Aggregate(context.Background(), "tok", testRepo())

	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{got[0].SHA, got[1].SHA, got[2].SHA})
}

func TestAggregateBoundsBranchCount(t *testing.T) {
	src := newFakeSource()
	src.branches["me/api-gateway"] = []domain.Branch{{Name: "b1"}, {Name: "b2"}, {Name: "b3"}, {Name: "b4"}}
	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("b%d", i)
		src.commits["me/api-gateway@"+name] = []domain.Commit{commit(name, time.Duration(i) * time.Hour)}
	}

	agg := NewCommitAggregator(src, 3, 10)
	got := agg.Aggregate(context.Background(), "tok", testRepo())

	shas := make([]string, len(got))
	for i, c := range got {
		shas[i] = c.SHA
	}
	assert.ElementsMatch(t, []string{"b1", "b2", "b3"}, shas)
}

func TestAggregateBranchFailureIsolated(t *testing.T) {
	src := newFakeSource()
	src.branches["me/api-gateway"] = []domain.Branch{{Name: "main"}, {Name: "broken"}}
	src.commits["me/api-gateway@main"] = []domain.Commit{commit("a", time.Hour)}
	src.commitsErr["me/api-gateway@broken"] = errors.New("boom")

	agg := NewCommitAggregator(src, 3, 10)
	got := agg.Aggregate(context.Background(), "tok", testRepo())

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].SHA)
}

func TestAggregateFallsBackToDefaultBranch(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeSource)
	}{
		{
			name: "branch listing fails",
			setup: func(src *fakeSource) {
				src.branchesErr["me/api-gateway"] = errors.New("boom")
			},
		},
		{
			name: "branches listed but every commit fetch fails",
			setup: func(src *fakeSource) {
				src.branches["me/api-gateway"] = []domain.Branch{{Name: "main"}}
				src.commitsErr["me/api-gateway@main"] = errors.New("boom")
			},
		},
		{
			name: "no branches at all",
			setup: func(src *fakeSource) {
				src.branches["me/api-gateway"] = nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			tt.setup(src)
			src.commits["me/api-gateway@"] = []domain.Commit{commit("fallback", time.Hour)}

			agg := NewCommitAggregator(src, 3, 10)
			got := agg.Aggregate(context.Background(), "tok", testRepo())

			require.Len(t, got, 1)
			assert.Equal(t, "fallback", got[0].SHA)
		})
	}
}

func TestAggregateTotalFailureYieldsEmptyList(t *testing.T) {
	src := newFakeSource()
	src.branchesErr["me/api-gateway"] = errors.New("boom")
	src.commitsErr["me/api-gateway@"] = errors.New("boom")

	agg := NewCommitAggregator(src, 3, 10)
	got := agg.Aggregate(context.Background(), "tok", testRepo())

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAggregateWindowProperties(t *testing.T) {
	src := newFakeSource()
	src.branches["me/api-gateway"] = []domain.Branch{{Name: "main"}, {Name: "dev"}}

	// 15 commits per branch, 5 shared between them
	var main, dev []domain.Commit
	for i := 0; i < 15; i++ {
		main = append(main, commit(fmt.Sprintf("m%d", i), time.Duration(i)*time.Hour))
		dev = append(dev, commit(fmt.Sprintf("d%d", i), time.Duration(i)*time.Hour+30*time.Minute))
	}
	dev = append(dev, main[:5]...)
	src.commits["me/api-gateway@main"] = main
	src.commits["me/api-gateway@dev"] = dev

	agg := NewCommitAggregator(src, 3, 10)
	got := agg.Aggregate(context.Background(), "tok", testRepo())

	require.Len(t, got, 10)

	seen := make(map[string]bool)
	for i, c := range got {
		assert.False(t, seen[c.SHA], "sha %s duplicated", c.SHA)
		seen[c.SHA] = true
		if i > 0 {
			assert.False(t, got[i-1].AuthoredAt.Before(c.AuthoredAt), "window not sorted descending at %d", i)
		}
	}
}
