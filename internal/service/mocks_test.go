package service

import (
	"context"
	"sync"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/YanisseIsmaili/github-monitor/internal/port"
)

// fakeSource is an in-memory port.RepoSource. Commit fixtures are keyed by
// "fullName@branch"; the default branch uses an empty branch name.
type fakeSource struct {
	mu sync.Mutex

	repos    map[domain.AccessType][]domain.Repo
	reposErr map[domain.AccessType]error

	branches    map[string][]domain.Branch
	branchesErr map[string]error

	commits    map[string][]domain.Commit
	commitsErr map[string]error

	user    *domain.UserProfile
	userErr error

	commitCalls []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		repos:       make(map[domain.AccessType][]domain.Repo),
		reposErr:    make(map[domain.AccessType]error),
		branches:    make(map[string][]domain.Branch),
		branchesErr: make(map[string]error),
		commits:     make(map[string][]domain.Commit),
		commitsErr:  make(map[string]error),
	}
}

func (f *fakeSource) ListRepositories(_ context.Context, _ string, access domain.AccessType) ([]domain.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.reposErr[access]; err != nil {
		return nil, err
	}
	return f.repos[access], nil
}

func (f *fakeSource) ListBranches(_ context.Context, _ string, fullName string) ([]domain.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.branchesErr[fullName]; err != nil {
		return nil, err
	}
	return f.branches[fullName], nil
}

func (f *fakeSource) ListCommits(_ context.Context, _ string, fullName, branch string, _ int) ([]domain.Commit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fullName + "@" + branch
	f.commitCalls = append(f.commitCalls, key)
	if err := f.commitsErr[key]; err != nil {
		return nil, err
	}
	return f.commits[key], nil
}

func (f *fakeSource) VerifyCredential(context.Context, string) (*domain.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

// memoryKV is an in-memory port.KeyValue for tests.
type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", port.ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
