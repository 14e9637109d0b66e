package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/YanisseIsmaili/github-monitor/internal/domain"
	"github.com/YanisseIsmaili/github-monitor/internal/port"
	"golang.org/x/sync/errgroup"
)

const keyCredential = "github_token"

// Dashboard coordinates the whole engine: credential lifecycle, refresh
// cycles, published repository state, and snapshot assembly. All mutable
// state is guarded by one mutex; user intents arriving from concurrent
// handlers serialize here.
type Dashboard struct {
	source     port.RepoSource
	kv         port.KeyValue
	custom     *Customizations
	aggregator *CommitAggregator
	events     *EventBus

	refreshInterval time.Duration

	mu        sync.Mutex
	token     string
	user      *domain.UserProfile
	repos     []domain.RepoWithCommits
	viewMode  domain.ViewMode
	query     string
	tagFilter string

	loading    bool
	lastErr    string
	lastUpdate time.Time

	autoRefresh bool
	stopTicker  chan struct{}

	// generation counters guard against an older in-flight refresh
	// overwriting the result of a newer one. Refreshes are never cancelled;
	// a stale completion is simply discarded.
	generation int64
	published  int64
}

// NewDashboard wires the engine together.
func NewDashboard(source port.RepoSource, kv port.KeyValue, custom *Customizations, aggregator *CommitAggregator, events *EventBus, refreshInterval time.Duration) *Dashboard {
	return &Dashboard{
		source:          source,
		kv:              kv,
		custom:          custom,
		aggregator:      aggregator,
		events:          events,
		refreshInterval: refreshInterval,
		viewMode:        domain.ViewModeAll,
	}
}

// Restore loads the persisted customization state and, if a credential was
// stored, verifies it and triggers the first refresh. An invalid stored
// credential is discarded and the engine starts unauthenticated.
func (d *Dashboard) Restore(ctx context.Context) {
	d.custom.Load()

	token, err := d.kv.Get(keyCredential)
	if err != nil {
		if !errors.Is(err, port.ErrKeyNotFound) {
			slog.Warn("reading stored credential failed", "error", err)
		}
		return
	}

	if err := d.Login(ctx, token); err != nil {
		slog.Warn("stored credential rejected", "error", err)
	}
}

// Login verifies the token, persists it, and starts a refresh. The verified
// profile becomes part of the snapshot.
func (d *Dashboard) Login(ctx context.Context, token string) error {
	user, err := d.source.VerifyCredential(ctx, token)
	if err != nil {
		if port.IsAuthFailure(err) {
			_ = d.kv.Delete(keyCredential)
			return port.ErrUnauthorized
		}
		return fmt.Errorf("verify credential: %w", err)
	}

	if err := d.kv.Set(keyCredential, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	d.mu.Lock()
	d.token = token
	d.user = user
	d.lastErr = ""
	d.mu.Unlock()

	slog.Info("authenticated", "login", user.Login)
	go d.refresh(context.Background())
	return nil
}

// Logout clears the credential and live data. Customizations stay persisted
// so a later login restores them.
func (d *Dashboard) Logout() {
	d.mu.Lock()
	d.token = ""
	d.user = nil
	d.repos = nil
	d.lastErr = ""
	d.lastUpdate = time.Time{}
	d.loading = false
	d.autoRefresh = false
	if d.stopTicker != nil {
		close(d.stopTicker)
		d.stopTicker = nil
	}
	d.mu.Unlock()

	if err := d.kv.Delete(keyCredential); err != nil {
		slog.Warn("clearing stored credential failed", "error", err)
	}
	slog.Info("logged out")
}

// Authenticated reports whether a verified credential is held.
func (d *Dashboard) Authenticated() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.token != ""
}

// Refresh runs one fetch/merge/aggregate cycle in the background. In-flight
// cycles are not cancelled; the one started last wins publication.
func (d *Dashboard) Refresh() {
	go d.refresh(context.Background())
}

func (d *Dashboard) refresh(ctx context.Context) {
	d.mu.Lock()
	token := d.token
	mode := d.viewMode
	if token == "" {
		d.mu.Unlock()
		return
	}
	d.generation++
	gen := d.generation
	d.loading = true
	d.mu.Unlock()

	owned, ownedErr := d.source.ListRepositories(ctx, token, domain.AccessOwner)
	if ownedErr != nil {
		slog.Warn("owner fetch failed", "error", ownedErr)
	}
	collaborating, collabErr := d.source.ListRepositories(ctx, token, domain.AccessCollaborator)
	if collabErr != nil {
		slog.Warn("collaborator fetch failed", "error", collabErr)
	}

	if ownedErr != nil && collabErr != nil {
		if port.IsAuthFailure(ownedErr) || port.IsAuthFailure(collabErr) {
			d.expireCredential()
			return
		}
		d.fail(gen, "refresh failed: repository listing unavailable")
		return
	}

	merged := MergeRepositories(owned, collaborating, mode)

	results := make([]domain.RepoWithCommits, len(merged))
	g, gctx := errgroup.WithContext(ctx)
	for i, repo := range merged {
		g.Go(func() error {
			results[i] = domain.RepoWithCommits{
				Repo:          repo,
				RecentCommits: d.aggregator.Aggregate(gctx, token, repo),
			}
			return nil
		})
	}
	_ = g.Wait()

	liveIDs := make([]int64, len(merged))
	for i, repo := range merged {
		liveIDs[i] = repo.ID
	}

	d.mu.Lock()
	if gen < d.published {
		d.mu.Unlock()
		slog.Debug("discarding stale refresh", "generation", gen)
		return
	}
	d.published = gen
	d.repos = results
	d.lastUpdate = time.Now()
	d.lastErr = ""
	d.loading = false
	d.mu.Unlock()

	if err := d.custom.ReconcileOrder(liveIDs); err != nil {
		slog.Warn("persisting reconciled order failed", "error", err)
	}

	slog.Info("refresh complete", "repos", len(results))
	d.events.Publish(domain.RefreshEvent{At: time.Now(), RepoCount: len(results)})
}

// fail records a total refresh failure. Previously displayed data is left
// untouched; only the loading indicator clears.
func (d *Dashboard) fail(gen int64, msg string) {
	d.mu.Lock()
	if gen < d.published {
		d.mu.Unlock()
		return
	}
	d.lastErr = msg
	d.loading = false
	d.mu.Unlock()

	d.events.Publish(domain.RefreshEvent{At: time.Now(), Error: msg})
}

// expireCredential handles a credential rejected mid-refresh: stored token
// cleared, engine back to unauthenticated.
func (d *Dashboard) expireCredential() {
	slog.Warn("credential rejected by remote, logging out")
	d.Logout()
	d.mu.Lock()
	d.lastErr = "credential invalid or expired"
	d.mu.Unlock()
}

// SetAutoRefresh enables or disables the periodic refresh timer.
func (d *Dashboard) SetAutoRefresh(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if enabled == d.autoRefresh {
		return
	}
	d.autoRefresh = enabled

	if enabled {
		stop := make(chan struct{})
		d.stopTicker = stop
		go d.tick(stop)
		return
	}
	if d.stopTicker != nil {
		close(d.stopTicker)
		d.stopTicker = nil
	}
}

func (d *Dashboard) tick(stop chan struct{}) {
	ticker := time.NewTicker(d.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.refresh(context.Background())
		case <-stop:
			return
		}
	}
}

// SetViewMode switches the provenance filter and refetches, mirroring the
// remote sort order the mode change implies.
func (d *Dashboard) SetViewMode(mode domain.ViewMode) {
	d.mu.Lock()
	changed := d.viewMode != mode
	d.viewMode = mode
	d.mu.Unlock()

	if changed {
		d.Refresh()
	}
}

// SetSearchQuery updates the search filter.
func (d *Dashboard) SetSearchQuery(query string) {
	d.mu.Lock()
	d.query = query
	d.mu.Unlock()
}

// SetActiveTagFilter updates the tag filter; empty clears it.
func (d *Dashboard) SetActiveTagFilter(tagID string) {
	d.mu.Lock()
	d.tagFilter = tagID
	d.mu.Unlock()
}

// Customizations exposes the persisted customization store for intent
// handlers (reorder, collapse, color, tag).
func (d *Dashboard) Customizations() *Customizations {
	return d.custom
}

// Events exposes the refresh event bus.
func (d *Dashboard) Events() *EventBus {
	return d.events
}

// Snapshot assembles the read-only state for presentation: projected repo
// cards plus analytics over the full fetched set.
func (d *Dashboard) Snapshot() domain.Snapshot {
	d.mu.Lock()
	repos := d.repos
	query := d.query
	tagFilter := d.tagFilter
	snap := domain.Snapshot{
		Authenticated:   d.token != "",
		User:            d.user,
		ViewMode:        d.viewMode,
		SearchQuery:     d.query,
		ActiveTagFilter: d.tagFilter,
		AutoRefresh:     d.autoRefresh,
		Loading:         d.loading,
		Error:           d.lastErr,
	}
	if !d.lastUpdate.IsZero() {
		t := d.lastUpdate
		snap.LastUpdate = &t
	}
	d.mu.Unlock()

	projected := ProjectView(repos, query, tagFilter, d.custom.TagMap(), d.custom.Order())

	snap.Repos = make([]domain.RepoCard, 0, len(projected))
	for _, repo := range projected {
		snap.Repos = append(snap.Repos, domain.RepoCard{
			RepoWithCommits: repo,
			Collapsed:       d.custom.Collapsed(repo.ID),
			Color:           d.custom.Color(repo.ID),
			Tags:            d.custom.TagsFor(repo.ID),
		})
	}

	snap.Stats = ComputeStats(time.Now(), repos)
	return snap
}
