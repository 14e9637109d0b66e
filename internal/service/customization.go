package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/YanisseIsmaili/github-monitor/internal/port"
)

// Persisted store keys. Values are JSON; the credential is stored raw.
const (
	keyOrder     = "repo_order"
	keyCollapsed = "collapsed_repos"
	keyColors    = "repo_colors"
	keyTags      = "repo_tags"
)

// Customizations is the persisted per-repository user state: manual order,
// collapse flags, color and tag assignments. It keeps an in-memory mirror
// and writes through to the durable store on every mutation. Records are
// keyed by repository id, not object reference, so they survive full data
// replacement; a repository vanishing from the live set keeps its color,
// tags, and collapse flag (only its order slot is dropped) and gets them
// back when it reappears.
type Customizations struct {
	mu        sync.Mutex
	kv        port.KeyValue
	order     []int64
	collapsed map[int64]bool
	colors    map[int64]string
	tags      map[int64][]string
}

// NewCustomizations creates an empty store backed by kv. Call Load before use.
func NewCustomizations(kv port.KeyValue) *Customizations {
	return &Customizations{
		kv:        kv,
		collapsed: make(map[int64]bool),
		colors:    make(map[int64]string),
		tags:      make(map[int64][]string),
	}
}

// Load reads all facets from the durable store. Absent or malformed entries
// resolve to empty state; corruption is logged, never fatal.
func (c *Customizations) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var order []int64
	if c.loadJSON(keyOrder, &order) {
		c.order = order
	}

	var collapsedIDs []int64
	if c.loadJSON(keyCollapsed, &collapsedIDs) {
		c.collapsed = make(map[int64]bool, len(collapsedIDs))
		for _, id := range collapsedIDs {
			c.collapsed[id] = true
		}
	}

	var colors map[string]string
	if c.loadJSON(keyColors, &colors) {
		c.colors = make(map[int64]string, len(colors))
		for k, v := range colors {
			if id, err := strconv.ParseInt(k, 10, 64); err == nil {
				c.colors[id] = v
			}
		}
	}

	var tags map[string][]string
	if c.loadJSON(keyTags, &tags) {
		c.tags = make(map[int64][]string, len(tags))
		for k, v := range tags {
			if id, err := strconv.ParseInt(k, 10, 64); err == nil {
				c.tags[id] = v
			}
		}
	}
}

func (c *Customizations) loadJSON(key string, dest any) bool {
	raw, err := c.kv.Get(key)
	if err != nil {
		if !errors.Is(err, port.ErrKeyNotFound) {
			slog.Warn("reading stored state failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		slog.Warn("stored state malformed, treating as absent", "key", key, "error", err)
		return false
	}
	return true
}

// ReconcileOrder merges the persisted order list with the live id set:
// ids still present keep their relative order, newly seen ids append in
// fetch-arrival order, vanished ids drop from the list (their other facets
// stay). Idempotent for a fixed live set.
func (c *Customizations) ReconcileOrder(liveIDs []int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := make(map[int64]struct{}, len(liveIDs))
	for _, id := range liveIDs {
		live[id] = struct{}{}
	}

	known := make(map[int64]struct{}, len(c.order))
	merged := make([]int64, 0, len(liveIDs))
	for _, id := range c.order {
		known[id] = struct{}{}
		if _, ok := live[id]; ok {
			merged = append(merged, id)
		}
	}
	for _, id := range liveIDs {
		if _, ok := known[id]; !ok {
			merged = append(merged, id)
		}
	}

	c.order = merged
	return c.persistOrder()
}

// Reorder moves sourceID from its position and reinserts it at targetID's
// position (array-move). No-op when the ids are equal or either is absent.
func (c *Customizations) Reorder(sourceID, targetID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sourceID == targetID {
		return nil
	}

	from, to := -1, -1
	for i, id := range c.order {
		switch id {
		case sourceID:
			from = i
		case targetID:
			to = i
		}
	}
	if from == -1 || to == -1 {
		return nil
	}

	moved := c.order[from]
	c.order = append(c.order[:from], c.order[from+1:]...)
	c.order = append(c.order[:to], append([]int64{moved}, c.order[to:]...)...)

	return c.persistOrder()
}

// ToggleCollapse flips the collapsed flag for a repository.
func (c *Customizations) ToggleCollapse(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.collapsed[id] {
		delete(c.collapsed, id)
	} else {
		c.collapsed[id] = true
	}

	ids := make([]int64, 0, len(c.collapsed))
	for id := range c.collapsed {
		ids = append(ids, id)
	}
	return c.persistJSON(keyCollapsed, ids)
}

// SetColor assigns a palette color to a repository; the empty value clears
// the assignment instead of storing a marker.
func (c *Customizations) SetColor(id int64, color string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if color == "" {
		delete(c.colors, id)
	} else {
		c.colors[id] = color
	}
	return c.persistJSON(keyColors, idKeyed(c.colors))
}

// ToggleTag adds the tag to the repository's set if absent, removes it if
// present. A removal that empties the set deletes the record entirely.
func (c *Customizations) ToggleTag(id int64, tagID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.tags[id]
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, t := range current {
		if t == tagID {
			removed = true
			continue
		}
		next = append(next, t)
	}
	if !removed {
		next = append(next, tagID)
	}

	if len(next) == 0 {
		delete(c.tags, id)
	} else {
		c.tags[id] = next
	}
	return c.persistJSON(keyTags, idKeyed(c.tags))
}

// Order returns a copy of the current manual order list.
func (c *Customizations) Order() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, len(c.order))
	copy(out, c.order)
	return out
}

// Collapsed reports the collapse flag for a repository.
func (c *Customizations) Collapsed(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.collapsed[id]
}

// Color returns the assigned color, or empty.
func (c *Customizations) Color(id int64) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.colors[id]
}

// TagsFor returns a copy of the repository's tag set.
func (c *Customizations) TagsFor(id int64) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.tags[id]...)
}

// TagMap returns a copy of the full id→tags mapping, for projection.
func (c *Customizations) TagMap() map[int64][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int64][]string, len(c.tags))
	for id, tags := range c.tags {
		out[id] = append([]string(nil), tags...)
	}
	return out
}

func (c *Customizations) persistOrder() error {
	return c.persistJSON(keyOrder, c.order)
}

func (c *Customizations) persistJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.kv.Set(key, string(data))
}

// idKeyed converts an int64-keyed map to string keys for JSON storage.
func idKeyed[V any](m map[int64]V) map[string]V {
	out := make(map[string]V, len(m))
	for id, v := range m {
		out[strconv.FormatInt(id, 10)] = v
	}
	return out
}
