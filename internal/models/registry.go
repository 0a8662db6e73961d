package models

import "strings"

// ModelEntry pairs the display name exposed to clients with the identifier
// the upstream provider expects.
type ModelEntry struct {
	DisplayName string `json:"display_name"`
	UpstreamID  string `json:"upstream_id"`
}

// Owner derives the owning organization from the upstream identifier
// (the path segment before the slash).
func (e ModelEntry) Owner() string {
	if idx := strings.IndexByte(e.UpstreamID, '/'); idx > 0 {
		return e.UpstreamID[:idx]
	}
	return "chutes"
}

// Registry is the immutable table of models known to work through the proxy.
// It is populated once at startup and never mutated, so lookups need no
// synchronization.
type Registry struct {
	entries []ModelEntry
	byName  map[string]ModelEntry
	byID    map[string]ModelEntry
}

// defaultEntries lists the curated models, in exposure order.
var defaultEntries = []ModelEntry{
	{DisplayName: "DeepSeek R1 0528", UpstreamID: "deepseek-ai/DeepSeek-R1-0528"},
	{DisplayName: "DeepHermes 3 Mistral 24B Preview", UpstreamID: "NousResearch/DeepHermes-3-Mistral-24B-Preview"},
	{DisplayName: "Reka Flash 3", UpstreamID: "RekaAI/reka-flash-3"},
	{DisplayName: "Cydonia 24B V2.1", UpstreamID: "TheDrummer/Cydonia-24B-v2.1"},
	{DisplayName: "OpenHands LM 32B V0.1", UpstreamID: "all-hands/openhands-lm-32b-v0.1-ep3"},
	{DisplayName: "InternVL3 78B", UpstreamID: "OpenGVLab/InternVL3-78B"},
	{DisplayName: "Skyfall 36B V2", UpstreamID: "thedrummer/skyfall-36b-v2"},
	{DisplayName: "Tunguska 39B V1", UpstreamID: "TheDrummer/Tunguska-39B-v1"},
	{DisplayName: "Donnager 70B V1", UpstreamID: "TheDrummer/Donnager-70B-v1"},
}

// Default returns the registry built from the curated literal table.
func Default() *Registry {
	return NewRegistry(defaultEntries)
}

// NewRegistry builds a registry from the given entries. Entry order is
// preserved for listing.
func NewRegistry(entries []ModelEntry) *Registry {
	r := &Registry{
		entries: make([]ModelEntry, len(entries)),
		byName:  make(map[string]ModelEntry, len(entries)),
		byID:    make(map[string]ModelEntry, len(entries)),
	}
	copy(r.entries, entries)
	for _, e := range r.entries {
		r.byName[normalizeKey(e.DisplayName)] = e
		r.byID[normalizeKey(e.UpstreamID)] = e
	}
	return r
}

// List returns the registry contents in table order. The returned slice is a
// copy; callers may not mutate registry state through it.
func (r *Registry) List() []ModelEntry {
	out := make([]ModelEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Resolve maps an inbound model name to the upstream identifier. The display
// name is the canonical form; the raw upstream identifier is accepted as an
// alias so clients pointed at the provider directly keep working.
func (r *Registry) Resolve(name string) (string, bool) {
	key := normalizeKey(name)
	if key == "" {
		return "", false
	}
	if e, ok := r.byName[key]; ok {
		return e.UpstreamID, true
	}
	if e, ok := r.byID[key]; ok {
		return e.UpstreamID, true
	}
	return "", false
}

// Lookup returns the full entry for an inbound model name or alias.
func (r *Registry) Lookup(name string) (ModelEntry, bool) {
	key := normalizeKey(name)
	if e, ok := r.byName[key]; ok {
		return e, true
	}
	if e, ok := r.byID[key]; ok {
		return e, true
	}
	return ModelEntry{}, false
}

// DisplayNameFor maps an upstream identifier back to the exposed display name.
func (r *Registry) DisplayNameFor(upstreamID string) (string, bool) {
	if e, ok := r.byID[normalizeKey(upstreamID)]; ok {
		return e.DisplayName, true
	}
	return "", false
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
