package graphics

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ResourceKind names the type of a tracked render resource.
type ResourceKind string

const (
	KindTexture     ResourceKind = "texture"
	KindShader      ResourceKind = "shader"
	KindMesh        ResourceKind = "mesh"
	KindSprite      ResourceKind = "sprite"
	KindFramebuffer ResourceKind = "framebuffer"
)

// LiveResource describes a resource that has been created and not destroyed.
type LiveResource struct {
	ID    uuid.UUID
	Kind  ResourceKind
	Label string
}

// Tracker records live render resources. Resources are never reclaimed
// automatically, so whatever is still registered at shutdown has leaked.
// A nil *Tracker ignores every call.
type Tracker struct {
	mu    sync.RWMutex
	live  map[uuid.UUID]LiveResource
	order []uuid.UUID
}

func NewTracker() *Tracker {
	return &Tracker{live: make(map[uuid.UUID]LiveResource)}
}

func (t *Tracker) register(kind ResourceKind, label string) uuid.UUID {
	id := uuid.New()
	if t == nil {
		return id
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live[id] = LiveResource{ID: id, Kind: kind, Label: label}
	t.order = append(t.order, id)
	return id
}

func (t *Tracker) release(id uuid.UUID) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.live, id)
	if len(t.order) > 2*len(t.live)+16 {
		kept := t.order[:0]
		for _, o := range t.order {
			if _, ok := t.live[o]; ok {
				kept = append(kept, o)
			}
		}
		t.order = kept
	}
}

// Live returns the resources still registered, oldest first.
func (t *Tracker) Live() []LiveResource {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]LiveResource, 0, len(t.live))
	for _, id := range t.order {
		if r, ok := t.live[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of live resources per kind.
func (t *Tracker) Count() map[ResourceKind]int {
	counts := make(map[ResourceKind]int)
	for _, r := range t.Live() {
		counts[r.Kind]++
	}
	return counts
}

// Kinds returns the kinds that currently have live resources, sorted.
func (t *Tracker) Kinds() []ResourceKind {
	counts := t.Count()
	kinds := make([]ResourceKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
