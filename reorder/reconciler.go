// Package reorder implements the optimistic reordering protocol for listing
// views. A drag gesture is applied to the local sibling order immediately,
// then the whole sibling set is persisted; if persistence fails the local
// view is replaced wholesale with the store's authoritative order instead of
// hand-unwinding the gesture.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Sibling is one orderable child within a scope: a course in the listing, a
// chapter within a course, or an item within a chapter.
type Sibling struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"order_index"`
}

// Reconciler states. A reorder call walks LOCAL_APPLIED → PERSISTING and ends
// in SETTLED or ROLLED_BACK; IDLE is the resting state between calls.
const (
	StateIdle         = "IDLE"
	StateLocalApplied = "LOCAL_APPLIED"
	StatePersisting   = "PERSISTING"
	StateSettled      = "SETTLED"
	StateRolledBack   = "ROLLED_BACK"
)

// ErrSiblingNotFound is returned when the moved id is not in the scope.
var ErrSiblingNotFound = errors.New("moved sibling not found in scope")

// OrderStore is the remote collaborator that persists and serves sibling
// order. PersistOrder must be idempotent: resubmitting the same payload is
// safe.
type OrderStore interface {
	PersistOrder(ctx context.Context, scopeID string, ordered []Sibling) error
	FetchOrder(ctx context.Context, scopeID string) ([]Sibling, error)
}

// Outcome reports how a reorder ended and the sibling order now visible to
// callers: the optimistic result when settled, the server's authoritative
// order when rolled back.
type Outcome struct {
	State    string    `json:"state"`
	Siblings []Sibling `json:"siblings"`
}

type scopeView struct {
	mu       sync.Mutex
	siblings []Sibling
	loaded   bool
}

// Reconciler owns the local ordered view per scope and serializes reorders so
// no two persists for one scope are ever in flight together. A reorder
// arriving while another is in flight simply waits its turn and then applies
// on top of the settled state, so the last applied request wins.
type Reconciler struct {
	store OrderStore

	mu     sync.Mutex
	scopes map[string]*scopeView
}

// NewReconciler builds a reconciler over the given order store.
func NewReconciler(store OrderStore) *Reconciler {
	return &Reconciler{
		store:  store,
		scopes: make(map[string]*scopeView),
	}
}

func (r *Reconciler) scope(scopeID string) *scopeView {
	r.mu.Lock()
	defer r.mu.Unlock()
	sv, ok := r.scopes[scopeID]
	if !ok {
		sv = &scopeView{}
		r.scopes[scopeID] = sv
	}
	return sv
}

// Load refetches a scope's sibling order from the store and replaces the
// local view with it.
func (r *Reconciler) Load(ctx context.Context, scopeID string) ([]Sibling, error) {
	sv := r.scope(scopeID)
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return r.refetchLocked(ctx, scopeID, sv)
}

// Invalidate drops a scope's local view so the next gesture re-hydrates from
// the store. Authoring saves rewrite sibling sets outside the reorder
// protocol; they must invalidate the touched scopes or later reorders would
// compute against a stale view.
func (r *Reconciler) Invalidate(scopeID string) {
	sv := r.scope(scopeID)
	sv.mu.Lock()
	defer sv.mu.Unlock()
	sv.loaded = false
	sv.siblings = nil
}

// View returns a copy of the local sibling order for a scope, and whether the
// scope has been hydrated at all.
func (r *Reconciler) View(scopeID string) ([]Sibling, bool) {
	sv := r.scope(scopeID)
	sv.mu.Lock()
	defer sv.mu.Unlock()
	if !sv.loaded {
		return nil, false
	}
	return copySiblings(sv.siblings), true
}

// Reorder moves movedID to targetIndex within the scope's sibling set and
// renumbers the whole set densely. The local view updates before the store
// round trip; a persist failure triggers a full refetch and a ROLLED_BACK
// outcome. A move to the current position settles without any store call.
func (r *Reconciler) Reorder(ctx context.Context, scopeID, movedID string, targetIndex int) (Outcome, error) {
	sv := r.scope(scopeID)
	sv.mu.Lock()
	defer sv.mu.Unlock()

	if !sv.loaded {
		if _, err := r.refetchLocked(ctx, scopeID, sv); err != nil {
			return Outcome{State: StateIdle}, err
		}
	}

	moved, changed, err := moveSibling(sv.siblings, movedID, targetIndex)
	if err != nil {
		return Outcome{State: StateIdle, Siblings: copySiblings(sv.siblings)}, err
	}
	if !changed {
		// no-op move: nothing to persist
		return Outcome{State: StateSettled, Siblings: copySiblings(sv.siblings)}, nil
	}

	// LOCAL_APPLIED: the caller-visible order changes before any network hop
	sv.siblings = moved

	// PERSISTING: the entire sibling set is submitted, not just the delta
	if err := r.store.PersistOrder(ctx, scopeID, copySiblings(moved)); err != nil {
		authoritative, fetchErr := r.refetchLocked(ctx, scopeID, sv)
		if fetchErr != nil {
			// the local view can no longer be trusted; force a rehydrate on
			// the next call
			sv.loaded = false
			sv.siblings = nil
			return Outcome{State: StateRolledBack}, fmt.Errorf("persist order failed (%v), refetch failed: %w", err, fetchErr)
		}
		return Outcome{State: StateRolledBack, Siblings: authoritative}, nil
	}

	return Outcome{State: StateSettled, Siblings: copySiblings(sv.siblings)}, nil
}

func (r *Reconciler) refetchLocked(ctx context.Context, scopeID string, sv *scopeView) ([]Sibling, error) {
	siblings, err := r.store.FetchOrder(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	sv.siblings = copySiblings(siblings)
	sv.loaded = true
	return copySiblings(siblings), nil
}

// moveSibling removes movedID and reinserts it at targetIndex (clamped to the
// list bounds), then renumbers every sibling 0..n-1. It reports whether the
// order actually changed.
func moveSibling(siblings []Sibling, movedID string, targetIndex int) ([]Sibling, bool, error) {
	from := -1
	for i := range siblings {
		if siblings[i].ID == movedID {
			from = i
			break
		}
	}
	if from < 0 {
		return nil, false, ErrSiblingNotFound
	}

	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(siblings)-1 {
		targetIndex = len(siblings) - 1
	}
	if targetIndex == from || len(siblings) == 1 {
		return nil, false, nil
	}

	out := make([]Sibling, 0, len(siblings))
	out = append(out, siblings[:from]...)
	out = append(out, siblings[from+1:]...)
	out = append(out[:targetIndex], append([]Sibling{siblings[from]}, out[targetIndex:]...)...)
	for i := range out {
		out[i].OrderIndex = i
	}
	return out, true, nil
}

func copySiblings(in []Sibling) []Sibling {
	out := make([]Sibling, len(in))
	copy(out, in)
	return out
}
