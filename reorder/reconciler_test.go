package reorder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory OrderStore whose persist step can be made to fail.
type fakeStore struct {
	mu           sync.Mutex
	orders       map[string][]Sibling
	persistCalls int
	fetchCalls   int
	failPersists int
	failFetches  int
}

func newFakeStore(scopeID string, ids ...string) *fakeStore {
	siblings := make([]Sibling, len(ids))
	for i, id := range ids {
		siblings[i] = Sibling{ID: id, OrderIndex: i}
	}
	return &fakeStore{orders: map[string][]Sibling{scopeID: siblings}}
}

func (f *fakeStore) PersistOrder(_ context.Context, scopeID string, ordered []Sibling) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.persistCalls++
	if f.failPersists > 0 {
		f.failPersists--
		return errors.New("remote store rejected the order")
	}
	f.orders[scopeID] = append([]Sibling(nil), ordered...)
	return nil
}

func (f *fakeStore) FetchOrder(_ context.Context, scopeID string) ([]Sibling, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.failFetches > 0 {
		f.failFetches--
		return nil, errors.New("remote store unavailable")
	}
	return append([]Sibling(nil), f.orders[scopeID]...), nil
}

func ids(siblings []Sibling) []string {
	out := make([]string, len(siblings))
	for i, s := range siblings {
		out[i] = s.ID
	}
	return out
}

func requireDenseOrder(t *testing.T, siblings []Sibling) {
	t.Helper()
	for i, s := range siblings {
		require.Equal(t, i, s.OrderIndex, "order must be dense and zero-based")
	}
}

func TestReorderInteriorMove(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C", "D")
	r := NewReconciler(store)

	outcome, err := r.Reorder(context.Background(), "listing", "A", 2)
	require.NoError(t, err)

	assert.Equal(t, StateSettled, outcome.State)
	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(outcome.Siblings))
	requireDenseOrder(t, outcome.Siblings)
	assert.Equal(t, []string{"B", "C", "A", "D"}, ids(store.orders["listing"]))
}

func TestReorderBoundaryMoves(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C", "D")
	r := NewReconciler(store)

	outcome, err := r.Reorder(context.Background(), "listing", "D", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "A", "B", "C"}, ids(outcome.Siblings))
	requireDenseOrder(t, outcome.Siblings)

	outcome, err = r.Reorder(context.Background(), "listing", "D", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(outcome.Siblings))
	requireDenseOrder(t, outcome.Siblings)
}

func TestReorderNoOpSkipsNetwork(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C")
	r := NewReconciler(store)
	_, err := r.Load(context.Background(), "listing")
	require.NoError(t, err)

	outcome, err := r.Reorder(context.Background(), "listing", "B", 1)
	require.NoError(t, err)

	assert.Equal(t, StateSettled, outcome.State)
	assert.Equal(t, []string{"A", "B", "C"}, ids(outcome.Siblings))
	assert.Zero(t, store.persistCalls, "no-op move must not hit the store")
}

func TestReorderSingleSiblingIsNoOp(t *testing.T) {
	store := newFakeStore("listing", "only")
	r := NewReconciler(store)

	outcome, err := r.Reorder(context.Background(), "listing", "only", 5)
	require.NoError(t, err)
	assert.Equal(t, StateSettled, outcome.State)
	assert.Zero(t, store.persistCalls)
}

func TestReorderClampsTargetIndex(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C")
	r := NewReconciler(store)

	outcome, err := r.Reorder(context.Background(), "listing", "A", 99)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, ids(outcome.Siblings))

	outcome, err = r.Reorder(context.Background(), "listing", "A", -3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, ids(outcome.Siblings))
}

func TestReorderUnknownSibling(t *testing.T) {
	store := newFakeStore("listing", "A", "B")
	r := NewReconciler(store)

	_, err := r.Reorder(context.Background(), "listing", "nope", 0)
	assert.ErrorIs(t, err, ErrSiblingNotFound)
	assert.Zero(t, store.persistCalls)
}

func TestReorderRollbackRefetchesAuthoritativeOrder(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C", "D")
	r := NewReconciler(store)
	_, err := r.Load(context.Background(), "listing")
	require.NoError(t, err)

	store.failPersists = 1
	outcome, err := r.Reorder(context.Background(), "listing", "A", 3)
	require.NoError(t, err)

	assert.Equal(t, StateRolledBack, outcome.State)
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(outcome.Siblings),
		"rollback must surface the server order, not the optimistic one")

	view, ok := r.View("listing")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids(view))
}

func TestReorderAfterRollbackStillWorks(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C")
	r := NewReconciler(store)

	store.failPersists = 1
	outcome, err := r.Reorder(context.Background(), "listing", "C", 0)
	require.NoError(t, err)
	require.Equal(t, StateRolledBack, outcome.State)

	outcome, err = r.Reorder(context.Background(), "listing", "C", 0)
	require.NoError(t, err)
	assert.Equal(t, StateSettled, outcome.State)
	assert.Equal(t, []string{"C", "A", "B"}, ids(outcome.Siblings))
}

func TestReorderAfterInvalidateSeesRewrittenSiblings(t *testing.T) {
	store := newFakeStore("course:c1", "ch1", "ch2")
	r := NewReconciler(store)
	_, err := r.Load(context.Background(), "course:c1")
	require.NoError(t, err)

	// an authoring save appends a chapter outside the reorder protocol
	store.mu.Lock()
	store.orders["course:c1"] = append(store.orders["course:c1"], Sibling{ID: "ch3", OrderIndex: 2})
	store.mu.Unlock()
	r.Invalidate("course:c1")

	outcome, err := r.Reorder(context.Background(), "course:c1", "ch1", 2)
	require.NoError(t, err)
	assert.Equal(t, StateSettled, outcome.State)
	assert.Equal(t, []string{"ch2", "ch3", "ch1"}, ids(outcome.Siblings),
		"the gesture must apply against the rewritten sibling set, not the stale view")
	requireDenseOrder(t, outcome.Siblings)
}

func TestReorderRollbackRefetchFailureForcesRehydrate(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C")
	r := NewReconciler(store)
	_, err := r.Load(context.Background(), "listing")
	require.NoError(t, err)

	store.failPersists = 1
	store.failFetches = 1
	outcome, err := r.Reorder(context.Background(), "listing", "C", 0)
	require.Error(t, err)
	assert.Equal(t, StateRolledBack, outcome.State)
	assert.Empty(t, outcome.Siblings)

	_, ok := r.View("listing")
	assert.False(t, ok, "an untrusted local view must be dropped")

	// the next gesture re-hydrates from the store and succeeds
	outcome, err = r.Reorder(context.Background(), "listing", "C", 0)
	require.NoError(t, err)
	assert.Equal(t, StateSettled, outcome.State)
	assert.Equal(t, []string{"C", "A", "B"}, ids(outcome.Siblings))
}

func TestReorderSerializesPerScope(t *testing.T) {
	store := newFakeStore("listing", "A", "B", "C", "D", "E")
	r := NewReconciler(store)
	_, err := r.Load(context.Background(), "listing")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(target int) {
			defer wg.Done()
			_, err := r.Reorder(context.Background(), "listing", "E", target%5)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	view, ok := r.View("listing")
	require.True(t, ok)
	require.Len(t, view, 5)
	requireDenseOrder(t, view)

	seen := map[string]bool{}
	for _, s := range view {
		seen[s.ID] = true
	}
	assert.Len(t, seen, 5, "no sibling may be lost or duplicated under concurrency")
}

func TestLoadHydratesView(t *testing.T) {
	store := newFakeStore("course:c1", "ch1", "ch2")
	r := NewReconciler(store)

	_, ok := r.View("course:c1")
	assert.False(t, ok)

	siblings, err := r.Load(context.Background(), "course:c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1", "ch2"}, ids(siblings))

	view, ok := r.View("course:c1")
	require.True(t, ok)
	assert.Equal(t, []string{"ch1", "ch2"}, ids(view))
}
