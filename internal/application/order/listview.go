package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ListView maintains the operator's view over one order collection: a
// running, id-deduplicated set of fetched pages, re-sorted by the effective
// order key after every merge, with manual drag-reorder applied
// optimistically and rolled back on remote failure.
type ListView struct {
	repo  order.Repository
	scope shared.Scope

	mu         sync.Mutex
	filter     order.Filter
	orders     []order.Order
	nextPage   int
	totalPages int
	total      int64
	loading    bool
}

// NewListView creates a view over a scope with the given filter
func NewListView(repo order.Repository, scope shared.Scope, filter order.Filter) *ListView {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return &ListView{
		repo:       repo,
		scope:      scope,
		filter:     filter,
		nextPage:   filter.Page,
		totalPages: -1, // unknown until the first page arrives
	}
}

// Orders returns the merged, sorted running set
func (v *ListView) Orders() []order.Order {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]order.Order, len(v.orders))
	copy(out, v.orders)
	return out
}

// Total returns the server-reported total matching count
func (v *ListView) Total() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total
}

// Aggregate recomputes the running totals over the currently-loaded set
func (v *ListView) Aggregate() order.Financials {
	v.mu.Lock()
	defer v.mu.Unlock()
	return order.Aggregate(v.orders)
}

// HasMore reports whether further pages remain
func (v *ListView) HasMore() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.totalPages < 0 || v.nextPage <= v.totalPages
}

// LoadNextPage fetches and merges the next page. It refuses to issue a new
// request while one is pending and stops once the reported page count is
// reached; both cases return loaded=false with no error.
func (v *ListView) LoadNextPage(ctx context.Context) (loaded bool, err error) {
	v.mu.Lock()
	if v.loading || (v.totalPages >= 0 && v.nextPage > v.totalPages) {
		v.mu.Unlock()
		return false, nil
	}
	v.loading = true
	filter := v.filter
	filter.Page = v.nextPage
	v.mu.Unlock()

	items, total, fetchErr := v.repo.FindAll(ctx, v.scope, filter)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if fetchErr != nil {
		return false, shared.NewRemoteFailure(fetchErr.Error())
	}

	v.total = total
	v.totalPages = int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		v.totalPages++
	}
	v.nextPage++
	v.merge(items)
	return true, nil
}

// SetFilter replaces the filter and resets the running set
func (v *ListView) SetFilter(filter order.Filter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = filter
	v.orders = nil
	v.nextPage = filter.Page
	v.totalPages = -1
	v.total = 0
}

// Reorder applies a manual drag-reorder. Each order in the new sequence gets
// a sort index of base minus its position, which keeps the set strictly
// ordered without renumbering anything outside it. The new ordering is
// visible immediately; a failed batch persist restores the previous one.
func (v *ListView) Reorder(ctx context.Context, orderedIDs []uuid.UUID, baseMillis int64) error {
	if baseMillis <= 0 {
		baseMillis = time.Now().UnixMilli()
	}

	v.mu.Lock()
	snapshot := v.orders

	byID := make(map[uuid.UUID]*order.Order, len(v.orders))
	for idx := range v.orders {
		byID[v.orders[idx].ID] = &v.orders[idx]
	}

	next := make([]order.Order, 0, len(orderedIDs))
	updates := make([]order.SortIndexUpdate, 0, len(orderedIDs))
	for pos, id := range orderedIDs {
		existing, ok := byID[id]
		if !ok {
			v.mu.Unlock()
			return shared.NewValidationError("Reorder references an order that is not loaded")
		}
		sortIndex := baseMillis - int64(pos)
		reindexed := *existing.Clone()
		reindexed.SetSortIndex(&sortIndex)
		next = append(next, reindexed)
		updates = append(updates, order.SortIndexUpdate{OrderID: id, SortIndex: sortIndex})
	}

	v.orders = next
	v.sortLocked()
	v.mu.Unlock()

	if err := v.repo.UpdateSortIndexes(ctx, v.scope, updates); err != nil {
		v.mu.Lock()
		v.orders = snapshot
		v.mu.Unlock()
		return shared.NewRemoteFailure(err.Error())
	}
	return nil
}

// merge folds a fetched page into the running set, replacing rows already
// present by id, then re-sorts
func (v *ListView) merge(items []order.Order) {
	index := make(map[uuid.UUID]int, len(v.orders))
	for idx := range v.orders {
		index[v.orders[idx].ID] = idx
	}
	for _, item := range items {
		if idx, ok := index[item.ID]; ok {
			v.orders[idx] = item
			continue
		}
		index[item.ID] = len(v.orders)
		v.orders = append(v.orders, item)
	}
	v.sortLocked()
}

// sortLocked orders by effective key descending, creation time as tie-break
func (v *ListView) sortLocked() {
	sort.SliceStable(v.orders, func(i, j int) bool {
		ki, kj := v.orders[i].EffectiveSortKey(), v.orders[j].EffectiveSortKey()
		if ki != kj {
			return ki > kj
		}
		return v.orders[i].CreatedAt.After(v.orders[j].CreatedAt)
	})
}
