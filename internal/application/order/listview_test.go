package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeOrders(t *testing.T, names ...string) []order.Order {
	t.Helper()
	orders := make([]order.Order, 0, len(names))
	for idx, name := range names {
		o := newTestOrder(t)
		require.NoError(t, o.SetCustomer(name, "", "", false))
		// stagger creation times so the default ordering is deterministic:
		// earlier names are older
		o.CreatedAt = time.Now().Add(time.Duration(idx-len(names)) * time.Minute)
		orders = append(orders, *o)
	}
	return orders
}

func orderNames(orders []order.Order) []string {
	names := make([]string, 0, len(orders))
	for idx := range orders {
		names = append(names, orders[idx].CustomerName)
	}
	return names
}

func TestListView_LoadNextPage(t *testing.T) {
	repo := new(MockOrderRepository)
	orders := makeOrders(t, "A", "B", "C")
	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.Anything).Return(orders, int64(3), nil).Once()

	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 20})
	loaded, err := view.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)

	// newest first by creation time
	assert.Equal(t, []string{"C", "B", "A"}, orderNames(view.Orders()))
	assert.Equal(t, int64(3), view.Total())
	assert.False(t, view.HasMore(), "single page of 3 with size 20")

	loaded, err = view.LoadNextPage(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded, "no request past the reported page count")
	repo.AssertNumberOfCalls(t, "FindAll", 1)
}

func TestListView_MergeDeduplicatesByID(t *testing.T) {
	repo := new(MockOrderRepository)
	orders := makeOrders(t, "A", "B")
	page1 := []order.Order{orders[0], orders[1]}
	// second page returns B again (renamed) plus nothing new
	renamed := *orders[1].Clone()
	require.NoError(t, renamed.SetCustomer("B2", "", "", false))
	page2 := []order.Order{renamed}

	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.MatchedBy(func(f order.Filter) bool { return f.Page == 1 })).
		Return(page1, int64(3), nil).Once()
	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.MatchedBy(func(f order.Filter) bool { return f.Page == 2 })).
		Return(page2, int64(3), nil).Once()

	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 2})
	_, err := view.LoadNextPage(context.Background())
	require.NoError(t, err)
	_, err = view.LoadNextPage(context.Background())
	require.NoError(t, err)

	merged := view.Orders()
	assert.Len(t, merged, 2, "duplicate id collapsed")
	assert.Contains(t, orderNames(merged), "B2", "later fetch wins")
}

func TestListView_Reorder(t *testing.T) {
	repo := new(MockOrderRepository)
	orders := makeOrders(t, "A", "B", "C")
	// displayed newest-first as [C, B, A]; build ids for the visible order
	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.Anything).Return(orders, int64(3), nil).Once()

	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 20})
	_, err := view.LoadNextPage(context.Background())
	require.NoError(t, err)

	visible := view.Orders()
	require.Equal(t, []string{"C", "B", "A"}, orderNames(visible))

	// drop the top row (C) below the bottom: [B, A, C]
	newOrder := []uuid.UUID{visible[1].ID, visible[2].ID, visible[0].ID}
	base := time.Now().UnixMilli()

	var captured []order.SortIndexUpdate
	repo.On("UpdateSortIndexes", mock.Anything, shared.ScopeAlati, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]order.SortIndexUpdate)
		}).Return(nil).Once()

	require.NoError(t, view.Reorder(context.Background(), newOrder, base))
	assert.Equal(t, []string{"B", "A", "C"}, orderNames(view.Orders()))

	require.Len(t, captured, 3)
	for idx, update := range captured {
		assert.Equal(t, base-int64(idx), update.SortIndex)
	}
	// strictly decreasing sort indexes
	assert.Greater(t, captured[0].SortIndex, captured[1].SortIndex)
	assert.Greater(t, captured[1].SortIndex, captured[2].SortIndex)
}

func TestListView_ReorderRollbackOnFailure(t *testing.T) {
	repo := new(MockOrderRepository)
	orders := makeOrders(t, "A", "B", "C")
	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.Anything).Return(orders, int64(3), nil).Once()
	repo.On("UpdateSortIndexes", mock.Anything, shared.ScopeAlati, mock.Anything).
		Return(errors.New("timeout")).Once()

	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 20})
	_, err := view.LoadNextPage(context.Background())
	require.NoError(t, err)

	before := orderNames(view.Orders())
	visible := view.Orders()
	newOrder := []uuid.UUID{visible[1].ID, visible[2].ID, visible[0].ID}

	err = view.Reorder(context.Background(), newOrder, time.Now().UnixMilli())
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeRemoteFailure))
	assert.Equal(t, before, orderNames(view.Orders()), "prior ordering restored")
}

func TestListView_ReorderUnknownID(t *testing.T) {
	repo := new(MockOrderRepository)
	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 20})

	err := view.Reorder(context.Background(), []uuid.UUID{uuid.New()}, 0)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
	repo.AssertNotCalled(t, "UpdateSortIndexes", mock.Anything, mock.Anything, mock.Anything)
}

func TestListView_SortIndexOverridesCreationTime(t *testing.T) {
	repo := new(MockOrderRepository)
	orders := makeOrders(t, "A", "B")
	// A is older, but a manual sort index pins it far in the future
	pin := time.Now().Add(time.Hour).UnixMilli()
	orders[0].SetSortIndex(&pin)
	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.Anything).Return(orders, int64(2), nil).Once()

	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 20})
	_, err := view.LoadNextPage(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, orderNames(view.Orders()))
}

func TestListView_AggregateMatchesPerRowSums(t *testing.T) {
	repo := new(MockOrderRepository)
	orders := makeOrders(t, "A", "B", "C")
	repo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.Anything).Return(orders, int64(3), nil).Once()

	view := NewListView(repo, shared.ScopeAlati, order.Filter{PageSize: 20})
	_, err := view.LoadNextPage(context.Background())
	require.NoError(t, err)

	agg := view.Aggregate()
	want := order.Aggregate(view.Orders())
	assert.Equal(t, want.TotalQty, agg.TotalQty)
	assert.True(t, agg.Profit.Equal(want.Profit))
	assert.True(t, agg.Povrat.Equal(want.Povrat))
}
