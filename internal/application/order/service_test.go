package order

import (
	"context"
	"errors"
	"testing"

	"github.com/ckobasti77/alati-sub000/internal/domain/catalog"
	"github.com/ckobasti77/alati-sub000/internal/domain/order"
	"github.com/ckobasti77/alati-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(shared.ScopeAlati, "Brusilica",
		decimal.NewFromInt(1000), decimal.NewFromInt(1500))
	require.NoError(t, err)
	return p
}

func TestOrderService_Create(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewOrderService(orderRepo, productRepo)

	product := newTestProduct(t)
	supplierA, supplierB := uuid.New(), uuid.New()
	_, err := product.AddOffer(supplierA, nil, decimal.NewFromInt(950))
	require.NoError(t, err)
	_, err = product.AddOffer(supplierB, nil, decimal.NewFromInt(900))
	require.NoError(t, err)

	productRepo.On("FindByID", mock.Anything, shared.ScopeAlati, product.ID).Return(product, nil)
	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.Create(context.Background(), shared.ScopeAlati, CreateOrderRequest{
		CustomerName:  "Petar Petrovic",
		CustomerPhone: "0641234567",
		Items: []CreateOrderItemRequest{
			{ProductID: product.ID, Kolicina: 2},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, "Brusilica", item.Title)
	assert.Equal(t, 2, item.Kolicina)
	// cheapest offer wins over the product base price
	assert.True(t, decimal.NewFromInt(900).Equal(decimal.RequireFromString(item.NabavnaCena)))
	assert.True(t, decimal.NewFromInt(1500).Equal(decimal.RequireFromString(item.ProdajnaCena)))
	assert.False(t, item.ManualSalePrice)
	assert.Equal(t, string(order.StagePoruceno), resp.Stage)

	orderRepo.AssertExpectations(t)
}

func TestOrderService_CreateManualSalePrice(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewOrderService(orderRepo, productRepo)

	product := newTestProduct(t)
	productRepo.On("FindByID", mock.Anything, shared.ScopeAlati, product.ID).Return(product, nil)
	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	manual := "1399,50"
	resp, err := service.Create(context.Background(), shared.ScopeAlati, CreateOrderRequest{
		CustomerName: "Mika",
		Items: []CreateOrderItemRequest{
			{ProductID: product.ID, Kolicina: 1, ManualSalePrice: &manual},
		},
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(1399.5).Equal(decimal.RequireFromString(resp.Items[0].ProdajnaCena)))
	assert.True(t, resp.Items[0].ManualSalePrice)
}

func TestOrderService_CreateInvalidManualPrice(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	service := NewOrderService(orderRepo, productRepo)

	product := newTestProduct(t)
	productRepo.On("FindByID", mock.Anything, shared.ScopeAlati, product.ID).Return(product, nil)

	manual := "abc"
	_, err := service.Create(context.Background(), shared.ScopeAlati, CreateOrderRequest{
		CustomerName: "Mika",
		Items: []CreateOrderItemRequest{
			{ProductID: product.ID, Kolicina: 1, ManualSalePrice: &manual},
		},
	})
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidManualPrice))
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_CreateNotificationFailureDoesNotFailCreate(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	notifier := new(MockNotifier)
	service := NewOrderService(orderRepo, productRepo)
	service.SetNotifier(notifier)

	product := newTestProduct(t)
	productRepo.On("FindByID", mock.Anything, shared.ScopeAlati, product.ID).Return(product, nil)
	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	notifier.On("OrderCreated", mock.Anything, mock.Anything).Return(errors.New("smtp relay down"))

	resp, err := service.Create(context.Background(), shared.ScopeAlati, CreateOrderRequest{
		CustomerName: "Mika",
		Items: []CreateOrderItemRequest{
			{ProductID: product.ID, Kolicina: 1},
		},
	})
	require.NoError(t, err, "notification is best effort")
	assert.NotNil(t, resp)
	notifier.AssertExpectations(t)
}

func TestOrderService_ChangeStage(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	o := newTestOrder(t)
	orderRepo.On("FindByID", mock.Anything, shared.ScopeAlati, o.ID).Return(o, nil)
	orderRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)

	resp, err := service.ChangeStage(context.Background(), shared.ScopeAlati, o.ID, ChangeStageRequest{
		Stage:          string(order.StagePoslato),
		ShipmentNumber: "RS123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, string(order.StagePoslato), resp.Stage)
	assert.Equal(t, "RS123456789", resp.ShipmentNumber)
}

func TestOrderService_ChangeStagePoslatoRequiresShipmentNumber(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	o := newTestOrder(t)
	orderRepo.On("FindByID", mock.Anything, shared.ScopeAlati, o.ID).Return(o, nil)

	_, err := service.ChangeStage(context.Background(), shared.ScopeAlati, o.ID, ChangeStageRequest{
		Stage: string(order.StagePoslato),
	})
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeTransitionBlocked))
	orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestOrderService_UpdateRollbackOnRemoteFailure(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	o := newTestOrder(t)
	orderRepo.On("FindByID", mock.Anything, shared.ScopeAlati, o.ID).Return(o, nil)
	orderRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	transport := "350"
	_, err := service.Update(context.Background(), shared.ScopeAlati, o.ID, UpdateOrderRequest{
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		TransportCost: &transport,
	})
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeRemoteFailure))
	assert.Nil(t, o.TransportCost, "loaded order keeps its pre-edit fields")
}

func TestOrderService_UpdateItem(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	o := newTestOrder(t)
	itemID := o.Items[0].ID
	orderRepo.On("FindByID", mock.Anything, shared.ScopeAlati, o.ID).Return(o, nil)
	orderRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)

	qty := 3
	price := "1100,00"
	resp, err := service.UpdateItem(context.Background(), shared.ScopeAlati, o.ID, itemID, UpdateItemRequest{
		Kolicina:  &qty,
		SalePrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Items[0].Kolicina)
	assert.True(t, decimal.NewFromInt(1100).Equal(decimal.RequireFromString(resp.Items[0].ProdajnaCena)))
	assert.True(t, resp.Items[0].ManualSalePrice)
}

func TestOrderService_RemoveLastItemRejected(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	o := newTestOrder(t)
	orderRepo.On("FindByID", mock.Anything, shared.ScopeAlati, o.ID).Return(o, nil)

	_, err := service.RemoveItem(context.Background(), shared.ScopeAlati, o.ID, o.Items[0].ID)
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeLastItem))
	orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestOrderService_Delete(t *testing.T) {
	tests := []struct {
		name         string
		stage        order.Stage
		confirmation string
		wantErr      bool
		wantDeleted  bool
	}{
		{name: "early stage needs no phrase", stage: order.StagePoruceno, wantDeleted: true},
		{name: "stiglo without phrase rejected", stage: order.StageStiglo, wantErr: true},
		{name: "stiglo with phrase", stage: order.StageStiglo, confirmation: "obrisi", wantDeleted: true},
		{name: "phrase is case insensitive", stage: order.StageLeglePare, confirmation: "  OBRISI ", wantDeleted: true},
		{name: "wrong phrase rejected", stage: order.StageVraceno, confirmation: "delete", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			service := NewOrderService(orderRepo, new(MockProductRepository))

			o := newTestOrder(t)
			o.Stage = tt.stage
			orderRepo.On("FindByID", mock.Anything, shared.ScopeAlati, o.ID).Return(o, nil)
			orderRepo.On("Delete", mock.Anything, shared.ScopeAlati, o.ID).Return(nil)

			err := service.Delete(context.Background(), shared.ScopeAlati, o.ID, DeleteOrderRequest{
				Confirmation: tt.confirmation,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, shared.IsCode(err, shared.CodeDeleteNotConfirmed))
				orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			if tt.wantDeleted {
				orderRepo.AssertCalled(t, "Delete", mock.Anything, shared.ScopeAlati, o.ID)
			}
		})
	}
}

func TestOrderService_Reorder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	var captured []order.SortIndexUpdate
	orderRepo.On("UpdateSortIndexes", mock.Anything, shared.ScopeAlati, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]order.SortIndexUpdate)
		}).Return(nil)

	err := service.Reorder(context.Background(), shared.ScopeAlati, ReorderRequest{
		OrderedIDs: ids,
		BaseMillis: 1_000_000,
	})
	require.NoError(t, err)
	require.Len(t, captured, 3)
	for idx, update := range captured {
		assert.Equal(t, ids[idx], update.OrderID)
		assert.Equal(t, int64(1_000_000-idx), update.SortIndex)
	}
}

func TestOrderService_ListRejectsUnknownStage(t *testing.T) {
	service := NewOrderService(new(MockOrderRepository), new(MockProductRepository))

	_, err := service.List(context.Background(), shared.ScopeAlati, ListFilter{
		Stages: []string{"isporuceno"},
	})
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestOrderService_ListAggregatesPage(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository))

	a, b := newTestOrder(t), newTestOrder(t)
	orderRepo.On("FindAll", mock.Anything, shared.ScopeAlati, mock.Anything).
		Return([]order.Order{*a, *b}, int64(2), nil)

	resp, err := service.List(context.Background(), shared.ScopeAlati, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, 1, resp.TotalPages)

	want := order.Aggregate([]order.Order{*a, *b})
	assert.Equal(t, want.TotalQty, resp.Aggregate.TotalQty)
	assert.True(t, want.Profit.Equal(resp.Aggregate.Profit))
}
