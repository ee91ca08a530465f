package commands_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(_ context.Context, _ order.Number) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllForOwner(_ context.Context, _ kernel.UUID) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForDate(ctx context.Context, date time.Time) (int64, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockProductCatalog struct{ mock.Mock }

func (m *MockProductCatalog) Resolve(ctx context.Context, productRef kernel.UUID) (ports.ProductInfo, error) {
	args := m.Called(ctx, productRef)
	return args.Get(0).(ports.ProductInfo), args.Error(1)
}

func catalogWith(prices map[kernel.UUID]ports.ProductInfo) *MockProductCatalog {
	catalog := new(MockProductCatalog)
	for ref, info := range prices {
		catalog.On("Resolve", mock.Anything, ref).Return(info, nil)
	}
	return catalog
}

func mustProductInfo(t *testing.T, name, price string) ports.ProductInfo {
	t.Helper()
	unitPrice, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	return ports.ProductInfo{Name: name, UnitPrice: unitPrice}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	ownerID := kernel.NewUUID()
	laptopRef := kernel.NewUUID()
	mouseRef := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(ownerID, []commands.LineItemRequest{
		{ProductRef: laptopRef, Quantity: 1},
		{ProductRef: mouseRef, Quantity: 2},
	}, "addr-42", "card-7")
	require.NoError(t, err)

	catalog := catalogWith(map[kernel.UUID]ports.ProductInfo{
		laptopRef: mustProductInfo(t, "Laptop", "999.99"),
		mouseRef:  mustProductInfo(t, "Mouse", "29.99"),
	})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("CountForDate", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, order.Pending, created.Status())
	assert.True(t, created.OwnerID().IsEqual(ownerID))
	assert.Equal(t, "1059.97", created.TotalAmount().String())
	assert.Regexp(t, `^ORD-\d{8}-001$`, created.Number().String())

	items := created.LineItems()
	require.Len(t, items, 2)
	assert.Equal(t, "Laptop", items[0].ProductName())
	assert.Equal(t, "Mouse", items[1].ProductName())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_SeedsSequenceFromDayCount(t *testing.T) {
	ctx := t.Context()
	productRef := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.LineItemRequest{
		{ProductRef: productRef, Quantity: 1},
	}, "addr", "card")
	require.NoError(t, err)

	catalog := catalogWith(map[kernel.UUID]ports.ProductInfo{
		productRef: mustProductInfo(t, "Widget", "5.00"),
	})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("CountForDate", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(41), nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d{8}-042$`, created.Number().String())
}

func TestCreateOrderCommandHandler_Handle_RetriesOnNumberCollision(t *testing.T) {
	ctx := t.Context()
	productRef := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.LineItemRequest{
		{ProductRef: productRef, Quantity: 1},
	}, "addr", "card")
	require.NoError(t, err)

	catalog := catalogWith(map[kernel.UUID]ports.ProductInfo{
		productRef: mustProductInfo(t, "Widget", "5.00"),
	})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	// Two concurrent creators already took numbers 003 and 004; the third
	// attempt lands on 005.
	uow.On("Begin", ctx).Return(nil).Times(3)
	uow.On("OrderRepository").Return(repo).Times(3)
	uow.On("Rollback", ctx).Return(nil).Times(3)
	uow.On("Commit", ctx).Return(nil).Once()
	repo.On("CountForDate", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(ports.ErrOrderNumberTaken).Twice()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	created, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d{8}-005$`, created.Number().String())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ExhaustsNumberRetries(t *testing.T) {
	ctx := t.Context()
	productRef := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.LineItemRequest{
		{ProductRef: productRef, Quantity: 1},
	}, "addr", "card")
	require.NoError(t, err)

	catalog := catalogWith(map[kernel.UUID]ports.ProductInfo{
		productRef: mustProductInfo(t, "Widget", "5.00"),
	})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(repo)
	uow.On("Rollback", ctx).Return(nil)
	repo.On("CountForDate", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()
	repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(ports.ErrOrderNumberTaken)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	created, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, commands.ErrNumberGenerationExhausted)
	repo.AssertNumberOfCalls(t, "Add", 10)
}

func TestCreateOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	productRef := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.LineItemRequest{
		{ProductRef: productRef, Quantity: 1},
	}, "addr", "card")
	require.NoError(t, err)

	catalog := new(MockProductCatalog)
	catalog.On("Resolve", mock.Anything, productRef).
		Return(ports.ProductInfo{}, fmt.Errorf("object not found: %s", productRef)).Once()

	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	created, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, created)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly
	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, new(MockProductCatalog))
	created, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Nil(t, created)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	productRef := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.LineItemRequest{
		{ProductRef: productRef, Quantity: 1},
	}, "addr", "card")
	require.NoError(t, err)

	catalog := catalogWith(map[kernel.UUID]ports.ProductInfo{
		productRef: mustProductInfo(t, "Widget", "5.00"),
	})

	uow := new(MockOrderUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	productRef := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), []commands.LineItemRequest{
		{ProductRef: productRef, Quantity: 1},
	}, "addr", "card")
	require.NoError(t, err)

	catalog := catalogWith(map[kernel.UUID]ports.ProductInfo{
		productRef: mustProductInfo(t, "Widget", "5.00"),
	})

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("CountForDate", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, catalog)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}
