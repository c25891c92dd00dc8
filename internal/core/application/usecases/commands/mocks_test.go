package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

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

type MockAvailabilityGate struct{ mock.Mock }

func (m *MockAvailabilityGate) CheckAvailability(
	ctx context.Context,
	requests []ports.AvailabilityRequest,
) (bool, error) {
	args := m.Called(ctx, requests)
	return args.Bool(0), args.Error(1)
}

type MockPaymentProcessor struct{ mock.Mock }

func (m *MockPaymentProcessor) ProcessPayment(
	ctx context.Context,
	orderID kernel.UUID,
	amount kernel.Money,
	method string,
) (ports.PaymentResult, error) {
	args := m.Called(ctx, orderID, amount, method)
	return args.Get(0).(ports.PaymentResult), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, topic string, event order.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testItem(t *testing.T, itemID string, quantity int, unitPrice float64) *order.OrderItem {
	t.Helper()
	price, err := kernel.NewMoneyFromFloat(unitPrice)
	require.NoError(t, err)
	item, err := order.NewOrderItem(itemID, quantity, price, nil)
	require.NoError(t, err)
	return item
}

func testItems(t *testing.T) []*order.OrderItem {
	t.Helper()
	return []*order.OrderItem{
		testItem(t, "dish-1", 2, 7.50),
		testItem(t, "dish-2", 1, 5.00),
	}
}

func testOrder(t *testing.T, userID *string) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(kernel.NewUUID(), "shop-42", userID, testItems(t))
	require.NoError(t, err)
	return aggregate
}

func privilegedActor(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor("staff-1", []kernel.Role{kernel.RoleStaff})
	require.NoError(t, err)
	return actor
}

func strPtr(s string) *string { return &s }
