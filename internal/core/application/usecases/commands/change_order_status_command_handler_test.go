package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_ConfirmPublishesEvent(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t, strPtr("user-7"))
	cmd, _ := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Confirmed, privilegedActor(t))

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, order.TopicOrderConfirmed, mock.AnythingOfType("order.Event")).
		Return(nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, publisher, noopLogger())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, updated.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_ReadyPublishesEvent(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t, nil)
	require.NoError(t, aggregate.Confirm())
	cmd, _ := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Ready, privilegedActor(t))

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, order.TopicOrderReady, mock.AnythingOfType("order.Event")).
		Return(nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, publisher, noopLogger())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Ready, updated.Status())
	publisher.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t, nil)
	cmd, _ := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Draft, privilegedActor(t))

	publisher := new(MockEventPublisher)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, publisher, noopLogger())
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Draft, updated.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ForbiddenForStranger(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t, strPtr("user-7"))
	stranger, err := kernel.NewActor("user-9", []kernel.Role{kernel.RoleCustomer})
	require.NoError(t, err)
	cmd, _ := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Confirmed, stranger)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockEventPublisher), noopLogger())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrOperationForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_StrangerSameStatusForbidden(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t, strPtr("user-7"))
	stranger, err := kernel.NewActor("user-9", []kernel.Role{kernel.RoleCustomer})
	require.NoError(t, err)
	cmd, _ := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Draft, stranger)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockEventPublisher), noopLogger())
	updated, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrOperationForbidden)
	assert.Nil(t, updated)
}

func TestChangeOrderStatusCommandHandler_Handle_BackwardTransitionRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrder(t, nil)
	require.NoError(t, aggregate.Confirm())
	cmd, _ := commands.NewChangeOrderStatusCommand(aggregate.ID(), order.Draft, privilegedActor(t))

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockEventPublisher), noopLogger())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestChangeOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, _ := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Ready, privilegedActor(t))

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, cmd.OrderID()).
			Return(nil, errs.NewObjectNotFoundError("orderId", cmd.OrderID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockEventPublisher), noopLogger())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
