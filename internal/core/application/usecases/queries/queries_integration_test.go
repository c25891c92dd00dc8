package queries_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// OrderQueriesIntegrationTestSuite exercises both read handlers against a
// real PostgreSQL database seeded through the order repository.
type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	getHandler queries.GetOrderQueryHandler
	lstHandler queries.GetOrdersQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &orderrepo.SelectedOptionDTO{})
	suite.Require().NoError(err)

	suite.getHandler = queries.NewGetOrderQueryHandler(db)
	suite.lstHandler = queries.NewGetOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_OwnerSeesOwnOrder() {
	ctx := context.Background()
	placed := suite.seedOrder("user-7")

	query, err := queries.NewGetOrderQuery(placed.ID(), suite.customer("user-7"))
	suite.Require().NoError(err)

	resp, err := suite.getHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(placed.ID().Bytes(), resp.ID)
	suite.Equal("shop-42", resp.ShopID)
	suite.Equal("draft", resp.Status)
	suite.Equal("pending", resp.PaymentStatus)
	suite.Require().Len(resp.Items, 2)
	suite.Equal("dish-1", resp.Items[0].ItemID)
	suite.Require().Len(resp.Items[0].SelectedOptions, 1)
	suite.Equal("extra cheese", resp.Items[0].SelectedOptions[0].Name)
	suite.True(placed.Total().Decimal().Equal(resp.Total))
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_StrangerGetsNotFound() {
	ctx := context.Background()
	placed := suite.seedOrder("user-7")

	query, err := queries.NewGetOrderQuery(placed.ID(), suite.customer("user-9"))
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(ctx, query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_AdminSeesAnyOrder() {
	ctx := context.Background()
	placed := suite.seedOrder("user-7")

	query, err := queries.NewGetOrderQuery(placed.ID(), suite.admin())
	suite.Require().NoError(err)

	resp, err := suite.getHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(placed.ID().Bytes(), resp.ID)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_GuestOrderHiddenFromCustomers() {
	ctx := context.Background()
	placed := suite.seedGuestOrder()

	query, err := queries.NewGetOrderQuery(placed.ID(), suite.customer("user-7"))
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(ctx, query)
	suite.Require().Error(err)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder_MissingOrderNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), suite.admin())
	suite.Require().NoError(err)

	_, err = suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_CustomerSeesOnlyOwn() {
	ctx := context.Background()
	mine := suite.seedOrder("user-7")
	suite.seedOrder("user-9")
	suite.seedGuestOrder()

	query, err := queries.NewGetOrdersQuery(suite.customer("user-7"))
	suite.Require().NoError(err)

	responses, err := suite.lstHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Equal(mine.ID().Bytes(), responses[0].ID)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_AdminSeesAll() {
	ctx := context.Background()
	suite.seedOrder("user-7")
	suite.seedOrder("user-9")
	suite.seedGuestOrder()

	query, err := queries.NewGetOrdersQuery(suite.admin())
	suite.Require().NoError(err)

	responses, err := suite.lstHandler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(responses, 3)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrders_EmptyDatabase() {
	query, err := queries.NewGetOrdersQuery(suite.admin())
	suite.Require().NoError(err)

	responses, err := suite.lstHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(responses)
}

func (suite *OrderQueriesIntegrationTestSuite) customer(id string) kernel.Actor {
	actor, err := kernel.NewActor(id, []kernel.Role{kernel.RoleCustomer})
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesIntegrationTestSuite) admin() kernel.Actor {
	actor, err := kernel.NewActor("admin-1", []kernel.Role{kernel.RoleAdmin})
	suite.Require().NoError(err)
	return actor
}

func (suite *OrderQueriesIntegrationTestSuite) seedOrder(userID string) *order.Order {
	return suite.seed(&userID)
}

func (suite *OrderQueriesIntegrationTestSuite) seedGuestOrder() *order.Order {
	return suite.seed(nil)
}

func (suite *OrderQueriesIntegrationTestSuite) seed(userID *string) *order.Order {
	optionPrice, err := kernel.NewMoneyFromFloat(1.50)
	suite.Require().NoError(err)
	option, err := order.NewSelectedOption("extra cheese", optionPrice)
	suite.Require().NoError(err)

	firstPrice, err := kernel.NewMoneyFromFloat(7.50)
	suite.Require().NoError(err)
	first, err := order.NewOrderItem("dish-1", 2, firstPrice, []order.SelectedOption{option})
	suite.Require().NoError(err)

	secondPrice, err := kernel.NewMoneyFromFloat(5.00)
	suite.Require().NoError(err)
	second, err := order.NewOrderItem("dish-2", 1, secondPrice, nil)
	suite.Require().NoError(err)

	placed, err := order.NewOrder(kernel.NewUUID(), "shop-42", userID, []*order.OrderItem{first, second})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), placed))
	return placed
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
