package cmd

import (
	"log/slog"

	"ordering/internal/adapters/in/amqp"
	"ordering/internal/adapters/out/catalog"
	"ordering/internal/adapters/out/payment"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/rabbit"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	gate       *catalog.Client
	payments   *payment.Processor
	publisher  *rabbit.Publisher
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		gate:       catalog.NewClient(configs.CatalogBaseURL, logger.With("component", "catalog")),
		payments:   payment.NewProcessor(logger.With("component", "payment")),
		publisher:  rabbit.NewPublisher(configs.RabbitMQURL, logger.With("component", "publisher")),
		logger:     logger,
	}
}

func (c *CompositionRoot) Publisher() *rabbit.Publisher {
	return c.publisher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.gate, c.payments, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddOrderItemCommandHandler(f, c.gate)
}

func (c *CompositionRoot) CreateReplaceOrderItemsCommandHandler() commands.ReplaceOrderItemsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReplaceOrderItemsCommandHandler(f, c.gate)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateOrderConsumer(rabbitURL string) *amqp.Consumer {
	return amqp.NewConsumer(
		rabbitURL,
		c.CreateCreateOrderCommandHandler(),
		c.logger.With("component", "consumer"),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
