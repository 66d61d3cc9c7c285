//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/artisy/storefront/internal/identity"
	"github.com/artisy/storefront/internal/order/delivery/http"
	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/internal/order/repository"
	"github.com/artisy/storefront/internal/order/usecase/command"
	"github.com/artisy/storefront/internal/order/usecase/query"
)

// ProvideOrderRepository provides the order repository
func ProvideOrderRepository(db *gorm.DB) domain.Repository {
	return repository.NewGormOrderRepository(db)
}

func ProvideCreateCheckoutHandler(repo domain.Repository, gateway domain.CheckoutGateway) *command.CreateCheckoutHandler {
	return command.NewCreateCheckoutHandler(repo, gateway)
}

func ProvideListOrdersHandler(repo domain.Repository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(repo)
}

func ProvideGetOrderHandler(repo domain.Repository) *query.GetOrderHandler {
	return query.NewGetOrderHandler(repo)
}

func ProvideGetStatusHandler(repo domain.Repository) *query.GetStatusHandler {
	return query.NewGetStatusHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
)

var HandlerSet = wire.NewSet(
	ProvideCreateCheckoutHandler,
	ProvideListOrdersHandler,
	ProvideGetOrderHandler,
	ProvideGetStatusHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	HandlerSet,
)

// InitializeHTTPHandler initializes the order HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, gateway domain.CheckoutGateway, auth *identity.Authenticator) (*http.OrderHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
