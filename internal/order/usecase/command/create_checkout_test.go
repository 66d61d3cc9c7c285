package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisy/storefront/internal/order/domain"
	"github.com/artisy/storefront/pkg/apperr"
)

type memoryOrderRepository struct {
	orders map[string]*domain.Order
}

func newMemoryOrderRepository() *memoryOrderRepository {
	return &memoryOrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *memoryOrderRepository) Create(order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *memoryOrderRepository) FindByID(id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	return order, nil
}

func (r *memoryOrderRepository) FindBySessionID(sessionID string) (*domain.Order, error) {
	for _, order := range r.orders {
		if order.StripeSessionID == sessionID {
			return order, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "order not found")
}

func (r *memoryOrderRepository) FindByUser(userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *memoryOrderRepository) UpdateSessionID(id, sessionID string) error {
	order, ok := r.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	order.StripeSessionID = sessionID
	return nil
}

func (r *memoryOrderRepository) UpdateStatus(id, status string) error {
	order, ok := r.orders[id]
	if !ok {
		return apperr.New(apperr.NotFound, "order not found")
	}
	order.Status = status
	return nil
}

type stubGateway struct {
	fail    bool
	lastReq domain.CheckoutSessionRequest
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, req domain.CheckoutSessionRequest) (*domain.CheckoutSession, error) {
	g.lastReq = req
	if g.fail {
		return nil, errors.New("provider unavailable")
	}
	return &domain.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.test/cs_test_123"}, nil
}

func testItems() domain.Items {
	return domain.Items{
		{ProductID: 1, Name: "Madhubani Painting", Price: 1000, Quantity: 2},
		{ProductID: 2, Name: "Terracotta Vase", Price: 500, Quantity: 1},
	}
}

func TestCreateCheckout(t *testing.T) {
	repo := newMemoryOrderRepository()
	gateway := &stubGateway{}
	handler := NewCreateCheckoutHandler(repo, gateway)

	result, err := handler.Handle(context.Background(), CreateCheckoutCommand{
		UserID: "user-1",
		Email:  "buyer@example.com",
		Items:  testItems(),
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", result.SessionID)
	assert.Equal(t, "https://checkout.test/cs_test_123", result.CheckoutURL)

	order, err := repo.FindByID(result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, order.Amount)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "cs_test_123", order.StripeSessionID)
	require.NotNil(t, order.UserID)
	assert.Equal(t, "user-1", *order.UserID)

	assert.Equal(t, result.OrderID, gateway.lastReq.OrderID)
}

func TestCreateCheckoutGuest(t *testing.T) {
	repo := newMemoryOrderRepository()
	handler := NewCreateCheckoutHandler(repo, &stubGateway{})

	result, err := handler.Handle(context.Background(), CreateCheckoutCommand{
		Email: "guest@example.com",
		Items: testItems(),
	})
	require.NoError(t, err)

	order, err := repo.FindByID(result.OrderID)
	require.NoError(t, err)
	assert.Nil(t, order.UserID)
}

func TestCreateCheckoutEmptyItems(t *testing.T) {
	handler := NewCreateCheckoutHandler(newMemoryOrderRepository(), &stubGateway{})

	_, err := handler.Handle(context.Background(), CreateCheckoutCommand{
		Email: "buyer@example.com",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
}

func TestCreateCheckoutMissingEmail(t *testing.T) {
	handler := NewCreateCheckoutHandler(newMemoryOrderRepository(), &stubGateway{})

	_, err := handler.Handle(context.Background(), CreateCheckoutCommand{
		Items: testItems(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.InvalidArgument))
}

func TestCreateCheckoutGatewayFailureLeavesPendingOrder(t *testing.T) {
	repo := newMemoryOrderRepository()
	handler := NewCreateCheckoutHandler(repo, &stubGateway{fail: true})

	_, err := handler.Handle(context.Background(), CreateCheckoutCommand{
		Email: "buyer@example.com",
		Items: testItems(),
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Internal))

	// The pending order survives for later inspection
	require.Len(t, repo.orders, 1)
	for _, order := range repo.orders {
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Empty(t, order.StripeSessionID)
	}
}
