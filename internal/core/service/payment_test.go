package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/service"
)

type MockOrderCreator struct {
	mock.Mock
}

func (m *MockOrderCreator) CreateOrder(
	ctx context.Context, amount int, currency string,
) (domain.Order, error) {
	args := m.Called(ctx, amount, currency)
	return args.Get(0).(domain.Order), args.Error(1)
}

func TestPaymentServicePlaceOrder(t *testing.T) {

	t.Run("ProviderOrder", func(t *testing.T) {
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, 250000, "INR").
			Return(domain.Order{
				OrderID:  "order_abc123",
				Amount:   250000,
				Currency: "INR",
			}, nil)
		s := service.NewPaymentService(orders)

		order, err := s.PlaceOrder(t.Context(), 2500, "INR")

		require.NoError(t, err)
		assert.Equal(t, "order_abc123", order.OrderID)
		assert.Equal(t, 250000, order.Amount)
		assert.False(t, order.Mock)
	})

	t.Run("DefaultsCurrency", func(t *testing.T) {
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, 100000, "INR").
			Return(domain.Order{
				OrderID:  "order_abc123",
				Amount:   100000,
				Currency: "INR",
			}, nil)
		s := service.NewPaymentService(orders)

		order, err := s.PlaceOrder(t.Context(), 1000, "")

		require.NoError(t, err)
		assert.Equal(t, "INR", order.Currency)
	})

	t.Run("ProviderFailureYieldsMockOrder", func(t *testing.T) {
		orders := new(MockOrderCreator)
		orders.On("CreateOrder", mock.Anything, 100000, "INR").
			Return(domain.Order{}, assert.AnError)
		s := service.NewPaymentService(orders)

		order, err := s.PlaceOrder(t.Context(), 1000, "INR")

		require.NoError(t, err)
		assert.True(t, order.Mock)
		assert.True(t, strings.HasPrefix(order.OrderID, "order_mock_"))
		assert.Equal(t, 100000, order.Amount)
		assert.Equal(t, "INR", order.Currency)
	})
}

func TestPaymentServiceVerify(t *testing.T) {
	s := service.NewPaymentService(new(MockOrderCreator))

	verified, err := s.VerifyPayment(t.Context(), "order_1", "pay_1", "sig")

	require.NoError(t, err)
	assert.True(t, verified)
}
