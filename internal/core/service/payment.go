package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/port"
)

var _ port.OrderPlacer = (*PaymentService)(nil)
var _ port.PaymentVerifier = (*PaymentService)(nil)

const defaultCurrency = "INR"

// PaymentService fronts the external order-creation provider. A
// provider failure is absorbed: the caller gets a synthetic mock
// order with success status instead of an error.
type PaymentService struct {
	orders port.OrderCreator
}

func NewPaymentService(orders port.OrderCreator) PaymentService {
	return PaymentService{orders}
}

// PlaceOrder converts amount to minor currency units and asks the
// provider for an order.
func (s PaymentService) PlaceOrder(
	ctx context.Context, amount int, currency string,
) (domain.Order, error) {
	const op = "PaymentService.PlaceOrder"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if currency == "" {
		currency = defaultCurrency
	}
	minorUnits := amount * 100

	order, err := s.orders.CreateOrder(ctx, minorUnits, currency)
	if err != nil {
		log.Warn("order creation failed, substituting mock order", "err", err)
		return domain.Order{
			OrderID:  fmt.Sprintf("order_mock_%d", time.Now().UnixMilli()),
			Amount:   minorUnits,
			Currency: currency,
			Mock:     true,
		}, nil
	}
	return order, nil
}

// VerifyPayment reports success without checking the signature.
// TODO: verify the provider HMAC signature once the key handling for
// the payments boundary is in place.
func (s PaymentService) VerifyPayment(
	ctx context.Context, orderID, paymentID, signature string,
) (bool, error) {
	const op = "PaymentService.VerifyPayment"

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
