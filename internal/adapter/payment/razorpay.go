// Package payment implements the order-creation provider client. The
// provider is treated as an opaque collaborator: the core substitutes
// a mock order whenever it fails.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/vastrakart/assistant/internal/core/domain"
	"github.com/vastrakart/assistant/internal/core/port"
)

var _ port.OrderCreator = (*Razorpay)(nil)

const ordersPath = "/v1/orders"

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

type Razorpay struct {
	cl *resty.Client
}

func NewRazorpay(cfg Config) Razorpay {
	cl := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetTimeout(cfg.Timeout)
	return Razorpay{cl}
}

// CreateOrder registers an order with the provider. amount is in minor
// currency units.
func (r Razorpay) CreateOrder(
	ctx context.Context, amount int, currency string,
) (domain.Order, error) {
	const op = "Razorpay.CreateOrder"

	body := orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  "receipt_" + uuid.NewString(),
	}

	var res orderResponse
	resp, err := r.cl.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&res).
		Post(ordersPath)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		return domain.Order{}, fmt.Errorf(
			"%s: provider responded %s", op, resp.Status(),
		)
	}

	return domain.Order{
		OrderID:  res.ID,
		Amount:   res.Amount,
		Currency: res.Currency,
	}, nil
}

type orderRequest struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}
