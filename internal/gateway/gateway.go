package gateway

import (
	"context"
	"log"

	"github.com/Harshit1991/gymbooking/config"
)

// Order is the remote payment-gateway record for an amount to be collected.
// Receipt carries the merchant-supplied correlation string ("booking_<id>").
type Order struct {
	ID          string
	Receipt     string
	AmountPaise int64
	Currency    string
}

// Client is the payment gateway contract. Retrying CreateOrder is the
// caller's responsibility; the client only classifies failures.
type Client interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error)
	FetchOrder(ctx context.Context, orderID string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) error
	Configured() bool
}

// NewFromConfig selects the real Razorpay client when credentials are
// present and the no-op dummy otherwise. The choice is made once at startup.
func NewFromConfig(cfg config.RazorpayConfig) Client {
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		log.Printf("WARNING: razorpay credentials not configured, using dummy gateway client - payments will NOT be verified")
		return NewDummyClient()
	}
	return NewRazorpayClient(cfg)
}
