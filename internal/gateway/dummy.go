package gateway

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// DummyClient is the development fallback used when gateway credentials are
// absent. It hands out synthetic order ids and skips signature verification,
// logging a warning on every call so it can never silently accept payments
// in production.
type DummyClient struct {
	orders map[string]*Order
}

func NewDummyClient() *DummyClient {
	return &DummyClient{orders: make(map[string]*Order)}
}

func (c *DummyClient) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	log.Printf("WARNING: dummy gateway client in use - payment functionality disabled")
	id := "dummy_order_" + uuid.NewString()
	c.orders[id] = &Order{ID: id, Receipt: receipt, AmountPaise: amountPaise, Currency: currency}
	return id, nil
}

func (c *DummyClient) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	log.Printf("WARNING: dummy gateway client in use - returning synthetic order %s", orderID)
	if order, ok := c.orders[orderID]; ok {
		return order, nil
	}
	return &Order{ID: orderID}, nil
}

func (c *DummyClient) VerifySignature(orderID, paymentID, signature string) error {
	log.Printf("WARNING: signature verification skipped - dummy gateway client in use")
	return nil
}

func (c *DummyClient) Configured() bool {
	return false
}

var _ Client = (*DummyClient)(nil)
