package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Harshit1991/gymbooking/config"
	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/metrics"
)

const defaultBaseURL = "https://api.razorpay.com"

// RazorpayClient talks to the Razorpay orders REST API with basic auth and
// verifies payment signatures with HMAC-SHA256 over "orderID|paymentID".
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	httpc     *http.Client
}

func NewRazorpayClient(cfg config.RazorpayConfig) *RazorpayClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &RazorpayClient{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   baseURL,
		httpc:     &http.Client{Timeout: 10 * time.Second},
	}
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:         amountPaise,
		Currency:       currency,
		Receipt:        receipt,
		PaymentCapture: 1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal order request: %v", domain.ErrGatewayUnexpected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build order request: %v", domain.ErrGatewayUnexpected, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Connection-level failure: timeout, DNS, reset. Retryable.
		metrics.GatewayRequests.WithLabelValues("create_order", "transient").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		metrics.GatewayRequests.WithLabelValues("create_order", "error").Inc()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("razorpay order create failed: status=%d body=%s", resp.StatusCode, data)
		return "", err
	}

	var order orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		metrics.GatewayRequests.WithLabelValues("create_order", "error").Inc()
		return "", fmt.Errorf("%w: decode order response: %v", domain.ErrGatewayUnexpected, err)
	}
	if order.ID == "" {
		metrics.GatewayRequests.WithLabelValues("create_order", "error").Inc()
		return "", fmt.Errorf("%w: order response missing id", domain.ErrGatewayUnexpected)
	}

	metrics.GatewayRequests.WithLabelValues("create_order", "ok").Inc()
	return order.ID, nil
}

func (c *RazorpayClient) FetchOrder(ctx context.Context, orderID string) (*Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/orders/"+orderID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build fetch request: %v", domain.ErrGatewayUnexpected, err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.GatewayRequests.WithLabelValues("fetch_order", "transient").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		metrics.GatewayRequests.WithLabelValues("fetch_order", "error").Inc()
		return nil, err
	}

	var order orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		metrics.GatewayRequests.WithLabelValues("fetch_order", "error").Inc()
		return nil, fmt.Errorf("%w: decode order response: %v", domain.ErrGatewayUnexpected, err)
	}

	metrics.GatewayRequests.WithLabelValues("fetch_order", "ok").Inc()
	return &Order{
		ID:          order.ID,
		Receipt:     order.Receipt,
		AmountPaise: order.Amount,
		Currency:    order.Currency,
	}, nil
}

// VerifySignature checks that the callback signature equals the hex HMAC-SHA256
// of "orderID|paymentID" keyed with the secret. Comparison is constant-time.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) != 1 {
		metrics.SignatureFailures.Inc()
		return domain.ErrSignatureInvalid
	}
	return nil
}

func (c *RazorpayClient) Configured() bool {
	return true
}

func classifyStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", domain.ErrGatewayRejected, status)
	default:
		// Only connection-level failures are retryable; an HTTP error
		// response from the gateway is not.
		return fmt.Errorf("%w: status %d", domain.ErrGatewayUnexpected, status)
	}
}

var _ Client = (*RazorpayClient)(nil)
