package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/gateway"
	"github.com/Harshit1991/gymbooking/internal/kafka"
	"github.com/Harshit1991/gymbooking/internal/metrics"
	"github.com/Harshit1991/gymbooking/internal/repository"
)

const (
	orderCurrency    = "INR"
	maxOrderAttempts = 3
	receiptPrefix    = "booking_"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*Checkout, error)
	CompletePayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Booking, error)
	AbandonPayment(ctx context.Context, orderID string)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	DeleteStaleUnordered(ctx context.Context, olderThan time.Duration) (int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	gateway            gateway.Client
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	retryBackoff       time.Duration
}

type CreateBookingInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Plan      string `json:"plan"`
	StartDate string `json:"start_date"`
}

// Checkout is everything the payment page needs to start the gateway flow.
type Checkout struct {
	Booking     *domain.Booking
	OrderID     string
	AmountPaise int64
	Currency    string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithRetryBackoff overrides the pause between order-creation attempts.
func WithRetryBackoff(backoff time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.retryBackoff = backoff
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	gw gateway.Client,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		gateway:      gw,
		producer:     producer,
		bookingTopic: bookingTopic,
		retryBackoff: time.Second,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking persists the booking, creates a gateway order for the plan
// price and stores the returned order id. If the order cannot be created the
// booking row is deleted again so no record survives without a chance of
// payment.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*Checkout, error) {
	if input.Name == "" || input.Email == "" || input.Phone == "" || input.Plan == "" || input.StartDate == "" {
		return nil, fmt.Errorf("%w: all booking fields are required", domain.ErrValidation)
	}

	booking := &domain.Booking{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Plan:      input.Plan,
		StartDate: input.StartDate,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	amount := domain.PlanAmount(input.Plan)
	if amount == 0 {
		// Unknown plan: the gateway is never contacted and the row must
		// not survive the request.
		if err := s.bookings.Delete(ctx, booking.ID); err != nil {
			log.Printf("delete booking %d after unknown plan: %v", booking.ID, err)
		}
		return nil, domain.ErrUnknownPlan
	}

	receipt := receiptPrefix + strconv.FormatInt(booking.ID, 10)
	orderID, err := s.createOrderWithRetry(ctx, amount, receipt)
	if err != nil {
		if delErr := s.bookings.Delete(ctx, booking.ID); delErr != nil {
			log.Printf("delete booking %d after failed order creation: %v", booking.ID, delErr)
		}
		return nil, err
	}

	if err := s.bookings.SetOrderID(ctx, booking.ID, orderID); err != nil {
		return nil, err
	}
	booking.GatewayOrderID = orderID

	s.publish(ctx, "booking_created", booking, amount)

	return &Checkout{
		Booking:     booking,
		OrderID:     orderID,
		AmountPaise: amount,
		Currency:    orderCurrency,
	}, nil
}

// createOrderWithRetry makes up to maxOrderAttempts calls, pausing between
// attempts, and retries only connection-level failures.
func (s *BookingService) createOrderWithRetry(ctx context.Context, amount int64, receipt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxOrderAttempts; attempt++ {
		log.Printf("creating gateway order (attempt %d of %d)", attempt, maxOrderAttempts)
		orderID, err := s.gateway.CreateOrder(ctx, amount, orderCurrency, receipt)
		if err == nil {
			return orderID, nil
		}
		if !errors.Is(err, domain.ErrGatewayUnavailable) {
			return "", err
		}

		lastErr = err
		log.Printf("gateway unavailable on attempt %d: %v", attempt, err)
		if attempt < maxOrderAttempts {
			select {
			case <-time.After(s.retryBackoff):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, ctx.Err())
			}
		}
	}
	return "", lastErr
}

// CompletePayment verifies the callback signature and flips the matching
// booking to paid. The flip is idempotent: a duplicate callback is a no-op.
// A verified callback with no matching booking is logged and treated as
// success, the payment happened on the gateway's side regardless.
func (s *BookingService) CompletePayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Booking, error) {
	if err := s.gateway.VerifySignature(orderID, paymentID, signature); err != nil {
		log.Printf("SECURITY: signature verification failed for order %s payment %s", orderID, paymentID)
		return nil, err
	}

	changed, err := s.bookings.MarkPaidByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if changed {
		metrics.PaymentsCompleted.Inc()
		booking, err := s.bookings.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		log.Printf("booking %d marked as paid", booking.ID)
		s.publish(ctx, "booking_paid", booking, domain.PlanAmount(booking.Plan))
		return booking, nil
	}

	booking, err := s.bookings.GetByOrderID(ctx, orderID)
	if err == nil {
		// Already paid: duplicate delivery, safe no-op.
		return booking, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// No row carries this order id; fall back to the booking id encoded in
	// the gateway receipt.
	booking, err = s.completeByReceipt(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		metrics.OrphanCallbacks.Inc()
		log.Printf("no booking found for order %s, payment %s recorded on gateway only", orderID, paymentID)
	}
	return booking, nil
}

func (s *BookingService) completeByReceipt(ctx context.Context, orderID string) (*domain.Booking, error) {
	order, err := s.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		log.Printf("fetch order %s for receipt correlation: %v", orderID, err)
		return nil, nil
	}

	idStr, ok := strings.CutPrefix(order.Receipt, receiptPrefix)
	if !ok {
		return nil, nil
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return nil, nil
	}

	changed, err := s.bookings.MarkPaidByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if changed {
		metrics.PaymentsCompleted.Inc()
		log.Printf("booking %d marked as paid via receipt correlation", booking.ID)
		s.publish(ctx, "booking_paid", booking, domain.PlanAmount(booking.Plan))
	}
	return booking, nil
}

// AbandonPayment records a user-facing payment failure. The booking row is
// kept; the user can retry from the booking page.
func (s *BookingService) AbandonPayment(ctx context.Context, orderID string) {
	if orderID != "" {
		log.Printf("payment failed or cancelled for order %s", orderID)
	}
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}

// DeleteStaleUnordered removes bookings that never received an order id,
// usually left behind by a crash between insert and order creation.
func (s *BookingService) DeleteStaleUnordered(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.bookings.DeleteUnorderedBefore(ctx, time.Now().Add(-olderThan))
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, amount int64) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		Name:        booking.Name,
		Email:       booking.Email,
		Plan:        booking.Plan,
		AmountPaise: amount,
		OrderID:     booking.GatewayOrderID,
		Paid:        booking.Paid,
	}
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for booking %d: %v", eventType, booking.ID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for booking %d: %v", eventType, booking.ID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
