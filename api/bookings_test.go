package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*booking.Checkout, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Checkout), args.Error(1)
}

func (m *MockBookingUseCase) CompletePayment(ctx context.Context, orderID, paymentID, signature string) (*domain.Booking, error) {
	args := m.Called(ctx, orderID, paymentID, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) AbandonPayment(ctx context.Context, orderID string) {
	m.Called(ctx, orderID)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) DeleteBooking(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingUseCase) DeleteStaleUnordered(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func newBookingRouter(service booking.BookingUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewBookingHandler(service, "rzp_test_key").Register(router)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestBookingHandler_checkout(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	checkout := &booking.Checkout{
		Booking:     &domain.Booking{ID: 7, Name: "A", Email: "a@x.com", Phone: "1", GatewayOrderID: "order_abc"},
		OrderID:     "order_abc",
		AmountPaise: 100000,
		Currency:    "INR",
	}
	mockService.On("CreateBooking", mock.Anything, booking.CreateBookingInput{
		Name: "A", Email: "a@x.com", Phone: "1", Plan: "gold-monthly", StartDate: "2024-01-01",
	}).Return(checkout, nil).Once()

	w := postForm(router, "/payment_checkout", url.Values{
		"name":       {"A"},
		"email":      {"a@x.com"},
		"phone":      {"1"},
		"plan":       {"gold-monthly"},
		"start_date": {"2024-01-01"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response checkoutResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, int64(7), response.BookingID)
	assert.Equal(t, "order_abc", response.OrderID)
	assert.Equal(t, int64(100000), response.AmountPaise)
	assert.Equal(t, "rzp_test_key", response.KeyID)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_checkout_errors(t *testing.T) {
	testCases := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"unknown plan", domain.ErrUnknownPlan, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"gateway unavailable", domain.ErrGatewayUnavailable, http.StatusBadGateway},
		{"gateway rejected", domain.ErrGatewayRejected, http.StatusBadGateway},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := &MockBookingUseCase{}
			router := newBookingRouter(mockService)
			mockService.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := postForm(router, "/payment_checkout", url.Values{"name": {"A"}})

			assert.Equal(t, tc.expectedCode, w.Code)
		})
	}
}

func TestBookingHandler_paymentSuccess_MissingFields(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/payment_success?razorpay_order_id=order_abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CompletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_paymentSuccess_QueryParams(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	paid := &domain.Booking{ID: 7, Paid: true, GatewayOrderID: "order_abc"}
	mockService.On("CompletePayment", mock.Anything, "order_abc", "pay_1", "sig").Return(paid, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/payment_success?razorpay_payment_id=pay_1&razorpay_order_id=order_abc&razorpay_signature=sig", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "success", response["status"])
	assert.Equal(t, float64(7), response["booking_id"])

	mockService.AssertExpectations(t)
}

func TestBookingHandler_paymentSuccess_FormParams(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	paid := &domain.Booking{ID: 7, Paid: true}
	mockService.On("CompletePayment", mock.Anything, "order_abc", "pay_1", "sig").Return(paid, nil).Once()

	w := postForm(router, "/payment_success", url.Values{
		"razorpay_payment_id": {"pay_1"},
		"razorpay_order_id":   {"order_abc"},
		"razorpay_signature":  {"sig"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_paymentSuccess_InvalidSignature(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	mockService.On("CompletePayment", mock.Anything, "order_abc", "pay_1", "forged").Return(nil, domain.ErrSignatureInvalid).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/payment_success?razorpay_payment_id=pay_1&razorpay_order_id=order_abc&razorpay_signature=forged", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The response never says which part of the verification failed.
	assert.Contains(t, w.Body.String(), "Payment verification failed")
}

func TestBookingHandler_paymentSuccess_NoMatchingBooking(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	mockService.On("CompletePayment", mock.Anything, "order_ghost", "pay_1", "sig").Return(nil, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/payment_success?razorpay_payment_id=pay_1&razorpay_order_id=order_ghost&razorpay_signature=sig", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotContains(t, response, "booking_id")
}

func TestBookingHandler_paymentFailure(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService)

	mockService.On("AbandonPayment", mock.Anything, "order_abc").Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/payment_failure?order_id=order_abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_book(t *testing.T) {
	router := newBookingRouter(&MockBookingUseCase{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/book", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gold-monthly")
}
