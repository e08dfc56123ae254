package api

import (
	"errors"
	"net/http"

	"github.com/Harshit1991/gymbooking/internal/domain"
	"github.com/Harshit1991/gymbooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
	keyID   string
}

type checkoutResponse struct {
	BookingID   int64  `json:"booking_id"`
	OrderID     string `json:"order_id"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// NewBookingHandler serves the booking form flow. keyID is the public
// gateway key rendered into the checkout payload.
func NewBookingHandler(service booking.BookingUseCase, keyID string) *BookingHandler {
	return &BookingHandler{service: service, keyID: keyID}
}

func (h *BookingHandler) Register(router *gin.Engine) {
	router.GET("/book", h.book)
	router.POST("/payment_checkout", h.checkout)
	router.GET("/payment_success", h.paymentSuccess)
	router.POST("/payment_success", h.paymentSuccess)
	router.GET("/payment_failure", h.paymentFailure)
}

func (h *BookingHandler) book(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": domain.PlanPrices, "currency": "INR"})
}

func (h *BookingHandler) checkout(c *gin.Context) {
	input := booking.CreateBookingInput{
		Name:      c.PostForm("name"),
		Email:     c.PostForm("email"),
		Phone:     c.PostForm("phone"),
		Plan:      c.PostForm("plan"),
		StartDate: c.PostForm("start_date"),
	}

	checkout, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan selected. Please try again."})
		case errors.Is(err, domain.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway is temporarily unavailable. Please try again in a moment."})
		case errors.Is(err, domain.ErrGatewayRejected), errors.Is(err, domain.ErrGatewayUnexpected):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not start the payment. Please try again."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your request. Please try again."})
		}
		return
	}

	c.JSON(http.StatusOK, checkoutResponse{
		BookingID:   checkout.Booking.ID,
		OrderID:     checkout.OrderID,
		AmountPaise: checkout.AmountPaise,
		Currency:    checkout.Currency,
		KeyID:       h.keyID,
		Name:        checkout.Booking.Name,
		Email:       checkout.Booking.Email,
		Phone:       checkout.Booking.Phone,
	})
}

// paymentSuccess completes the flow from the gateway callback. The three
// fields can arrive in the query string or the form body.
func (h *BookingHandler) paymentSuccess(c *gin.Context) {
	paymentID := callbackParam(c, "razorpay_payment_id")
	orderID := callbackParam(c, "razorpay_order_id")
	signature := callbackParam(c, "razorpay_signature")

	if paymentID == "" || orderID == "" || signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing payment details"})
		return
	}

	booked, err := h.service.CompletePayment(c.Request.Context(), orderID, paymentID, signature)
	if err != nil {
		if errors.Is(err, domain.ErrSignatureInvalid) {
			// Generic message: never reveal which part of the check failed.
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your payment. Please contact support if the amount was deducted."})
		return
	}

	resp := gin.H{"status": "success", "payment_id": paymentID}
	if booked != nil {
		resp["booking_id"] = booked.ID
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) paymentFailure(c *gin.Context) {
	h.service.AbandonPayment(c.Request.Context(), c.Query("order_id"))
	c.JSON(http.StatusOK, gin.H{"message": "Payment was cancelled or failed. Please try again."})
}

func callbackParam(c *gin.Context, name string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return c.PostForm(name)
}
