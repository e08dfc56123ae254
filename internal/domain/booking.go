package domain

import "time"

// Booking is created provisionally from the booking form, before any payment.
// GatewayOrderID is empty until an order is successfully created on the
// payment gateway; Paid only ever flips to true after a verified callback
// matching that order id.
type Booking struct {
	ID             int64
	Name           string
	Email          string
	Phone          string
	Plan           string
	StartDate      string
	Paid           bool
	GatewayOrderID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
