package domain

import "errors"

var (
	// ErrUnknownPlan means the submitted plan key resolved to amount 0.
	// The booking never reaches the gateway in this case.
	ErrUnknownPlan = errors.New("unknown plan selected")

	// ErrValidation covers bad or missing form input.
	ErrValidation = errors.New("invalid form input")

	// ErrGatewayUnavailable is a connection-level gateway failure
	// (timeout, DNS, reset). The only retryable gateway error.
	ErrGatewayUnavailable = errors.New("payment gateway temporarily unavailable")

	// ErrGatewayRejected is a semantic rejection by the gateway
	// (bad amount, bad auth). Never retried.
	ErrGatewayRejected = errors.New("payment gateway rejected the request")

	// ErrGatewayUnexpected is any other gateway failure. Never retried.
	ErrGatewayUnexpected = errors.New("unexpected payment gateway error")

	// ErrSignatureInvalid means the payment callback signature failed the
	// HMAC check. Never retried, always logged as a security event.
	ErrSignatureInvalid = errors.New("payment signature verification failed")

	// ErrNotFound is a missing booking, contact or user row.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials is returned for any login mismatch. It is
	// deliberately the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
