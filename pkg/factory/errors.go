package factory

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid factory configuration")

	// ErrFulfillmentFailed is returned when the factory rejects an order
	ErrFulfillmentFailed = errors.New("fulfillment failed")

	// ErrNetworkError is returned when the factory cannot be reached
	ErrNetworkError = errors.New("factory network error")
)
