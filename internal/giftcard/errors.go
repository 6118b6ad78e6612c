package giftcard

import "errors" // Sentinel errors

// Failure classes surfaced by the lifecycle service. Handlers map these to
// HTTP statuses: validation and balance failures to 400, lookups to 404.
var (
	ErrValidation          = errors.New("invalid gift card input")
	ErrNotFound            = errors.New("gift card not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrCardExpired         = errors.New("gift card expired")
)
