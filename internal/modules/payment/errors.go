package payment

import "errors"

var (
	ErrNotFound       = errors.New("appointment not found")
	ErrForbidden      = errors.New("appointment belongs to another user")
	ErrNotPayable     = errors.New("appointment is not payable")
	ErrNotConfigured  = errors.New("service has no payment price configured")
	ErrInvalidPayload = errors.New("invalid webhook payload")
	ErrGatewayFailure = errors.New("payment gateway request failed")
)
