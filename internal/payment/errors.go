package payment

import "errors"

var (
	ErrDeclined      = errors.New("payment declined")
	ErrRefundFailed  = errors.New("refund failed")
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrInvalidAmount = errors.New("amount must be positive")
)
