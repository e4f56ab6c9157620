package domain

import "errors"

// Error taxonomy shared by services and handlers. Services wrap these with
// fmt.Errorf("%w: ...") so handlers can map them with errors.Is.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentInitiation = errors.New("payment processing failed")
)
