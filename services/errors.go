package services

import "errors"

// Sentinel errors; controllers translate them to HTTP statuses with
// errors.Is so wrapped detail messages survive.
var (
	ErrValidation = errors.New("validation failed")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrConflict   = errors.New("conflict")
)
