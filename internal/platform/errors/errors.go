package apperrors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrPluginUnavailable = errors.New("plugin unavailable")
)
