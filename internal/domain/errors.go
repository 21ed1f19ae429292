package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
	ErrConflict          = errors.New("conflict with current state")
	ErrInsufficientStock = errors.New("insufficient stock")

	// Lifecycle violations are named conditions, not generic failures,
	// so callers can render the correct user-facing message.
	ErrWindowExpired = errors.New("cancellation window expired")
	ErrShiftLocked   = errors.New("shift is locked")

	// ErrAmountTooLarge: the Indian-grouping words converter only covers
	// amounts up to nine digits (99,99,99,999).
	ErrAmountTooLarge = errors.New("amount exceeds words conversion range")
)
