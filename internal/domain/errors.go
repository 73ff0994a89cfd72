package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAuthenticationFailed = errors.New("invalid account number or password")

	// Operation errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrRecipientNotFound = errors.New("recipient account does not exist")
	ErrSameAccount       = errors.New("cannot transfer to the same account")

	// Admin errors
	ErrAdminAuthenticationFailed = errors.New("invalid admin credentials")

	// Persistence errors
	ErrPersistence = errors.New("persistence failure")
)
