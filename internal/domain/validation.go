package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidHolderName     = errors.New("invalid account holder name")
	ErrInvalidInitialBalance = errors.New("initial balance cannot be negative")
	ErrInvalidPassword       = errors.New("password cannot be empty")
	ErrInvalidInterestTerms  = errors.New("interest rate and years cannot be negative")
)

const MaxHolderNameLength = 255

// ValidateHolderName validates an account holder name.
func ValidateHolderName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHolderName)
	}

	if len(name) > MaxHolderNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidHolderName, MaxHolderNameLength)
	}

	return nil
}

// ValidateInitialBalance validates an opening balance. Zero is allowed;
// only negative opening balances are rejected.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrInvalidInitialBalance
	}
	return nil
}

// ValidatePassword validates an account password. The only requirement
// is that it is non-empty: authentication is exact-match on whatever
// the holder chose at account opening.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateAmount validates a deposit, withdrawal, or transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateInterestTerms validates the annual rate percentage and the
// number of years for a simple-interest accrual.
func ValidateInterestTerms(annualRatePercent, years decimal.Decimal) error {
	if annualRatePercent.IsNegative() || years.IsNegative() {
		return ErrInvalidInterestTerms
	}
	return nil
}
