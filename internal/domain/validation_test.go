package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateHolderName(t *testing.T) {
	tests := []struct {
		name        string
		holderName  string
		expectError error
	}{
		{
			name:       "valid name",
			holderName: "Alice Smith",
		},
		{
			name:        "empty name",
			holderName:  "",
			expectError: ErrInvalidHolderName,
		},
		{
			name:        "whitespace only",
			holderName:  "   ",
			expectError: ErrInvalidHolderName,
		},
		{
			name:        "name too long",
			holderName:  strings.Repeat("a", MaxHolderNameLength+1),
			expectError: ErrInvalidHolderName,
		},
		{
			name:       "name at max length",
			holderName: strings.Repeat("a", MaxHolderNameLength),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHolderName(tt.holderName)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateInitialBalance(t *testing.T) {
	if err := ValidateInitialBalance(decimal.Zero); err != nil {
		t.Errorf("zero opening balance should be allowed, got %v", err)
	}
	if err := ValidateInitialBalance(decimal.NewFromInt(100)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateInitialBalance(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidInitialBalance) {
		t.Errorf("expected ErrInvalidInitialBalance, got %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(""); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
	if err := ValidatePassword("secret"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectError error
	}{
		{
			name:   "positive amount",
			amount: decimal.NewFromFloat(0.01),
		},
		{
			name:        "zero amount",
			amount:      decimal.Zero,
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			amount:      decimal.NewFromInt(-5),
			expectError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected error %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateInterestTerms(t *testing.T) {
	if err := ValidateInterestTerms(decimal.NewFromInt(5), decimal.NewFromInt(2)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateInterestTerms(decimal.Zero, decimal.Zero); err != nil {
		t.Errorf("zero terms should be allowed, got %v", err)
	}
	if err := ValidateInterestTerms(decimal.NewFromInt(-1), decimal.NewFromInt(2)); !errors.Is(err, ErrInvalidInterestTerms) {
		t.Errorf("expected ErrInvalidInterestTerms, got %v", err)
	}
	if err := ValidateInterestTerms(decimal.NewFromInt(5), decimal.NewFromInt(-2)); !errors.Is(err, ErrInvalidInterestTerms) {
		t.Errorf("expected ErrInvalidInterestTerms, got %v", err)
	}
}
