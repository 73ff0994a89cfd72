package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
	"github.com/thara/minibank/internal/usecase"
	"github.com/thara/minibank/internal/usecase/mocks"
)

func newAccountUseCase(repo *mocks.MockLedgerRepository) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), mocks.NewMockIDGenerator(), mocks.NoopMetrics{})
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns sequential account numbers", func(t *testing.T) {
		repo := mocks.NewMockLedgerRepository()
		uc := newAccountUseCase(repo)

		first, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:           "Alice",
			Password:       "pw1",
			InitialBalance: decimal.NewFromInt(500),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != "1001" {
			t.Errorf("expected account number 1001, got %s", first)
		}

		second, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:           "Bob",
			Password:       "pw2",
			InitialBalance: decimal.Zero,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if second != "1002" {
			t.Errorf("expected account number 1002, got %s", second)
		}
	})

	t.Run("records an initial deposit with no timestamp", func(t *testing.T) {
		repo := mocks.NewMockLedgerRepository()
		uc := newAccountUseCase(repo)

		number, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:           "Alice",
			Password:       "pw",
			InitialBalance: decimal.NewFromInt(250),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		acc, err := repo.GetAccount(ctx, number)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(acc.Transactions) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(acc.Transactions))
		}
		txn := acc.Transactions[0]
		if txn.Kind != domain.KindInitialDeposit {
			t.Errorf("expected kind %s, got %s", domain.KindInitialDeposit, txn.Kind)
		}
		if !txn.Amount.Equal(decimal.NewFromInt(250)) {
			t.Errorf("expected amount 250, got %s", txn.Amount)
		}
		if !txn.Timestamp.IsZero() {
			t.Errorf("initial deposit should carry no timestamp, got %v", txn.Timestamp)
		}
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name        string
			input       usecase.CreateAccountInput
			expectError error
		}{
			{
				name: "empty name",
				input: usecase.CreateAccountInput{
					Name:     "",
					Password: "pw",
				},
				expectError: domain.ErrInvalidHolderName,
			},
			{
				name: "empty password",
				input: usecase.CreateAccountInput{
					Name:     "Alice",
					Password: "",
				},
				expectError: domain.ErrInvalidPassword,
			},
			{
				name: "negative initial balance",
				input: usecase.CreateAccountInput{
					Name:           "Alice",
					Password:       "pw",
					InitialBalance: decimal.NewFromInt(-1),
				},
				expectError: domain.ErrInvalidInitialBalance,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := mocks.NewMockLedgerRepository()
				uc := newAccountUseCase(repo)

				_, err := uc.CreateAccount(ctx, tt.input)
				if !errors.Is(err, tt.expectError) {
					t.Errorf("expected error %v, got %v", tt.expectError, err)
				}
			})
		}
	})
}

func TestAccountUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockLedgerRepository()
	uc := newAccountUseCase(repo)

	number, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name:           "Alice",
		Password:       "Secret",
		InitialBalance: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		number   string
		password string
		want     bool
	}{
		{"correct password", number, "Secret", true},
		{"wrong password", number, "wrong", false},
		{"case-sensitive match", number, "secret", false},
		{"unknown account", "9999", "Secret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := uc.Authenticate(ctx, tt.number, tt.password); got != tt.want {
				t.Errorf("Authenticate(%q, %q) = %v, want %v", tt.number, tt.password, got, tt.want)
			}
		})
	}
}

func TestAccountUseCase_CheckBalance(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockLedgerRepository()
	uc := newAccountUseCase(repo)

	number, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name:           "Alice",
		Password:       "pw",
		InitialBalance: decimal.NewFromFloat(123.45),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, err := uc.CheckBalance(ctx, number, "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromFloat(123.45)) {
		t.Errorf("expected balance 123.45, got %s", balance)
	}

	if _, err := uc.CheckBalance(ctx, number, "nope"); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}

	// Unknown accounts produce the same error as a wrong password.
	if _, err := uc.CheckBalance(ctx, "9999", "pw"); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Errorf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAccountUseCase_TransactionHistory(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockLedgerRepository()
	uc := newAccountUseCase(repo)

	number, err := uc.CreateAccount(ctx, usecase.CreateAccountInput{
		Name:           "Alice",
		Password:       "pw",
		InitialBalance: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acc, err := uc.TransactionHistory(ctx, number, "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Number != number {
		t.Errorf("expected account %s, got %s", number, acc.Number)
	}
	if len(acc.Transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(acc.Transactions))
	}
}
