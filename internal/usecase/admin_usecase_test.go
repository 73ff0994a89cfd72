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

func TestAdminUseCase_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		username    string
		password    string
		expectError error
	}{
		{
			name:     "valid credentials",
			username: "admin",
			password: "admin123",
		},
		{
			name:        "wrong username",
			username:    "root",
			password:    "admin123",
			expectError: domain.ErrAdminAuthenticationFailed,
		},
		{
			name:        "wrong password",
			username:    "admin",
			password:    "nope",
			expectError: domain.ErrAdminAuthenticationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockLedgerRepository()
			uc := usecase.NewAdminUseCase(repo, mocks.NewMockPasswordHasher())

			err := uc.Login(ctx, tt.username, tt.password)

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

func TestAdminUseCase_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("old password verified, new one takes effect", func(t *testing.T) {
		repo := mocks.NewMockLedgerRepository()
		uc := usecase.NewAdminUseCase(repo, mocks.NewMockPasswordHasher())

		if err := uc.ChangePassword(ctx, "admin123", "newsecret"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := uc.Login(ctx, "admin", "admin123"); !errors.Is(err, domain.ErrAdminAuthenticationFailed) {
			t.Errorf("old password should no longer work, got %v", err)
		}
		if err := uc.Login(ctx, "admin", "newsecret"); err != nil {
			t.Errorf("new password should work, got %v", err)
		}
	})

	t.Run("wrong old password", func(t *testing.T) {
		repo := mocks.NewMockLedgerRepository()
		uc := usecase.NewAdminUseCase(repo, mocks.NewMockPasswordHasher())

		err := uc.ChangePassword(ctx, "wrong", "newsecret")
		if !errors.Is(err, domain.ErrAdminAuthenticationFailed) {
			t.Fatalf("expected ErrAdminAuthenticationFailed, got %v", err)
		}
		if err := uc.Login(ctx, "admin", "admin123"); err != nil {
			t.Errorf("original password should still work, got %v", err)
		}
	})

	t.Run("empty new password", func(t *testing.T) {
		repo := mocks.NewMockLedgerRepository()
		uc := usecase.NewAdminUseCase(repo, mocks.NewMockPasswordHasher())

		if err := uc.ChangePassword(ctx, "admin123", ""); !errors.Is(err, domain.ErrInvalidPassword) {
			t.Errorf("expected ErrInvalidPassword, got %v", err)
		}
	})
}

func TestAdminUseCase_ListAccounts(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockLedgerRepository()
	admin := usecase.NewAdminUseCase(repo, mocks.NewMockPasswordHasher())
	accounts := usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), mocks.NewMockIDGenerator(), mocks.NoopMetrics{})

	names := []string{"Alice", "Bob", "Carol"}
	for _, name := range names {
		if _, err := accounts.CreateAccount(ctx, usecase.CreateAccountInput{
			Name:           name,
			Password:       "pw",
			InitialBalance: decimal.NewFromInt(10),
		}); err != nil {
			t.Fatalf("open account: %v", err)
		}
	}

	list, err := admin.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != len(names) {
		t.Fatalf("expected %d accounts, got %d", len(names), len(list))
	}
	// Creation order is preserved.
	for i, acc := range list {
		if acc.Name != names[i] {
			t.Errorf("position %d: expected %s, got %s", i, names[i], acc.Name)
		}
	}
}

func TestAdminUseCase_AccountHistory(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockLedgerRepository()
	admin := usecase.NewAdminUseCase(repo, mocks.NewMockPasswordHasher())
	accounts := usecase.NewAccountUseCase(repo, mocks.NewMockPasswordHasher(), mocks.NewMockIDGenerator(), mocks.NoopMetrics{})

	number, err := accounts.CreateAccount(ctx, usecase.CreateAccountInput{
		Name:           "Alice",
		Password:       "pw",
		InitialBalance: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}

	acc, err := admin.AccountHistory(ctx, number)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(acc.Transactions) != 1 {
		t.Errorf("expected 1 transaction, got %d", len(acc.Transactions))
	}

	if _, err := admin.AccountHistory(ctx, "9999"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
