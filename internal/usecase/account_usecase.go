package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
)

// AccountUseCase handles account creation, authentication, and the
// account-holder read operations.
type AccountUseCase struct {
	repo    LedgerRepository
	hasher  PasswordHasher
	idGen   IDGenerator
	metrics Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(repo LedgerRepository, hasher PasswordHasher, idGen IDGenerator, metrics Metrics) *AccountUseCase {
	return &AccountUseCase{
		repo:    repo,
		hasher:  hasher,
		idGen:   idGen,
		metrics: metrics,
	}
}

// CreateAccountInput represents input for opening an account.
type CreateAccountInput struct {
	Name           string
	Password       string
	InitialBalance decimal.Decimal
}

// CreateAccount opens a new account, records the initial deposit, and
// returns the assigned account number.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (string, error) {
	if err := domain.ValidateHolderName(input.Name); err != nil {
		return "", err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return "", err
	}
	if err := domain.ValidateInitialBalance(input.InitialBalance); err != nil {
		return "", err
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return "", err
	}

	account := &domain.Account{
		Name:         input.Name,
		PasswordHash: hash,
		Balance:      input.InitialBalance,
		Transactions: []domain.Transaction{
			{
				ID:     uc.idGen.Generate(),
				Kind:   domain.KindInitialDeposit,
				Amount: input.InitialBalance,
			},
		},
	}

	tx, err := uc.repo.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	number, err := uc.repo.CreateAccount(ctx, tx, account)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	uc.metrics.AccountCreated()

	return number, nil
}

// Authenticate reports whether the account exists and the password
// matches. The outcome contract is exact-match and case-sensitive; the
// stored credential is a hash, never the password itself.
func (uc *AccountUseCase) Authenticate(ctx context.Context, number, password string) bool {
	_, err := authenticateAccount(ctx, uc.repo, uc.hasher, number, password)
	return err == nil
}

// CheckBalance returns the current balance. Read-only.
func (uc *AccountUseCase) CheckBalance(ctx context.Context, number, password string) (decimal.Decimal, error) {
	account, err := authenticateAccount(ctx, uc.repo, uc.hasher, number, password)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// TransactionHistory returns the account's ordered transaction sequence
// along with its current balance. Read-only.
func (uc *AccountUseCase) TransactionHistory(ctx context.Context, number, password string) (*domain.Account, error) {
	return authenticateAccount(ctx, uc.repo, uc.hasher, number, password)
}

// authenticateAccount looks up the account and verifies its password.
// A missing account and a wrong password produce the same error, so the
// caller cannot probe which account numbers exist.
func authenticateAccount(ctx context.Context, repo LedgerRepository, hasher PasswordHasher, number, password string) (*domain.Account, error) {
	account, err := repo.GetAccount(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := hasher.Verify(account.PasswordHash, password); err != nil {
		return nil, domain.ErrAuthenticationFailed
	}

	return account, nil
}
