package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
)

// FundsUseCase handles every balance-mutating operation: deposits,
// withdrawals, transfers, and interest accrual. Each operation runs in
// one repository transaction, so the ledger is persisted exactly once
// per successful mutation and never observed half-applied.
type FundsUseCase struct {
	repo    LedgerRepository
	hasher  PasswordHasher
	idGen   IDGenerator
	metrics Metrics
}

// NewFundsUseCase creates a new FundsUseCase.
func NewFundsUseCase(repo LedgerRepository, hasher PasswordHasher, idGen IDGenerator, metrics Metrics) *FundsUseCase {
	return &FundsUseCase{
		repo:    repo,
		hasher:  hasher,
		idGen:   idGen,
		metrics: metrics,
	}
}

// DepositInput represents input for a deposit or withdrawal.
type DepositInput struct {
	Number      string
	Password    string
	Amount      decimal.Decimal
	Description string
}

// Deposit credits the account and returns the new balance.
func (uc *FundsUseCase) Deposit(ctx context.Context, input DepositInput) (decimal.Decimal, error) {
	balance, err := uc.adjustBalance(ctx, input, domain.KindDeposit)
	if err != nil {
		return decimal.Zero, err
	}

	uc.metrics.DepositRecorded()

	return balance, nil
}

// Withdraw debits the account and returns the new balance. Fails with
// domain.ErrInsufficientFunds when the amount exceeds the balance, in
// which case the balance is unchanged.
func (uc *FundsUseCase) Withdraw(ctx context.Context, input DepositInput) (decimal.Decimal, error) {
	balance, err := uc.adjustBalance(ctx, input, domain.KindWithdrawal)
	if err != nil {
		return decimal.Zero, err
	}

	uc.metrics.WithdrawalRecorded()

	return balance, nil
}

func (uc *FundsUseCase) adjustBalance(ctx context.Context, input DepositInput, kind domain.TransactionKind) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return decimal.Zero, err
	}

	if _, err := authenticateAccount(ctx, uc.repo, uc.hasher, input.Number, input.Password); err != nil {
		return decimal.Zero, err
	}

	tx, err := uc.repo.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.repo.GetAccountForUpdate(ctx, tx, input.Number)
	if err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	if kind == domain.KindWithdrawal {
		if err := account.ValidateWithdrawal(input.Amount); err != nil {
			return decimal.Zero, err
		}
		balance = account.ApplyDebit(input.Amount)
	} else {
		balance = account.ApplyCredit(input.Amount)
	}

	txn := domain.Transaction{
		ID:          uc.idGen.Generate(),
		Kind:        kind,
		Amount:      input.Amount,
		Timestamp:   time.Now().UTC(),
		Description: input.Description,
	}

	if err := uc.repo.UpdateBalance(ctx, tx, input.Number, balance); err != nil {
		return decimal.Zero, err
	}
	if err := uc.repo.AppendTransaction(ctx, tx, input.Number, txn); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}

// TransferInput represents input for a transfer between two accounts.
type TransferInput struct {
	FromNumber  string
	Password    string
	ToNumber    string
	Amount      decimal.Decimal
	Description string
}

// Transfer debits the source account and credits the recipient inside a
// single critical section, appending a transfer_sent record to the
// source and a transfer_received record to the recipient with identical
// timestamp and description. Returns the source's new balance.
func (uc *FundsUseCase) Transfer(ctx context.Context, input TransferInput) (decimal.Decimal, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return decimal.Zero, err
	}
	if input.FromNumber == input.ToNumber {
		return decimal.Zero, domain.ErrSameAccount
	}

	if _, err := authenticateAccount(ctx, uc.repo, uc.hasher, input.FromNumber, input.Password); err != nil {
		return decimal.Zero, err
	}

	tx, err := uc.repo.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	from, err := uc.repo.GetAccountForUpdate(ctx, tx, input.FromNumber)
	if err != nil {
		return decimal.Zero, err
	}

	to, err := uc.repo.GetAccountForUpdate(ctx, tx, input.ToNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return decimal.Zero, domain.ErrRecipientNotFound
		}
		return decimal.Zero, err
	}

	if err := from.ValidateWithdrawal(input.Amount); err != nil {
		return decimal.Zero, err
	}

	now := time.Now().UTC()
	fromBalance := from.ApplyDebit(input.Amount)
	toBalance := to.ApplyCredit(input.Amount)

	sent := domain.Transaction{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindTransferSent,
		Amount:      input.Amount,
		Timestamp:   now,
		Description: input.Description,
	}
	received := domain.Transaction{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindTransferReceived,
		Amount:      input.Amount,
		Timestamp:   now,
		Description: input.Description,
	}

	if err := uc.repo.UpdateBalance(ctx, tx, input.FromNumber, fromBalance); err != nil {
		return decimal.Zero, err
	}
	if err := uc.repo.AppendTransaction(ctx, tx, input.FromNumber, sent); err != nil {
		return decimal.Zero, err
	}
	if err := uc.repo.UpdateBalance(ctx, tx, input.ToNumber, toBalance); err != nil {
		return decimal.Zero, err
	}
	if err := uc.repo.AppendTransaction(ctx, tx, input.ToNumber, received); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}

	uc.metrics.TransferRecorded()

	return fromBalance, nil
}

// InterestInput represents input for a simple-interest accrual.
type InterestInput struct {
	Number            string
	Password          string
	AnnualRatePercent decimal.Decimal
	Years             decimal.Decimal
}

// InterestResult is the outcome of an interest accrual.
type InterestResult struct {
	Interest decimal.Decimal
	Balance  decimal.Decimal
}

var interestDivisor = decimal.NewFromInt(100)

// AccrueInterest computes simple, non-compounding interest
// (balance x rate x years / 100), credits it, and records one
// interest_added transaction.
func (uc *FundsUseCase) AccrueInterest(ctx context.Context, input InterestInput) (InterestResult, error) {
	if err := domain.ValidateInterestTerms(input.AnnualRatePercent, input.Years); err != nil {
		return InterestResult{}, err
	}

	if _, err := authenticateAccount(ctx, uc.repo, uc.hasher, input.Number, input.Password); err != nil {
		return InterestResult{}, err
	}

	tx, err := uc.repo.Begin(ctx)
	if err != nil {
		return InterestResult{}, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.repo.GetAccountForUpdate(ctx, tx, input.Number)
	if err != nil {
		return InterestResult{}, err
	}

	interest := account.Balance.Mul(input.AnnualRatePercent).Mul(input.Years).Div(interestDivisor)
	balance := account.ApplyCredit(interest)

	txn := domain.Transaction{
		ID:          uc.idGen.Generate(),
		Kind:        domain.KindInterestAdded,
		Amount:      interest,
		Timestamp:   time.Now().UTC(),
		Description: "Interest",
	}

	if err := uc.repo.UpdateBalance(ctx, tx, input.Number, balance); err != nil {
		return InterestResult{}, err
	}
	if err := uc.repo.AppendTransaction(ctx, tx, input.Number, txn); err != nil {
		return InterestResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return InterestResult{}, err
	}

	uc.metrics.InterestAccrued()

	return InterestResult{Interest: interest, Balance: balance}, nil
}
