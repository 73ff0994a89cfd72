package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
)

// LedgerRepository defines data access for the account ledger. Mutating
// methods run inside a Transaction; the repository persists the whole
// ledger snapshot when the transaction commits.
type LedgerRepository interface {
	Begin(ctx context.Context) (Transaction, error)
	CreateAccount(ctx context.Context, tx Transaction, account *domain.Account) (string, error)
	GetAccount(ctx context.Context, number string) (*domain.Account, error)
	GetAccountForUpdate(ctx context.Context, tx Transaction, number string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, number string, balance decimal.Decimal) error
	AppendTransaction(ctx context.Context, tx Transaction, number string, txn domain.Transaction) error
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	AdminCredential(ctx context.Context) (domain.AdminCredential, error)
	UpdateAdminPassword(ctx context.Context, tx Transaction, passwordHash string) error
}

// Transaction represents one exclusive critical section over the ledger.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// PasswordHasher hashes and verifies account and admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

// IDGenerator generates unique IDs for transaction records.
type IDGenerator interface {
	Generate() string
}

// Metrics records ledger operation counters.
type Metrics interface {
	AccountCreated()
	DepositRecorded()
	WithdrawalRecorded()
	TransferRecorded()
	InterestAccrued()
}
