// Package mocks provides hand-rolled mock implementations of the
// usecase interfaces for unit tests.
package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
	"github.com/thara/minibank/internal/usecase"
)

// MockLedgerRepository is an in-memory LedgerRepository. Behavior can be
// overridden per method via the *Func fields.
type MockLedgerRepository struct {
	mu         sync.RWMutex
	accounts   map[string]*domain.Account
	order      []string
	nextNumber int64
	admin      domain.AdminCredential

	BeginFunc               func(ctx context.Context) (usecase.Transaction, error)
	CreateAccountFunc       func(ctx context.Context, tx usecase.Transaction, account *domain.Account) (string, error)
	GetAccountFunc          func(ctx context.Context, number string) (*domain.Account, error)
	GetAccountForUpdateFunc func(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error)
	UpdateBalanceFunc       func(ctx context.Context, tx usecase.Transaction, number string, balance decimal.Decimal) error
	AppendTransactionFunc   func(ctx context.Context, tx usecase.Transaction, number string, txn domain.Transaction) error
	ListAccountsFunc        func(ctx context.Context) ([]*domain.Account, error)
	AdminCredentialFunc     func(ctx context.Context) (domain.AdminCredential, error)
	UpdateAdminPasswordFunc func(ctx context.Context, tx usecase.Transaction, passwordHash string) error
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		accounts:   make(map[string]*domain.Account),
		nextNumber: 1001,
		admin:      domain.AdminCredential{Username: "admin", PasswordHash: "admin123"},
	}
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

func (m *MockLedgerRepository) CreateAccount(ctx context.Context, tx usecase.Transaction, account *domain.Account) (string, error) {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	number := fmt.Sprintf("%d", m.nextNumber)
	m.nextNumber++
	account.Number = number
	m.accounts[number] = account.Clone()
	m.order = append(m.order, number)
	return number, nil
}

func (m *MockLedgerRepository) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetAccountFunc != nil {
		return m.GetAccountFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[number]; ok {
		return acc.Clone(), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockLedgerRepository) GetAccountForUpdate(ctx context.Context, tx usecase.Transaction, number string) (*domain.Account, error) {
	if m.GetAccountForUpdateFunc != nil {
		return m.GetAccountForUpdateFunc(ctx, tx, number)
	}
	return m.GetAccount(ctx, number)
}

func (m *MockLedgerRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, number string, balance decimal.Decimal) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, number, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	return nil
}

func (m *MockLedgerRepository) AppendTransaction(ctx context.Context, tx usecase.Transaction, number string, txn domain.Transaction) error {
	if m.AppendTransactionFunc != nil {
		return m.AppendTransactionFunc(ctx, tx, number, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[number]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Transactions = append(acc.Transactions, txn)
	return nil
}

func (m *MockLedgerRepository) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.order))
	for _, number := range m.order {
		accounts = append(accounts, m.accounts[number].Clone())
	}
	return accounts, nil
}

func (m *MockLedgerRepository) AdminCredential(ctx context.Context) (domain.AdminCredential, error) {
	if m.AdminCredentialFunc != nil {
		return m.AdminCredentialFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.admin, nil
}

func (m *MockLedgerRepository) UpdateAdminPassword(ctx context.Context, tx usecase.Transaction, passwordHash string) error {
	if m.UpdateAdminPasswordFunc != nil {
		return m.UpdateAdminPasswordFunc(ctx, tx, passwordHash)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin.PasswordHash = passwordHash
	return nil
}

// SetAdmin replaces the stored admin credential.
func (m *MockLedgerRepository) SetAdmin(admin domain.AdminCredential) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin = admin
}

// MockTransaction is a no-op usecase.Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockPasswordHasher stores passwords verbatim and verifies by exact
// comparison, which keeps unit tests fast and deterministic.
type MockPasswordHasher struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hash, password string) error
}

func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

func (h *MockPasswordHasher) Hash(password string) (string, error) {
	if h.HashFunc != nil {
		return h.HashFunc(password)
	}
	return password, nil
}

func (h *MockPasswordHasher) Verify(hash, password string) error {
	if h.VerifyFunc != nil {
		return h.VerifyFunc(hash, password)
	}
	if hash != password {
		return domain.ErrAuthenticationFailed
	}
	return nil
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu           sync.Mutex
	counter      int
	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (g *MockIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("txn-%d", g.counter)
}

// NoopMetrics discards all counter increments.
type NoopMetrics struct{}

func (NoopMetrics) AccountCreated()     {}
func (NoopMetrics) DepositRecorded()    {}
func (NoopMetrics) WithdrawalRecorded() {}
func (NoopMetrics) TransferRecorded()   {}
func (NoopMetrics) InterestAccrued()    {}
