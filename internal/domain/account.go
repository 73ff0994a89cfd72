package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a password-protected account holding a balance and its
// append-only transaction history. Accounts are keyed by a numeric
// account number assigned sequentially from 1001.
type Account struct {
	Number       string
	Name         string
	PasswordHash string
	Balance      decimal.Decimal
	Transactions []Transaction
}

// ValidateWithdrawal checks if the account balance covers amount.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// Clone returns a deep copy, so callers can hand out account state
// without aliasing the ledger's transaction slice.
func (a *Account) Clone() *Account {
	c := *a
	c.Transactions = make([]Transaction, len(a.Transactions))
	copy(c.Transactions, a.Transactions)
	return &c
}

// AdminCredential is the single administrative login for the ledger.
type AdminCredential struct {
	Username     string
	PasswordHash string
}
