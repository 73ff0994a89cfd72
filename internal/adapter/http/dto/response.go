package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/domain"
)

// CreateAccountResponse carries the assigned account number.
type CreateAccountResponse struct {
	AccountNumber string `json:"account_number"`
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// TransactionResponse represents one history record. Initial deposits
// carry no timestamp or description.
type TransactionResponse struct {
	ID          string          `json:"id,omitempty"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   *time.Time      `json:"timestamp,omitempty"`
	Description string          `json:"description,omitempty"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(txn domain.Transaction) TransactionResponse {
	r := TransactionResponse{
		ID:          txn.ID,
		Kind:        string(txn.Kind),
		Amount:      txn.Amount,
		Description: txn.Description,
	}
	if !txn.Timestamp.IsZero() {
		ts := txn.Timestamp
		r.Timestamp = &ts
	}
	return r
}

// HistoryResponse represents an account's transaction history plus its
// current balance.
type HistoryResponse struct {
	AccountNumber string                `json:"account_number"`
	Balance       decimal.Decimal       `json:"balance"`
	Transactions  []TransactionResponse `json:"transactions"`
}

// HistoryFromDomain converts a domain account to a history response.
func HistoryFromDomain(a *domain.Account) *HistoryResponse {
	transactions := make([]TransactionResponse, len(a.Transactions))
	for i, txn := range a.Transactions {
		transactions[i] = TransactionFromDomain(txn)
	}
	return &HistoryResponse{
		AccountNumber: a.Number,
		Balance:       a.Balance,
		Transactions:  transactions,
	}
}

// AccountSummaryResponse is the admin view of one account.
type AccountSummaryResponse struct {
	AccountNumber string          `json:"account_number"`
	Name          string          `json:"name"`
	Balance       decimal.Decimal `json:"balance"`
}

// ListAccountsResponse is the admin view over all accounts.
type ListAccountsResponse struct {
	Accounts []AccountSummaryResponse `json:"accounts"`
	Total    int                      `json:"total"`
}

// SummariesFromDomain converts accounts to admin summaries.
func SummariesFromDomain(accounts []*domain.Account) []AccountSummaryResponse {
	result := make([]AccountSummaryResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountSummaryResponse{
			AccountNumber: a.Number,
			Name:          a.Name,
			Balance:       a.Balance,
		}
	}
	return result
}

// TransferResponse is the outcome of a transfer, reporting the source
// account's new balance.
type TransferResponse struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// InterestResponse is the outcome of an interest accrual.
type InterestResponse struct {
	AccountNumber string          `json:"account_number"`
	Interest      decimal.Decimal `json:"interest"`
	Balance       decimal.Decimal `json:"balance"`
}

// LoginResponse carries an admin session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
