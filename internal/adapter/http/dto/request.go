package dto

import (
	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/usecase"
)

// CreateAccountRequest represents a request to open an account.
type CreateAccountRequest struct {
	Name           string          `json:"name"`
	Password       string          `json:"password"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		Password:       r.Password,
		InitialBalance: r.InitialBalance,
	}
}

// AmountRequest represents a deposit or withdrawal on one account. The
// account number comes from the URL.
type AmountRequest struct {
	Password    string          `json:"password"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input for the given account number.
func (r *AmountRequest) ToUseCaseInput(number string) usecase.DepositInput {
	return usecase.DepositInput{
		Number:      number,
		Password:    r.Password,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// TransferRequest represents a transfer between two accounts.
type TransferRequest struct {
	FromAccount string          `json:"from_account"`
	Password    string          `json:"password"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromNumber:  r.FromAccount,
		Password:    r.Password,
		ToNumber:    r.ToAccount,
		Amount:      r.Amount,
		Description: r.Description,
	}
}

// InterestRequest represents a simple-interest accrual.
type InterestRequest struct {
	Password          string          `json:"password"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	Years             decimal.Decimal `json:"years"`
}

// ToUseCaseInput converts to use case input for the given account number.
func (r *InterestRequest) ToUseCaseInput(number string) usecase.InterestInput {
	return usecase.InterestInput{
		Number:            number,
		Password:          r.Password,
		AnnualRatePercent: r.AnnualRatePercent,
		Years:             r.Years,
	}
}

// AdminLoginRequest represents an admin login.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangeAdminPasswordRequest represents an admin password change.
type ChangeAdminPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
