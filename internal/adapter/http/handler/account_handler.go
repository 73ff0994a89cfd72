package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/adapter/http/dto"
	"github.com/thara/minibank/internal/domain"
	"github.com/thara/minibank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (string, error)
	CheckBalance(ctx context.Context, number, password string) (decimal.Decimal, error)
	TransactionHistory(ctx context.Context, number, password string) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	number, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateAccountResponse{AccountNumber: number})
}

// Balance returns the current balance. The password travels in the
// X-Account-Password header.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	password := r.Header.Get(AccountPasswordHeader)

	balance, err := h.accountUC.CheckBalance(r.Context(), number, password)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to check balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountNumber: number,
		Balance:       balance,
	})
}

// History returns the account's transaction history plus its balance.
func (h *AccountHandler) History(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	password := r.Header.Get(AccountPasswordHeader)

	account, err := h.accountUC.TransactionHistory(r.Context(), number, password)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(account))
}
