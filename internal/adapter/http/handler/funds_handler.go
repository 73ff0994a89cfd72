package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/thara/minibank/internal/adapter/http/dto"
	"github.com/thara/minibank/internal/usecase"
)

// FundsService defines the behavior needed by FundsHandler.
type FundsService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (decimal.Decimal, error)
	Withdraw(ctx context.Context, input usecase.DepositInput) (decimal.Decimal, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (decimal.Decimal, error)
	AccrueInterest(ctx context.Context, input usecase.InterestInput) (usecase.InterestResult, error)
}

// FundsHandler handles the balance-mutating HTTP requests.
type FundsHandler struct {
	fundsUC FundsService
}

// NewFundsHandler creates a new FundsHandler.
func NewFundsHandler(fundsUC FundsService) *FundsHandler {
	return &FundsHandler{fundsUC: fundsUC}
}

// Deposit credits an account.
func (h *FundsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.fundsUC.Deposit)
}

// Withdraw debits an account.
func (h *FundsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, h.fundsUC.Withdraw)
}

func (h *FundsHandler) adjust(w http.ResponseWriter, r *http.Request, op func(context.Context, usecase.DepositInput) (decimal.Decimal, error)) {
	number := chi.URLParam(r, "number")

	var req dto.AmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := op(r.Context(), req.ToUseCaseInput(number))
	if err != nil {
		writeError(w, mapDomainError(err), "operation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountNumber: number,
		Balance:       balance,
	})
}

// Transfer moves funds between two accounts.
func (h *FundsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	balance, err := h.fundsUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "transfer failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount,
		Balance:     balance,
	})
}

// AccrueInterest credits simple interest to an account.
func (h *FundsHandler) AccrueInterest(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	var req dto.InterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.fundsUC.AccrueInterest(r.Context(), req.ToUseCaseInput(number))
	if err != nil {
		writeError(w, mapDomainError(err), "interest accrual failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.InterestResponse{
		AccountNumber: number,
		Interest:      result.Interest,
		Balance:       result.Balance,
	})
}
