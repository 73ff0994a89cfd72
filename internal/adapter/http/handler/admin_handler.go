package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thara/minibank/internal/adapter/http/dto"
	"github.com/thara/minibank/internal/domain"
	"github.com/thara/minibank/internal/infrastructure/auth"
)

// AdminService defines the behavior needed by AdminHandler.
type AdminService interface {
	Login(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	AccountHistory(ctx context.Context, number string) (*domain.Account, error)
}

// AdminHandler handles the administrative HTTP requests. The list and
// history endpoints trust the session established at login; the route
// group is guarded by the admin auth middleware.
type AdminHandler struct {
	adminUC    AdminService
	jwtManager *auth.JWTManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminUC AdminService, jwtManager *auth.JWTManager) *AdminHandler {
	return &AdminHandler{
		adminUC:    adminUC,
		jwtManager: jwtManager,
	}
}

// Login verifies the admin credential and issues a session token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.adminUC.Login(r.Context(), req.Username, req.Password); err != nil {
		writeError(w, mapDomainError(err), "login failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{Token: token})
}

// ChangePassword replaces the admin password.
func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangeAdminPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.adminUC.ChangePassword(r.Context(), req.OldPassword, req.NewPassword); err != nil {
		writeError(w, mapDomainError(err), "failed to change admin password", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts returns every account's number, name, and balance.
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.adminUC.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.SummariesFromDomain(accounts),
		Total:    len(accounts),
	})
}

// AccountHistory returns any account's transaction history, bypassing
// the owner's password.
func (h *AdminHandler) AccountHistory(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	account, err := h.adminUC.AccountHistory(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(account))
}
