package usecase

import (
	"context"

	"github.com/thara/minibank/internal/domain"
)

// AdminUseCase handles the administrative view over the ledger. Callers
// are trusted to have passed admin login before invoking the read
// operations; the usecase itself only guards the credential mutations.
type AdminUseCase struct {
	repo   LedgerRepository
	hasher PasswordHasher
}

// NewAdminUseCase creates a new AdminUseCase.
func NewAdminUseCase(repo LedgerRepository, hasher PasswordHasher) *AdminUseCase {
	return &AdminUseCase{repo: repo, hasher: hasher}
}

// Login verifies the admin credential.
func (uc *AdminUseCase) Login(ctx context.Context, username, password string) error {
	admin, err := uc.repo.AdminCredential(ctx)
	if err != nil {
		return err
	}

	if username != admin.Username {
		return domain.ErrAdminAuthenticationFailed
	}
	if err := uc.hasher.Verify(admin.PasswordHash, password); err != nil {
		return domain.ErrAdminAuthenticationFailed
	}

	return nil
}

// ChangePassword replaces the admin password after verifying the old one.
func (uc *AdminUseCase) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	admin, err := uc.repo.AdminCredential(ctx)
	if err != nil {
		return err
	}
	if err := uc.hasher.Verify(admin.PasswordHash, oldPassword); err != nil {
		return domain.ErrAdminAuthenticationFailed
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	tx, err := uc.repo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.repo.UpdateAdminPassword(ctx, tx, hash); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListAccounts returns every account in creation order.
func (uc *AdminUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.repo.ListAccounts(ctx)
}

// AccountHistory returns any account's transaction history without the
// owner's password. Fails with domain.ErrAccountNotFound when absent.
func (uc *AdminUseCase) AccountHistory(ctx context.Context, number string) (*domain.Account, error) {
	return uc.repo.GetAccount(ctx, number)
}
