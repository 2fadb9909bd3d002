package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
)

const pqUniqueViolation = "23505"

// isUniqueViolation recognizes a storage-level uniqueness conflict so that
// racing duplicate inserts still surface as 409 even when a pre-check passed.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO clinic_users (
			tenant_id, id, first_name, middle_name, last_name, dob, address, email, password_hash, role, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	account.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.TenantID,
		account.ID,
		account.FirstName,
		account.MiddleName,
		account.LastName,
		account.DOB,
		account.Address,
		account.Email,
		account.PasswordHash,
		account.Role,
		account.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Email already exists")
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, tenantID string, id uuid.UUID) (*model.Account, error) {
	query := `SELECT * FROM clinic_users WHERE tenant_id = $1 AND id = $2`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, tenantID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("account")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, tenantID, email string) (*model.Account, error) {
	query := `SELECT * FROM clinic_users WHERE tenant_id = $1 AND LOWER(email) = LOWER($2)`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, tenantID, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("account")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context, tenantID string) ([]*model.Account, error) {
	query := `SELECT * FROM clinic_users WHERE tenant_id = $1 ORDER BY created_at DESC`
	accounts := []*model.Account{}
	if err := r.db.SelectContext(ctx, &accounts, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE clinic_users
		SET first_name = $1, middle_name = $2, last_name = $3, dob = $4,
			address = $5, email = $6, role = $7, password_hash = $8, profile_image_url = $9
		WHERE tenant_id = $10 AND id = $11
	`
	res, err := r.db.ExecContext(ctx, query,
		account.FirstName,
		account.MiddleName,
		account.LastName,
		account.DOB,
		account.Address,
		account.Email,
		account.Role,
		account.PasswordHash,
		account.ProfileImageURL,
		account.TenantID,
		account.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("Email already exists")
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("account")
	}
	return nil
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, tenantID string, id uuid.UUID, hash string) error {
	query := `UPDATE clinic_users SET password_hash = $1 WHERE tenant_id = $2 AND id = $3`
	res, err := r.db.ExecContext(ctx, query, hash, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("account")
	}
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	query := `DELETE FROM clinic_users WHERE tenant_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.NotFound("account")
	}
	return nil
}

func (r *accountRepository) EmailInUse(ctx context.Context, tenantID, email string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM clinic_users
			WHERE tenant_id = $1 AND LOWER(email) = LOWER($2) AND id <> $3
		)
	`
	var inUse bool
	if err := r.db.GetContext(ctx, &inUse, query, tenantID, email, excludeID); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return inUse, nil
}
