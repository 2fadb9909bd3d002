package auth

import (
	"context"
	"strings"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
	"github.com/ateriyan143-bot/school-clinic/pkg/security"
	"github.com/ateriyan143-bot/school-clinic/pkg/token"
)

type Service struct {
	accountRepo repository.AccountRepository
	hasher      security.PasswordHasher
	codec       token.Codec
	tenantID    string
}

// NewService creates the login service. Login resolves accounts against the
// configured default tenant; authenticated requests carry the tenant in the
// token afterwards.
func NewService(accountRepo repository.AccountRepository, hasher security.PasswordHasher, codec token.Codec, tenantID string) *Service {
	return &Service{
		accountRepo: accountRepo,
		hasher:      hasher,
		codec:       codec,
		tenantID:    tenantID,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	account, err := s.accountRepo.GetByEmail(ctx, s.tenantID, normalized)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	signed, err := s.codec.Issue(s.tenantID, account.ID.String(), account.Role, account.Email)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	account.TenantID = s.tenantID
	return &model.LoginResponse{
		Token: signed,
		User:  model.NewAuthUser(account),
	}, nil
}
