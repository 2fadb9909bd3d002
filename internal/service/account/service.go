package account

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ateriyan143-bot/school-clinic/internal/model"
	"github.com/ateriyan143-bot/school-clinic/internal/repository"
	"github.com/ateriyan143-bot/school-clinic/pkg/apperr"
	"github.com/ateriyan143-bot/school-clinic/pkg/security"
	"github.com/ateriyan143-bot/school-clinic/pkg/token"
)

const (
	minPasswordLen   = 6
	minAccountAge    = 20
	tempPasswordLen  = 10
	placeholderFirst = "User"
	placeholderLast  = "Account"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	accountRepo repository.AccountRepository
	hasher      security.PasswordHasher
	codec       token.Codec
}

func NewService(accountRepo repository.AccountRepository, hasher security.PasswordHasher, codec token.Codec) *Service {
	return &Service{
		accountRepo: accountRepo,
		hasher:      hasher,
		codec:       codec,
	}
}

// canManage is the admin edit/delete rule: an admin may touch nurse accounts
// and their own account, never another admin.
func canManage(actor model.Identity, target *model.Account) bool {
	return actor.IsAdmin() && (target.Role == model.RoleNurse || target.ID == actor.UserID)
}

// splitDisplayName tokenizes a display name on whitespace: first token is the
// first name, last token the last name, everything between the middle name.
func splitDisplayName(displayName string) (first string, middle *string, last string) {
	normalized := strings.Join(strings.Fields(displayName), " ")
	if normalized == "" {
		return placeholderFirst, nil, placeholderLast
	}

	parts := strings.Split(normalized, " ")
	if len(parts) == 1 {
		return parts[0], nil, placeholderLast
	}

	first = parts[0]
	last = parts[len(parts)-1]
	if mid := strings.Join(parts[1:len(parts)-1], " "); mid != "" {
		middle = &mid
	}
	return first, middle, last
}

// ageInYears computes a calendar-aware age: the year difference minus one
// when the birthday has not occurred yet.
func ageInYears(dob model.Date, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func validateDOB(raw string) (model.Date, error) {
	dob, err := model.ParseDate(raw)
	if err != nil {
		return model.Date{}, apperr.Validation("Invalid date of birth")
	}
	if ageInYears(dob, time.Now()) < minAccountAge {
		return model.Date{}, apperr.Validation("Account holder must be at least 20 years old")
	}
	return dob, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(normalized) {
		return "", apperr.Validation("Invalid email format")
	}
	return normalized, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *Service) Create(ctx context.Context, actor model.Identity, req *model.CreateAccountRequest) (*model.Account, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can create accounts")
	}

	role := strings.TrimSpace(req.Role)
	if role != model.RoleNurse && role != model.RoleAdmin {
		return nil, apperr.Validation("Role must be Nurse or Admin")
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, apperr.Validation("All required fields must be provided")
	}

	if len(req.Password) < minPasswordLen {
		return nil, apperr.Validation("Password must be at least 6 characters long")
	}

	dob, err := validateDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	inUse, err := s.accountRepo.EmailInUse(ctx, actor.TenantID, email, uuid.Nil)
	if err != nil {
		return nil, apperr.Internal("failed to create account", err)
	}
	if inUse {
		return nil, apperr.Conflict("Email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to create account", err)
	}

	account := &model.Account{
		TenantID:     actor.TenantID,
		ID:           uuid.New(),
		FirstName:    strings.TrimSpace(req.FirstName),
		MiddleName:   trimOptional(req.MiddleName),
		LastName:     strings.TrimSpace(req.LastName),
		DOB:          dob,
		Address:      strings.TrimSpace(req.Address),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	// The unique index still backstops a racing duplicate create.
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, apperr.From(err, "failed to create account")
	}
	return account, nil
}

func (s *Service) List(ctx context.Context, actor model.Identity) ([]*model.Account, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can view accounts")
	}

	accounts, err := s.accountRepo.List(ctx, actor.TenantID)
	if err != nil {
		return nil, apperr.Internal("failed to fetch accounts", err)
	}
	return accounts, nil
}

func (s *Service) Update(ctx context.Context, actor model.Identity, id uuid.UUID, req *model.UpdateAccountRequest) (*model.UpdateAccountResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can edit accounts")
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.Address) == "" {
		return nil, apperr.Validation("All required fields must be provided")
	}

	dob, err := validateDOB(req.DOB)
	if err != nil {
		return nil, err
	}

	password := strings.TrimSpace(req.Password)
	if password != "" && len(password) < minPasswordLen {
		return nil, apperr.Validation("Password must be at least 6 characters long")
	}

	target, err := s.accountRepo.Get(ctx, actor.TenantID, id)
	if err != nil {
		return nil, apperr.From(err, "failed to update account")
	}

	if !canManage(actor, target) {
		return nil, apperr.Forbidden("Admins can only edit nurse accounts and their own account")
	}

	inUse, err := s.accountRepo.EmailInUse(ctx, actor.TenantID, email, id)
	if err != nil {
		return nil, apperr.Internal("failed to update account", err)
	}
	if inUse {
		return nil, apperr.Conflict("Email already exists")
	}

	target.FirstName = strings.TrimSpace(req.FirstName)
	target.MiddleName = trimOptional(req.MiddleName)
	target.LastName = strings.TrimSpace(req.LastName)
	target.DOB = dob
	target.Address = strings.TrimSpace(req.Address)
	target.Email = email
	if password != "" {
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return nil, apperr.Internal("failed to update account", err)
		}
		target.PasswordHash = hash
	}

	if err := s.accountRepo.Update(ctx, target); err != nil {
		return nil, apperr.From(err, "failed to update account")
	}

	resp := &model.UpdateAccountResponse{Account: target}

	// Editing yourself invalidates the identity baked into the token.
	if target.ID == actor.UserID {
		signed, err := s.codec.Issue(actor.TenantID, target.ID.String(), target.Role, target.Email)
		if err != nil {
			return nil, apperr.Internal("failed to issue token", err)
		}
		resp.User = model.NewAuthUser(target)
		resp.Token = signed
	}

	return resp, nil
}

func (s *Service) UpdateProfile(ctx context.Context, actor model.Identity, req *model.UpdateProfileRequest) (*model.LoginResponse, error) {
	if strings.TrimSpace(req.DisplayName) == "" || strings.TrimSpace(req.Email) == "" {
		return nil, apperr.Validation("Display name and email are required")
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	imageURL, err := model.NormalizeImageDataURL(req.ProfileImageURL)
	if err != nil {
		return nil, err
	}

	// Role changes are honored for admins only; everyone else keeps theirs.
	nextRole := actor.Role
	if actor.IsAdmin() && (req.Role == model.RoleNurse || req.Role == model.RoleAdmin) {
		nextRole = req.Role
	}

	inUse, err := s.accountRepo.EmailInUse(ctx, actor.TenantID, email, actor.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to update profile", err)
	}
	if inUse {
		return nil, apperr.Conflict("Email already exists")
	}

	account, err := s.accountRepo.Get(ctx, actor.TenantID, actor.UserID)
	if err != nil {
		return nil, apperr.From(err, "failed to update profile")
	}

	first, middle, last := splitDisplayName(req.DisplayName)
	account.FirstName = first
	account.MiddleName = middle
	account.LastName = last
	account.Email = email
	account.Role = nextRole
	account.ProfileImageURL = imageURL

	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, apperr.From(err, "failed to update profile")
	}

	signed, err := s.codec.Issue(actor.TenantID, account.ID.String(), account.Role, account.Email)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &model.LoginResponse{
		Token: signed,
		User:  model.NewAuthUser(account),
	}, nil
}

// RevealPassword resets a nurse account to a fresh temporary password and
// returns it once. The previous password is not recoverable.
func (s *Service) RevealPassword(ctx context.Context, actor model.Identity, id uuid.UUID) (*model.RevealPasswordResponse, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("Only admins can reveal account passwords")
	}

	target, err := s.accountRepo.Get(ctx, actor.TenantID, id)
	if err != nil {
		return nil, apperr.From(err, "failed to reveal account password")
	}

	if target.Role != model.RoleNurse {
		return nil, apperr.Forbidden("Only nurse account passwords can be viewed")
	}

	tempPassword, err := security.GenerateTemporaryPassword(tempPasswordLen)
	if err != nil {
		return nil, apperr.Internal("failed to reveal account password", err)
	}

	hash, err := s.hasher.Hash(tempPassword)
	if err != nil {
		return nil, apperr.Internal("failed to reveal account password", err)
	}

	if err := s.accountRepo.UpdatePasswordHash(ctx, actor.TenantID, id, hash); err != nil {
		return nil, apperr.From(err, "failed to reveal account password")
	}

	return &model.RevealPasswordResponse{
		ID:                target.ID,
		Email:             target.Email,
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *Service) Delete(ctx context.Context, actor model.Identity, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("Only admins can delete accounts")
	}

	target, err := s.accountRepo.Get(ctx, actor.TenantID, id)
	if err != nil {
		return apperr.From(err, "failed to delete account")
	}

	if !canManage(actor, target) {
		return apperr.Forbidden("Admins can only delete nurse accounts and their own account")
	}

	if err := s.accountRepo.Delete(ctx, actor.TenantID, id); err != nil {
		return apperr.From(err, "failed to delete account")
	}
	return nil
}
