package service

import (
	"context"

	"accounthub/internal/entity"
	"accounthub/internal/repository"
	"accounthub/internal/utils"

	"github.com/google/uuid"
)

// Compared against on the unknown-email login path so the two failure cases
// cost the same.
const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type RegisterInput struct {
	FirstName       string
	LastName        string
	Gender          string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

type OauthLoginInput struct {
	OauthID       string
	OauthProvider string
	FirstName     string
	LastName      string
}

type AccountService struct {
	accounts repository.AccountRepository
	roles    repository.RoleRepository

	passwordHash PasswordHasher
	clock        Clock
}

func NewAccountService(
	accounts repository.AccountRepository,
	roles repository.RoleRepository,
	passwordHash PasswordHasher,
	clock Clock,
) *AccountService {
	return &AccountService{
		accounts:     accounts,
		roles:        roles,
		passwordHash: passwordHash,
		clock:        clock,
	}
}

// Register validates each field in a fixed order, stopping at the first
// failure, then persists a new unverified account. No verification token is
// issued here; that is a separate, explicit step.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*entity.Account, error) {
	if input.FirstName == "" || input.LastName == "" || input.Gender == "" ||
		input.Email == "" || input.PhoneNumber == "" ||
		input.Password == "" || input.ConfirmPassword == "" {
		return nil, ErrInvalidRequest
	}

	if !utils.IsValidName(input.FirstName) {
		return nil, ErrInvalidFirstName
	}
	if !utils.IsValidName(input.LastName) {
		return nil, ErrInvalidLastName
	}
	gender, ok := entity.ParseGender(input.Gender)
	if !ok {
		return nil, ErrInvalidGender
	}
	if !utils.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}
	if !utils.IsValidPhoneNumber(input.PhoneNumber) {
		return nil, ErrInvalidPhoneNumber
	}
	if !utils.IsValidPassword(input.Password) {
		return nil, ErrInvalidPassword
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	email := utils.NormalizeEmail(input.Email)
	existing, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	account := entity.NewPasswordAccount(input.FirstName, input.LastName, gender, email, input.PhoneNumber, hash)
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Login authenticates by email and password. An unknown email and a wrong
// password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email string, password string) (*entity.Account, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidRequest
	}

	account, err := s.accounts.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if account == nil || account.PasswordHash == nil {
		_ = s.passwordHash.Verify(dummyPasswordHash, password)
		return nil, ErrInvalidCredentials
	}
	if !s.passwordHash.Verify(*account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	account.LastLoginAt = &now
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// OauthLogin authenticates a delegated identity, creating the account on
// first sight. Provider-created accounts are verified from the start: the
// provider's identity proof substitutes for email verification.
func (s *AccountService) OauthLogin(ctx context.Context, input OauthLoginInput) (*entity.Account, error) {
	if input.OauthID == "" || input.OauthProvider == "" || input.FirstName == "" || input.LastName == "" {
		return nil, ErrInvalidRequest
	}
	if !utils.IsValidName(input.FirstName) {
		return nil, ErrInvalidFirstName
	}
	if !utils.IsValidName(input.LastName) {
		return nil, ErrInvalidLastName
	}
	provider, ok := entity.ParseOauthProvider(input.OauthProvider)
	if !ok {
		return nil, ErrInvalidProvider
	}

	now := s.clock.Now()
	account, err := s.accounts.FindByOauthID(ctx, input.OauthID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		if err := validateAccount(account); err != nil {
			return nil, err
		}
		account.LastLoginAt = &now
		if err := s.accounts.Update(ctx, account); err != nil {
			return nil, err
		}
		return account, nil
	}

	account = entity.NewOauthAccount(input.FirstName, input.LastName, input.OauthID, provider, now)
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

func (s *AccountService) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return s.accounts.FindByEmail(ctx, utils.NormalizeEmail(email))
}

func (s *AccountService) findByIDOrFail(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// GetProfile returns an account's profile. Callers read their own profile
// unconditionally; reading anyone else's requires READ_USERS.
func (s *AccountService) GetProfile(ctx context.Context, accountID uuid.UUID, current *entity.Account) (*entity.Account, error) {
	if current != nil && accountID == current.ID {
		return s.findByIDOrFail(ctx, accountID)
	}
	if !HasPermission(PermissionReadUsers, current) {
		return nil, ErrPermissionDenied
	}
	return s.findByIDOrFail(ctx, accountID)
}

func (s *AccountService) AssignRole(ctx context.Context, accountID, roleID uuid.UUID, current *entity.Account) (*entity.Account, error) {
	if err := RequirePermission(PermissionAssignRoles, current); err != nil {
		return nil, err
	}

	role, err := s.findRoleOrFail(ctx, roleID)
	if err != nil {
		return nil, err
	}
	account, err := s.findByIDOrFail(ctx, accountID)
	if err != nil {
		return nil, err
	}

	for _, held := range account.Roles {
		if held.ID == role.ID {
			return account, nil
		}
	}
	roles := append(account.Roles, *role)
	if err := s.accounts.ReplaceRoles(ctx, account, roles); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) UnassignRole(ctx context.Context, accountID, roleID uuid.UUID, current *entity.Account) (*entity.Account, error) {
	if err := RequirePermission(PermissionUnassignRoles, current); err != nil {
		return nil, err
	}

	role, err := s.findRoleOrFail(ctx, roleID)
	if err != nil {
		return nil, err
	}
	account, err := s.findByIDOrFail(ctx, accountID)
	if err != nil {
		return nil, err
	}

	remaining := make([]entity.Role, 0, len(account.Roles))
	for _, held := range account.Roles {
		if held.ID != role.ID {
			remaining = append(remaining, held)
		}
	}
	if err := s.accounts.ReplaceRoles(ctx, account, remaining); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *AccountService) findRoleOrFail(ctx context.Context, roleID uuid.UUID) (*entity.Role, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}
	return role, nil
}

// validateAccount decides eligibility to authenticate. The order is fixed:
// disabled status is checked before verification status.
func validateAccount(account *entity.Account) error {
	if !account.Enabled {
		return ErrAccountDisabled
	}
	if !account.Verified() {
		return ErrAccountNotVerified
	}
	return nil
}
