package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"accounthub/internal/entity"
	"accounthub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errNotImplemented = errors.New("not implemented")

type stubAccountRepository struct {
	createFn        func(account *entity.Account) error
	findByIDFn      func(id uuid.UUID) (*entity.Account, error)
	findByEmailFn   func(email string) (*entity.Account, error)
	findByOauthIDFn func(oauthID string) (*entity.Account, error)
	findByRoleFn    func(roleID uuid.UUID) ([]entity.Account, error)
	updateFn        func(account *entity.Account) error
	replaceRolesFn  func(account *entity.Account, roles []entity.Role) error
}

func (s *stubAccountRepository) Create(_ context.Context, account *entity.Account) error {
	if s.createFn == nil {
		return errNotImplemented
	}
	return s.createFn(account)
}

func (s *stubAccountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	if s.findByIDFn == nil {
		return nil, errNotImplemented
	}
	return s.findByIDFn(id)
}

func (s *stubAccountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	if s.findByEmailFn == nil {
		return nil, errNotImplemented
	}
	return s.findByEmailFn(email)
}

func (s *stubAccountRepository) FindByOauthID(_ context.Context, oauthID string) (*entity.Account, error) {
	if s.findByOauthIDFn == nil {
		return nil, errNotImplemented
	}
	return s.findByOauthIDFn(oauthID)
}

func (s *stubAccountRepository) FindByRole(_ context.Context, roleID uuid.UUID) ([]entity.Account, error) {
	if s.findByRoleFn == nil {
		return nil, errNotImplemented
	}
	return s.findByRoleFn(roleID)
}

func (s *stubAccountRepository) Update(_ context.Context, account *entity.Account) error {
	if s.updateFn == nil {
		return errNotImplemented
	}
	return s.updateFn(account)
}

func (s *stubAccountRepository) ReplaceRoles(_ context.Context, account *entity.Account, roles []entity.Role) error {
	if s.replaceRolesFn == nil {
		return errNotImplemented
	}
	return s.replaceRolesFn(account, roles)
}

func (s *stubAccountRepository) WithTx(_ *gorm.DB) repository.AccountRepository { return s }

type stubTokenRepository struct {
	createFn        func(token *entity.EphemeralToken) error
	findByAccountFn func(accountID uuid.UUID) (*entity.EphemeralToken, error)
	findByTokenFn   func(token string) (*entity.EphemeralToken, error)
	deleteFn        func(token *entity.EphemeralToken) error
}

func (s *stubTokenRepository) Create(_ context.Context, token *entity.EphemeralToken) error {
	if s.createFn == nil {
		return errNotImplemented
	}
	return s.createFn(token)
}

func (s *stubTokenRepository) FindByAccount(_ context.Context, accountID uuid.UUID) (*entity.EphemeralToken, error) {
	if s.findByAccountFn == nil {
		return nil, errNotImplemented
	}
	return s.findByAccountFn(accountID)
}

func (s *stubTokenRepository) FindByToken(_ context.Context, token string) (*entity.EphemeralToken, error) {
	if s.findByTokenFn == nil {
		return nil, errNotImplemented
	}
	return s.findByTokenFn(token)
}

func (s *stubTokenRepository) Delete(_ context.Context, token *entity.EphemeralToken) error {
	if s.deleteFn == nil {
		return errNotImplemented
	}
	return s.deleteFn(token)
}

func (s *stubTokenRepository) WithTx(_ *gorm.DB) repository.TokenRepository { return s }

type stubRoleRepository struct {
	createFn             func(role *entity.Role) error
	findByIDFn           func(id uuid.UUID) (*entity.Role, error)
	findByNameFn         func(name string) (*entity.Role, error)
	listFn               func() ([]entity.Role, error)
	updateFn             func(role *entity.Role) error
	replacePermissionsFn func(role *entity.Role, permissions []entity.Permission) error
	deleteFn             func(role *entity.Role) error
}

func (s *stubRoleRepository) Create(_ context.Context, role *entity.Role) error {
	if s.createFn == nil {
		return errNotImplemented
	}
	return s.createFn(role)
}

func (s *stubRoleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	if s.findByIDFn == nil {
		return nil, errNotImplemented
	}
	return s.findByIDFn(id)
}

func (s *stubRoleRepository) FindByName(_ context.Context, name string) (*entity.Role, error) {
	if s.findByNameFn == nil {
		return nil, errNotImplemented
	}
	return s.findByNameFn(name)
}

func (s *stubRoleRepository) List(_ context.Context) ([]entity.Role, error) {
	if s.listFn == nil {
		return nil, errNotImplemented
	}
	return s.listFn()
}

func (s *stubRoleRepository) Update(_ context.Context, role *entity.Role) error {
	if s.updateFn == nil {
		return errNotImplemented
	}
	return s.updateFn(role)
}

func (s *stubRoleRepository) ReplacePermissions(_ context.Context, role *entity.Role, permissions []entity.Permission) error {
	if s.replacePermissionsFn == nil {
		return errNotImplemented
	}
	return s.replacePermissionsFn(role, permissions)
}

func (s *stubRoleRepository) Delete(_ context.Context, role *entity.Role) error {
	if s.deleteFn == nil {
		return errNotImplemented
	}
	return s.deleteFn(role)
}

func (s *stubRoleRepository) WithTx(_ *gorm.DB) repository.RoleRepository { return s }

type stubPermissionRepository struct {
	findByIDFn  func(id uuid.UUID) (*entity.Permission, error)
	findByIDsFn func(ids []uuid.UUID) ([]entity.Permission, error)
	listFn      func() ([]entity.Permission, error)
}

func (s *stubPermissionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Permission, error) {
	if s.findByIDFn == nil {
		return nil, errNotImplemented
	}
	return s.findByIDFn(id)
}

func (s *stubPermissionRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Permission, error) {
	if s.findByIDsFn == nil {
		return nil, errNotImplemented
	}
	return s.findByIDsFn(ids)
}

func (s *stubPermissionRepository) List(_ context.Context) ([]entity.Permission, error) {
	if s.listFn == nil {
		return nil, errNotImplemented
	}
	return s.listFn()
}

// memTokenRepository is a map-backed token store for scenario tests that need
// real create/find/delete semantics rather than scripted responses.
type memTokenRepository struct {
	tokens map[uuid.UUID]*entity.EphemeralToken
}

func newMemTokenRepository() *memTokenRepository {
	return &memTokenRepository{tokens: map[uuid.UUID]*entity.EphemeralToken{}}
}

func (r *memTokenRepository) Create(_ context.Context, token *entity.EphemeralToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	r.tokens[token.ID] = token
	return nil
}

func (r *memTokenRepository) FindByAccount(_ context.Context, accountID uuid.UUID) (*entity.EphemeralToken, error) {
	for _, token := range r.tokens {
		if token.AccountID == accountID {
			return token, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepository) FindByToken(_ context.Context, value string) (*entity.EphemeralToken, error) {
	for _, token := range r.tokens {
		if token.Token == value {
			return token, nil
		}
	}
	return nil, nil
}

func (r *memTokenRepository) Delete(_ context.Context, token *entity.EphemeralToken) error {
	delete(r.tokens, token.ID)
	return nil
}

func (r *memTokenRepository) WithTx(_ *gorm.DB) repository.TokenRepository { return r }

// stubTxRunner runs the function outside any transaction; stub repositories
// return themselves from WithTx.
type stubTxRunner struct{}

func (stubTxRunner) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Verify(hash string, password string) bool {
	return hash == "hashed:"+password
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// sequenceTokenSource hands out a scripted series of candidates, cycling on
// the last one when the script runs out.
type sequenceTokenSource struct {
	tokens []string
	index  int
}

func (s *sequenceTokenSource) NumericToken(length int) (string, error) {
	if len(s.tokens) == 0 {
		return strings.Repeat("0", length), nil
	}
	token := s.tokens[s.index]
	if s.index < len(s.tokens)-1 {
		s.index++
	}
	return token, nil
}

type recordingEmailSender struct {
	verificationTo []string
	resetTo        []string
	lastToken      string
}

func (s *recordingEmailSender) SendVerificationEmail(_ context.Context, email string, token string) error {
	s.verificationTo = append(s.verificationTo, email)
	s.lastToken = token
	return nil
}

func (s *recordingEmailSender) SendPasswordResetEmail(_ context.Context, email string, token string) error {
	s.resetTo = append(s.resetTo, email)
	s.lastToken = token
	return nil
}

type recordingSMSSender struct {
	to       []string
	messages []string
}

func (s *recordingSMSSender) SendSMS(_ context.Context, phoneNumber string, message string) error {
	s.to = append(s.to, phoneNumber)
	s.messages = append(s.messages, message)
	return nil
}

func testAccount(modify ...func(*entity.Account)) *entity.Account {
	email := "jane.doe@example.com"
	phone := "+14155552671"
	hash := "hashed:secret1"
	gender := entity.GenderFemale
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	account := &entity.Account{
		ID:           uuid.New(),
		FirstName:    "Jane",
		LastName:     "Doe",
		Gender:       &gender,
		Email:        &email,
		PhoneNumber:  &phone,
		PasswordHash: &hash,
		Enabled:      true,
		VerifiedAt:   &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, fn := range modify {
		fn(account)
	}
	return account
}

func roleWithPermissions(name string, permissions ...string) entity.Role {
	role := entity.Role{ID: uuid.New(), Name: name}
	for _, permission := range permissions {
		role.Permissions = append(role.Permissions, entity.Permission{ID: uuid.New(), Name: permission})
	}
	return role
}
