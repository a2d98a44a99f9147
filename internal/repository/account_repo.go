package repository

import (
	"context"
	"errors"

	"accounthub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *entity.Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
	FindByOauthID(ctx context.Context, oauthID string) (*entity.Account, error)
	FindByRole(ctx context.Context, roleID uuid.UUID) ([]entity.Account, error)
	Update(ctx context.Context, account *entity.Account) error
	ReplaceRoles(ctx context.Context, account *entity.Account, roles []entity.Role) error
	WithTx(tx *gorm.DB) AccountRepository
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) WithTx(tx *gorm.DB) AccountRepository {
	if tx == nil {
		return r
	}
	return &accountRepository{db: tx}
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *accountRepository) FindByOauthID(ctx context.Context, oauthID string) (*entity.Account, error) {
	return r.findOne(ctx, "oauth_id = ?", oauthID)
}

// FindByRole answers "which accounts hold role R" for the role-removal guard.
func (r *accountRepository) FindByRole(ctx context.Context, roleID uuid.UUID) ([]entity.Account, error) {
	var accounts []entity.Account
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts_roles ON accounts_roles.account_id = accounts.id").
		Where("accounts_roles.role_id = ?", roleID).
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Omit("Roles").Save(account).Error
}

func (r *accountRepository) ReplaceRoles(ctx context.Context, account *entity.Account, roles []entity.Role) error {
	if err := r.db.WithContext(ctx).Model(account).Association("Roles").Replace(roles); err != nil {
		return err
	}
	account.Roles = roles
	return nil
}

func (r *accountRepository) findOne(ctx context.Context, query string, arg any) (*entity.Account, error) {
	var account entity.Account
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Where(query, arg).
		First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}
