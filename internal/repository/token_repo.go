package repository

import (
	"context"
	"errors"

	"accounthub/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository is the ephemeral token store, parameterized by kind: the
// verification and reset-password stores share this contract but write to
// separate tables.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.EphemeralToken) error
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*entity.EphemeralToken, error)
	FindByToken(ctx context.Context, token string) (*entity.EphemeralToken, error)
	Delete(ctx context.Context, token *entity.EphemeralToken) error
	WithTx(tx *gorm.DB) TokenRepository
}

type tokenRepository struct {
	db    *gorm.DB
	table string
}

func NewVerificationTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db, table: "verification_tokens"}
}

func NewResetPasswordTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db, table: "reset_password_tokens"}
}

func (r *tokenRepository) WithTx(tx *gorm.DB) TokenRepository {
	if tx == nil {
		return r
	}
	return &tokenRepository{db: tx, table: r.table}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.EphemeralToken) error {
	return r.db.WithContext(ctx).Table(r.table).Create(token).Error
}

func (r *tokenRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*entity.EphemeralToken, error) {
	return r.findOne(ctx, "account_id = ?", accountID)
}

func (r *tokenRepository) FindByToken(ctx context.Context, token string) (*entity.EphemeralToken, error) {
	return r.findOne(ctx, "token = ?", token)
}

func (r *tokenRepository) Delete(ctx context.Context, token *entity.EphemeralToken) error {
	return r.db.WithContext(ctx).Table(r.table).
		Where("id = ?", token.ID).
		Delete(&entity.EphemeralToken{}).Error
}

func (r *tokenRepository) findOne(ctx context.Context, query string, arg any) (*entity.EphemeralToken, error) {
	var token entity.EphemeralToken
	err := r.db.WithContext(ctx).Table(r.table).
		Where(query, arg).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}
