package service

import (
	"context"
	"time"

	"accounthub/internal/entity"
	"accounthub/internal/repository"
	"accounthub/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TokenLength = 4

	VerificationTokenTTL  = time.Hour
	ResetPasswordTokenTTL = 30 * time.Minute

	// Bound on the uniqueness loop. A 4-digit keyspace can saturate; when it
	// does the caller gets an infrastructure error instead of a livelock.
	maxTokenAttempts = 100
)

type IssuedToken struct {
	Token     string
	ExpiresOn time.Time
}

type ResetPasswordInput struct {
	Token           string
	Password        string
	ConfirmPassword string
}

// TokenService issues and redeems the two ephemeral token kinds. Both kinds
// follow the same protocol; they differ only in validity window and
// post-redemption effect.
type TokenService struct {
	accounts      repository.AccountRepository
	verifications repository.TokenRepository
	resets        repository.TokenRepository

	passwordHash PasswordHasher
	tokens       TokenSource
	clock        Clock
	tx           repository.TxRunner
}

func NewTokenService(
	accounts repository.AccountRepository,
	verifications repository.TokenRepository,
	resets repository.TokenRepository,
	passwordHash PasswordHasher,
	tokens TokenSource,
	clock Clock,
	tx repository.TxRunner,
) *TokenService {
	return &TokenService{
		accounts:      accounts,
		verifications: verifications,
		resets:        resets,
		passwordHash:  passwordHash,
		tokens:        tokens,
		clock:         clock,
		tx:            tx,
	}
}

// IssueVerificationToken supersedes any active verification token for the
// account and returns a fresh one valid for an hour.
func (s *TokenService) IssueVerificationToken(ctx context.Context, accountID uuid.UUID) (*IssuedToken, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if account.Verified() {
		return nil, ErrAlreadyVerified
	}
	return s.issue(ctx, s.verifications, accountID, VerificationTokenTTL)
}

// IssueResetPasswordToken supersedes any active reset token for the account
// and returns a fresh one valid for thirty minutes.
func (s *TokenService) IssueResetPasswordToken(ctx context.Context, accountID uuid.UUID) (*IssuedToken, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return s.issue(ctx, s.resets, accountID, ResetPasswordTokenTTL)
}

// VerifyAccount redeems a verification token: the token row goes away and the
// owning account becomes verified, atomically. Expired and nonexistent tokens
// fail identically.
func (s *TokenService) VerifyAccount(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidRequest
	}

	now := s.clock.Now()
	verification, err := s.verifications.FindByToken(ctx, token)
	if err != nil {
		return err
	}
	if verification == nil || verification.Expired(now) {
		return ErrInvalidVerificationToken
	}

	return s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		tokens := s.verifications.WithTx(tx)
		accounts := s.accounts.WithTx(tx)

		// Delete first: a stale usable token must not survive a failed
		// account update.
		if err := tokens.Delete(ctx, verification); err != nil {
			return err
		}
		account, err := accounts.FindByID(ctx, verification.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		account.VerifiedAt = &now
		return accounts.Update(ctx, account)
	})
}

// ResetPassword redeems a reset token and installs the new password. The
// password checks run in registration order, before the token is even looked
// up.
func (s *TokenService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.Token == "" || input.Password == "" || input.ConfirmPassword == "" {
		return ErrInvalidRequest
	}
	if !utils.IsValidPassword(input.Password) {
		return ErrInvalidPassword
	}
	if input.Password != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	now := s.clock.Now()
	reset, err := s.resets.FindByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if reset == nil || reset.Expired(now) {
		return ErrInvalidResetToken
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		tokens := s.resets.WithTx(tx)
		accounts := s.accounts.WithTx(tx)

		if err := tokens.Delete(ctx, reset); err != nil {
			return err
		}
		account, err := accounts.FindByID(ctx, reset.AccountID)
		if err != nil {
			return err
		}
		if account == nil {
			return ErrAccountNotFound
		}
		account.PasswordHash = &hash
		return accounts.Update(ctx, account)
	})
}

func (s *TokenService) issue(ctx context.Context, repo repository.TokenRepository, accountID uuid.UUID, ttl time.Duration) (*IssuedToken, error) {
	value, err := s.uniqueToken(ctx, repo)
	if err != nil {
		return nil, err
	}

	token := &entity.EphemeralToken{
		AccountID: accountID,
		Token:     value,
		ExpiresOn: s.clock.Now().Add(ttl),
	}

	// Supersede-and-insert in one transaction; the unique index on account_id
	// backs the single-active-token invariant when two issuances race.
	err = s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		tokens := repo.WithTx(tx)
		existing, err := tokens.FindByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := tokens.Delete(ctx, existing); err != nil {
				return err
			}
		}
		return tokens.Create(ctx, token)
	})
	if err != nil {
		return nil, err
	}

	return &IssuedToken{Token: token.Token, ExpiresOn: token.ExpiresOn}, nil
}

func (s *TokenService) uniqueToken(ctx context.Context, repo repository.TokenRepository) (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		candidate, err := s.tokens.NumericToken(TokenLength)
		if err != nil {
			return "", err
		}
		existing, err := repo.FindByToken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", ErrTokenSpaceExhausted
}
