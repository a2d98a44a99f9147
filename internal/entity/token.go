package entity

import (
	"time"

	"github.com/google/uuid"
)

// EphemeralToken is a single-purpose secret bound to exactly one account.
// The same shape backs both the verification_tokens and reset_password_tokens
// tables; the repository decides which table a given instance lives in.
// Unique indexes on account_id and token keep at most one active token per
// account and make a lost issuance race a storage error instead of a
// duplicate.
type EphemeralToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Account   Account   `gorm:"constraint:OnDelete:CASCADE"`

	Token     string    `gorm:"type:varchar(16);uniqueIndex;not null"`
	ExpiresOn time.Time `gorm:"not null"`

	CreatedAt time.Time
}

// Expired reports whether the token is logically dead. An expired row may
// still be physically present; every consumer must treat it as absent.
func (t *EphemeralToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresOn)
}
