package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

// ParseGender maps caller input onto the gender enum, case-insensitively.
func ParseGender(value string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(GenderMale):
		return GenderMale, true
	case string(GenderFemale):
		return GenderFemale, true
	default:
		return "", false
	}
}

type OauthProvider string

const (
	OauthProviderGoogle   OauthProvider = "google"
	OauthProviderFacebook OauthProvider = "facebook"
)

func ParseOauthProvider(value string) (OauthProvider, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(OauthProviderGoogle):
		return OauthProviderGoogle, true
	case string(OauthProviderFacebook):
		return OauthProviderFacebook, true
	default:
		return "", false
	}
}

type Account struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	OauthID       *string        `gorm:"type:varchar(255);uniqueIndex"`
	OauthProvider *OauthProvider `gorm:"type:varchar(32)"`

	FirstName   string  `gorm:"type:varchar(100);not null"`
	LastName    string  `gorm:"type:varchar(100);not null"`
	Gender      *Gender `gorm:"type:varchar(1)"`
	Email       *string `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber *string `gorm:"type:varchar(32)"`

	PasswordHash *string `gorm:"type:text"`

	Roles []Role `gorm:"many2many:accounts_roles;constraint:OnDelete:CASCADE"`

	Enabled    bool `gorm:"default:true;not null"`
	VerifiedAt *time.Time

	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPasswordAccount builds an unverified password-identity account. The
// oauth pair stays nil so the two identity modes cannot mix.
func NewPasswordAccount(firstName, lastName string, gender Gender, email, phoneNumber, passwordHash string) *Account {
	return &Account{
		FirstName:    firstName,
		LastName:     lastName,
		Gender:       &gender,
		Email:        &email,
		PhoneNumber:  &phoneNumber,
		PasswordHash: &passwordHash,
		Enabled:      true,
	}
}

// NewOauthAccount builds an account whose identity proof is the provider's.
// It carries no password and is verified from the moment of creation.
func NewOauthAccount(firstName, lastName string, oauthID string, provider OauthProvider, now time.Time) *Account {
	return &Account{
		FirstName:     firstName,
		LastName:      lastName,
		OauthID:       &oauthID,
		OauthProvider: &provider,
		Enabled:       true,
		VerifiedAt:    &now,
		LastLoginAt:   &now,
	}
}

func (a *Account) IsOauth() bool {
	return a.OauthID != nil && a.OauthProvider != nil
}

func (a *Account) Verified() bool {
	return a.VerifiedAt != nil
}
