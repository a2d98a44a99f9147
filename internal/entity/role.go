package entity

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(64);uniqueIndex;not null"`

	Permissions []Permission `gorm:"many2many:roles_permissions"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
