package entity

import "github.com/google/uuid"

// Permission is immutable reference data, seeded once and never mutated by
// the services.
type Permission struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"type:varchar(64);uniqueIndex;not null"`
}
