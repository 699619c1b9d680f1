package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the persisted account record. Email and PasswordHash are nil for
// anonymous accounts; FederatedSubject is set only for federated sign-ins.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            *string   `gorm:"uniqueIndex"`
	Username         string
	PasswordHash     *string
	Provider         string
	FederatedSubject *string `gorm:"uniqueIndex"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BeforeCreate assigns the id app-side so both Postgres and SQLite carry the
// same uuid semantics.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
