package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account
type User struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	PasswordHash     string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet      bool      `json:"password_set" db:"password_set"`
	SubscriptionTier string    `json:"subscription_tier" db:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
