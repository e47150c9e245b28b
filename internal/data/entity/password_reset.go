package entity

import (
	"time"

	"github.com/google/uuid"
)

type PasswordResetToken struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	TokenHash string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
