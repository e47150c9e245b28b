package entity

import (
	"time"

	"github.com/google/uuid"
)

// OTP is an email verification code. Only the bcrypt hash is stored.
type OTP struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	CodeHash  string    `db:"otp"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (o *OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
