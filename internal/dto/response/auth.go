package response

import (
	"time"

	"ecommerce-rbac/internal/data/entity"
)

// SanitizedUser is every user field except the password hash.
type SanitizedUser struct {
	ID         string          `json:"_id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	IsVerified bool            `json:"isVerified"`
	IsAdmin    bool            `json:"isAdmin"`
	Role       entity.UserRole `json:"role"`
	IsApproved bool            `json:"isApproved"`
}

func NewSanitizedUser(user *entity.User) SanitizedUser {
	return SanitizedUser{
		ID:         user.ID.String(),
		Email:      user.Email,
		Name:       user.Name,
		IsVerified: user.IsVerified,
		IsAdmin:    user.IsAdmin,
		Role:       user.Role,
		IsApproved: user.IsApproved,
	}
}

func NewSanitizedUsers(users []*entity.User) []SanitizedUser {
	out := make([]SanitizedUser, 0, len(users))
	for _, user := range users {
		out = append(out, NewSanitizedUser(user))
	}
	return out
}

// AuthResult pairs the sanitized user with the session credential the
// handler turns into a cookie.
type AuthResult struct {
	User      SanitizedUser
	Token     string
	ExpiresAt time.Time
}
