package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("expired credential")
)

type Purpose string

const (
	PurposeLogin         Purpose = "login"
	PurposePasswordReset Purpose = "password_reset"
)

// Identity is the snapshot written into a credential. It only locates the
// user, authorization decisions always use the stored record.
type Identity struct {
	UserID     uuid.UUID
	Email      string
	Name       string
	Role       string
	IsApproved bool
}

type Claims struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	IsApproved bool    `json:"isApproved"`
	Purpose    Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type Issuer struct {
	secret   []byte
	loginTTL time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewIssuer(secret string, loginTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		loginTTL: loginTTL,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

// TTL reports how long credentials of the given purpose live.
func (i *Issuer) TTL(purpose Purpose) time.Duration {
	if purpose == PurposePasswordReset {
		return i.resetTTL
	}
	return i.loginTTL
}

func (i *Issuer) Issue(identity Identity, purpose Purpose) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.TTL(purpose))

	claims := Claims{
		Email:      identity.Email,
		Name:       identity.Name,
		Role:       identity.Role,
		IsApproved: identity.IsApproved,
		Purpose:    purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign %s token: %w", purpose, err)
	}

	return token, expiresAt, nil
}

// Validate checks signature, algorithm and expiry. Any credential with a
// purpose other than the requested one is rejected as invalid.
func (i *Issuer) Validate(tokenStr string, purpose Purpose) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrExpiredCredential
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if claims.Purpose != purpose {
		return nil, ErrInvalidCredential
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidCredential
	}

	return claims, nil
}
