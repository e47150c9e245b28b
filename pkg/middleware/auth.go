package middleware

import (
	"context"
	"errors"
	"net/http"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/pkg/session"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserLookup is the part of the user store the authenticator needs.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

var (
	errTokenMissing = errors.New("token missing")
	errTokenExpired = errors.New("token expired")
	errTokenInvalid = errors.New("token invalid")
	errUserGone     = errors.New("session user not found")
)

var unauthorizedMessages = map[error]string{
	errTokenMissing: "Token missing, please login again",
	errTokenExpired: "Token expired, please login again",
	errTokenInvalid: "Invalid Token, please login again",
	errUserGone:     "User not found, please login again",
}

type Authenticator struct {
	issuer     *session.Issuer
	users      UserLookup
	cookieName string
	log        *zap.Logger
}

func NewAuthenticator(issuer *session.Issuer, users UserLookup, cookieName string, log *zap.Logger) *Authenticator {
	return &Authenticator{
		issuer:     issuer,
		users:      users,
		cookieName: cookieName,
		log:        log.With(zap.String("middleware", "auth")),
	}
}

// Authenticate rejects the request unless it carries a valid session cookie
// for a user that still exists.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.resolve(r)
		if err != nil {
			if message, ok := unauthorizedMessages[err]; ok {
				utils.ResponseUnauthorized(w, message)
				return
			}
			a.log.Error("Failed to load session user", zap.Error(err))
			utils.ResponseInternalError(w, "Internal Server Error")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.SetIdentity(r.Context(), identity)))
	})
}

// OptionalAuthenticate attaches the identity when a valid session is present
// and otherwise lets the request through anonymously.
func (a *Authenticator) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.resolve(r)
		if err != nil {
			if !errors.Is(err, errTokenMissing) {
				a.log.Debug("Ignoring unusable session", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.SetIdentity(r.Context(), identity)))
	})
}

func (a *Authenticator) resolve(r *http.Request) (*utils.Identity, error) {
	cookie, err := r.Cookie(a.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, errTokenMissing
	}

	claims, err := a.issuer.Validate(cookie.Value, session.PurposeLogin)
	if errors.Is(err, session.ErrExpiredCredential) {
		return nil, errTokenExpired
	}
	if err != nil {
		return nil, errTokenInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, errTokenInvalid
	}

	// role and approval come from the store, never from the token body
	user, err := a.users.FindByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserGone
	}

	return IdentityFromUser(user), nil
}

func IdentityFromUser(user *entity.User) *utils.Identity {
	return &utils.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		IsVerified: user.IsVerified,
		IsApproved: user.IsApproved,
		IsAdmin:    user.IsAdmin,
	}
}
