package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/mocks"
	"ecommerce-rbac/pkg/session"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	stores   *mocks.Stores
	mail     *mocks.Mailer
	cooldown *mocks.Cooldown
	issuer   *session.Issuer
	svc      *authService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	stores := mocks.NewStores()
	mail := mocks.NewMailer()
	cooldown := mocks.NewCooldown()
	issuer := session.NewIssuer("test-secret", 720*time.Hour, 2*time.Minute)
	config := &utils.Config{
		App: utils.AppConfig{Origin: "http://localhost:3000/"},
		OTP: utils.OTPConfig{ExpiryMinutes: 10, Length: 6},
	}

	svc := NewAuthService(stores.Repository(), issuer, mail, cooldown, config, zap.NewNop()).(*authService)
	return &authFixture{stores: stores, mail: mail, cooldown: cooldown, issuer: issuer, svc: svc}
}

func (f *authFixture) signup(t *testing.T, email, role string) uuid.UUID {
	t.Helper()
	result, err := f.svc.Signup(context.Background(), &request.SignupRequest{
		Name:     "Test User",
		Email:    email,
		Password: "Pw123456",
		Role:     role,
	})
	require.NoError(t, err)
	return uuid.MustParse(result.User.ID)
}

func assertKind(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	if message != "" {
		assert.Equal(t, message, err.Error())
	}
}

func TestAuthService_SignupCoercesRole(t *testing.T) {
	tests := []struct {
		requested    string
		wantRole     entity.UserRole
		wantApproved bool
	}{
		{requested: "", wantRole: entity.RoleCustomer, wantApproved: true},
		{requested: "customer", wantRole: entity.RoleCustomer, wantApproved: true},
		{requested: "admin", wantRole: entity.RoleCustomer, wantApproved: true},
		{requested: "superuser", wantRole: entity.RoleCustomer, wantApproved: true},
		{requested: "Vendor", wantRole: entity.RoleCustomer, wantApproved: true},
		{requested: "vendor", wantRole: entity.RoleVendor, wantApproved: false},
	}

	for _, tt := range tests {
		t.Run("role="+tt.requested, func(t *testing.T) {
			f := newAuthFixture(t)

			result, err := f.svc.Signup(context.Background(), &request.SignupRequest{
				Name:     "V",
				Email:    "v@x.com",
				Password: "Pw123456",
				Role:     tt.requested,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.wantRole, result.User.Role)
			assert.Equal(t, tt.wantApproved, result.User.IsApproved)
			assert.False(t, result.User.IsVerified)
			assert.False(t, result.User.IsAdmin)

			stored := f.stores.User.Get(uuid.MustParse(result.User.ID))
			require.NotNil(t, stored)
			assert.Equal(t, tt.wantRole, stored.Role)
			assert.NotEqual(t, "Pw123456", stored.PasswordHash)
		})
	}
}

func TestAuthService_SignupIssuesSessionAndOTP(t *testing.T) {
	f := newAuthFixture(t)

	result, err := f.svc.Signup(context.Background(), &request.SignupRequest{
		Name:     "V",
		Email:    "  V@X.com ",
		Password: "Pw123456",
	})
	require.NoError(t, err)
	assert.Equal(t, "v@x.com", result.User.Email)

	claims, err := f.issuer.Validate(result.Token, session.PurposeLogin)
	require.NoError(t, err)
	subject, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, subject.String())

	userID := uuid.MustParse(result.User.ID)
	assert.Len(t, f.stores.OTP.ForUser(userID), 1)
	require.Len(t, f.mail.OTPs, 1)
	assert.Equal(t, "v@x.com", f.mail.OTPs[0].To)
	assert.Len(t, f.mail.LastOTP(), 6)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.signup(t, "v@x.com", "vendor")

	_, err := f.svc.Signup(context.Background(), &request.SignupRequest{
		Name:     "Other",
		Email:    "V@x.com",
		Password: "Pw123456",
	})
	assertKind(t, err, ErrConflict, "User already exists")
}

func TestAuthService_SignupValidation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Signup(context.Background(), &request.SignupRequest{Email: "nope", Password: "1"})
	assertKind(t, err, ErrValidation, "")

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Fields, "email")
	assert.Contains(t, svcErr.Fields, "password")
	assert.Contains(t, svcErr.Fields, "name")
}

func TestAuthService_SignupSurvivesMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.mail.Err = errors.New("smtp down")

	userID := f.signup(t, "v@x.com", "")
	assert.Len(t, f.stores.OTP.ForUser(userID), 1)
}

func TestAuthService_SignupStoreFailure(t *testing.T) {
	f := newAuthFixture(t)
	f.stores.User.Err = errors.New("connection refused")

	_, err := f.svc.Signup(context.Background(), &request.SignupRequest{
		Name:     "V",
		Email:    "v@x.com",
		Password: "Pw123456",
	})
	assertKind(t, err, ErrInternal, "")
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	userID := f.signup(t, "v@x.com", "vendor")

	t.Run("success", func(t *testing.T) {
		result, err := f.svc.Login(context.Background(), &request.LoginRequest{Email: "V@x.com", Password: "Pw123456"})
		require.NoError(t, err)
		assert.Equal(t, userID.String(), result.User.ID)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(context.Background(), &request.LoginRequest{Email: "v@x.com", Password: "wrong-pass"})
		assertKind(t, err, ErrNotFound, "Invalid Credentails")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(context.Background(), &request.LoginRequest{Email: "nobody@x.com", Password: "Pw123456"})
		assertKind(t, err, ErrNotFound, "Invalid Credentails")
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	t.Run("success deletes the code", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")

		user, err := f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{
			UserID: userID.String(),
			OTP:    f.mail.LastOTP(),
		})
		require.NoError(t, err)
		assert.True(t, user.IsVerified)
		assert.True(t, f.stores.User.Get(userID).IsVerified)
		assert.Empty(t, f.stores.OTP.ForUser(userID))
	})

	t.Run("mismatch keeps the code", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		wrong := "000000"
		if f.mail.LastOTP() == wrong {
			wrong = "111111"
		}

		_, err := f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{UserID: userID.String(), OTP: wrong})
		assertKind(t, err, ErrInvalidCode, "Otp is invalid or expired")
		assert.Len(t, f.stores.OTP.ForUser(userID), 1)
		assert.False(t, f.stores.User.Get(userID).IsVerified)
	})

	t.Run("expired code is deleted", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		code := f.mail.LastOTP()
		f.svc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }

		_, err := f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{UserID: userID.String(), OTP: code})
		assertKind(t, err, ErrExpired, "Otp has been expired")
		assert.Empty(t, f.stores.OTP.ForUser(userID))
		assert.False(t, f.stores.User.Get(userID).IsVerified)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{UserID: uuid.NewString(), OTP: "123456"})
		assertKind(t, err, ErrNotFound, "User not Found, for which the otp has been generated")

		_, err = f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{UserID: "not-an-id", OTP: "123456"})
		assertKind(t, err, ErrNotFound, "User not Found, for which the otp has been generated")
	})

	t.Run("no code", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		_, err := f.stores.OTP.DeleteByUserID(context.Background(), userID)
		require.NoError(t, err)

		_, err = f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{UserID: userID.String(), OTP: "123456"})
		assertKind(t, err, ErrNotFound, "Otp not found")
	})
}

func TestAuthService_ResendOTP(t *testing.T) {
	t.Run("leaves one live code", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		first := f.stores.OTP.ForUser(userID)[0]

		require.NoError(t, f.svc.ResendOTP(context.Background(), &request.ResendOTPRequest{User: userID.String()}))

		codes := f.stores.OTP.ForUser(userID)
		require.Len(t, codes, 1)
		assert.NotEqual(t, first.ID, codes[0].ID)
		assert.Len(t, f.mail.OTPs, 2)
	})

	t.Run("cooldown", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		req := &request.ResendOTPRequest{User: userID.String()}

		require.NoError(t, f.svc.ResendOTP(context.Background(), req))
		err := f.svc.ResendOTP(context.Background(), req)
		assertKind(t, err, ErrTooManyRequests, "Please wait before requesting another OTP")

		f.cooldown.Reset()
		require.NoError(t, f.svc.ResendOTP(context.Background(), req))
	})

	t.Run("cooldown store down fails open", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		f.cooldown.Err = errors.New("redis down")

		require.NoError(t, f.svc.ResendOTP(context.Background(), &request.ResendOTPRequest{User: userID.String()}))
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.ResendOTP(context.Background(), &request.ResendOTPRequest{User: uuid.NewString()})
		assertKind(t, err, ErrNotFound, "User not found")

		err = f.svc.ResendOTP(context.Background(), &request.ResendOTPRequest{User: "not-an-id"})
		assertKind(t, err, ErrNotFound, "User not found")
	})

	t.Run("failed send does not start the window", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		req := &request.ResendOTPRequest{User: userID.String()}

		f.mail.Err = errors.New("smtp down")
		err := f.svc.ResendOTP(context.Background(), req)
		assertKind(t, err, ErrInternal, "")

		f.mail.Err = nil
		require.NoError(t, f.svc.ResendOTP(context.Background(), req))
		assert.Len(t, f.mail.OTPs, 2)
	})
}

// resetTokenFromLink pulls <userId>/<token> out of the mailed reset link.
func resetTokenFromLink(t *testing.T, link string) (string, string) {
	t.Helper()
	const prefix = "http://localhost:3000/reset-password/"
	require.True(t, strings.HasPrefix(link, prefix), link)
	parts := strings.SplitN(strings.TrimPrefix(link, prefix), "/", 2)
	require.Len(t, parts, 2)
	return parts[0], parts[1]
}

func TestAuthService_PasswordReset(t *testing.T) {
	t.Run("success replaces the password", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")

		message, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)
		assert.Equal(t, "Password Reset link sent to v@x.com", message)

		linkUser, token := resetTokenFromLink(t, f.mail.LastResetLink())
		assert.Equal(t, userID.String(), linkUser)
		require.Len(t, f.stores.ResetToken.ForUser(userID), 1)

		err = f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
			UserID:   userID.String(),
			Token:    token,
			Password: "NewPass99",
		})
		require.NoError(t, err)

		assert.Empty(t, f.stores.ResetToken.ForUser(userID))
		assert.True(t, utils.CheckPasswordHash("NewPass99", f.stores.User.Get(userID).PasswordHash))
	})

	t.Run("new request replaces the old token", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")

		_, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)
		f.cooldown.Reset()
		_, err = f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)

		assert.Len(t, f.stores.ResetToken.ForUser(userID), 1)
	})

	t.Run("mismatch leaves the password", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		before := f.stores.User.Get(userID).PasswordHash

		_, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)

		err = f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
			UserID:   userID.String(),
			Token:    "not-the-token",
			Password: "NewPass99",
		})
		assertKind(t, err, ErrNotFound, "Reset Link is Not Valid")
		assert.Equal(t, before, f.stores.User.Get(userID).PasswordHash)
		assert.Len(t, f.stores.ResetToken.ForUser(userID), 1)
	})

	t.Run("expired token is deleted", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")
		before := f.stores.User.Get(userID).PasswordHash

		_, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)
		_, token := resetTokenFromLink(t, f.mail.LastResetLink())

		f.svc.now = func() time.Time { return time.Now().Add(time.Hour) }
		err = f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
			UserID:   userID.String(),
			Token:    token,
			Password: "NewPass99",
		})
		assertKind(t, err, ErrNotFound, "Reset Link has been expired")
		assert.Empty(t, f.stores.ResetToken.ForUser(userID))
		assert.Equal(t, before, f.stores.User.Get(userID).PasswordHash)
	})

	t.Run("no token", func(t *testing.T) {
		f := newAuthFixture(t)
		userID := f.signup(t, "v@x.com", "")

		err := f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
			UserID:   userID.String(),
			Token:    "anything",
			Password: "NewPass99",
		})
		assertKind(t, err, ErrNotFound, "Reset Link is Not Valid")
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "nobody@x.com"})
		assertKind(t, err, ErrNotFound, "Provided email does not exists")
	})

	t.Run("failed mail does not start the window", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signup(t, "v@x.com", "")

		f.mail.Err = errors.New("smtp down")
		_, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		assertKind(t, err, ErrInternal, "Error occured while sending password reset mail")

		f.mail.Err = nil
		_, err = f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, f.mail.LastResetLink())
	})

	t.Run("malformed user id", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.ResetPassword(context.Background(), &request.ResetPasswordRequest{
			UserID:   "not-an-id",
			Token:    "anything",
			Password: "NewPass99",
		})
		assertKind(t, err, ErrNotFound, "User does not exists")
	})

	t.Run("cooldown", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signup(t, "v@x.com", "")

		_, err := f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		require.NoError(t, err)
		_, err = f.svc.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Email: "v@x.com"})
		assertKind(t, err, ErrTooManyRequests, "")
	})
}

func TestAuthService_CheckAuth(t *testing.T) {
	f := newAuthFixture(t)
	userID := f.signup(t, "v@x.com", "vendor")

	user, err := f.svc.CheckAuth(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "v@x.com", user.Email)

	_, err = f.svc.CheckAuth(context.Background(), uuid.New())
	assertKind(t, err, ErrUnauthenticated, "User not found, please login again")
}
