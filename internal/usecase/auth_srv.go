package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecommerce-rbac/internal/data/entity"
	"ecommerce-rbac/internal/data/repository"
	"ecommerce-rbac/internal/dto/request"
	"ecommerce-rbac/internal/dto/response"
	"ecommerce-rbac/pkg/mailer"
	"ecommerce-rbac/pkg/session"
	"ecommerce-rbac/pkg/throttle"
	"ecommerce-rbac/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResult, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResult, error)
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.SanitizedUser, error)
	ResendOTP(ctx context.Context, req *request.ResendOTPRequest) error
	ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) (string, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
	CheckAuth(ctx context.Context, userID uuid.UUID) (*response.SanitizedUser, error)
}

type authService struct {
	repo     *repository.Repository
	issuer   *session.Issuer
	mail     mailer.Sender
	cooldown throttle.Cooldown
	config   *utils.Config
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	issuer *session.Issuer,
	mail mailer.Sender,
	cooldown throttle.Cooldown,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:     repo,
		issuer:   issuer,
		mail:     mail,
		cooldown: cooldown,
		config:   config,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.AuthResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, internalError("Error occured during signup, please try again later")
	}
	if existing != nil {
		return nil, newError(ErrConflict, "User already exists")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, internalError("Error occured during signup, please try again later")
	}

	// admin can never be self-assigned
	role := entity.SignupRole(req.Role)
	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		IsVerified:   false,
		IsApproved:   role.ApprovedByDefault(),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, newError(ErrConflict, "User already exists")
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, internalError("Error occured during signup, please try again later")
	}

	result, err := s.startSession(user)
	if err != nil {
		s.log.Error("Failed to issue session after signup", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, internalError("Error occured during signup, please try again later")
	}

	// a lost code can be re-requested, signup itself has already succeeded
	if err := s.issueOTP(ctx, user); err != nil {
		s.log.Error("Failed to issue verification OTP",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return result, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	email := normalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("email", email))
		return nil, internalError("Some error occured while logging in, please try again later")
	}

	// same response for unknown email and wrong password
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid login attempt", zap.String("email", email))
		return nil, newError(ErrNotFound, "Invalid Credentails")
	}

	result, err := s.startSession(user)
	if err != nil {
		s.log.Error("Failed to issue session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, internalError("Some error occured while logging in, please try again later")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return result, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.SanitizedUser, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	user, err := s.findUser(ctx, req.UserID)
	if err != nil {
		s.log.Error("Failed to find user for OTP", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, internalError("Some Error occured")
	}
	if user == nil {
		return nil, newError(ErrNotFound, "User not Found, for which the otp has been generated")
	}

	otp, err := s.repo.OTP.FindByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to find OTP", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, internalError("Some Error occured")
	}
	if otp == nil {
		return nil, newError(ErrNotFound, "Otp not found")
	}

	if otp.Expired(s.now()) {
		if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
			s.log.Warn("Failed to delete expired OTP", zap.Error(err), zap.String("otp_id", otp.ID.String()))
		}
		return nil, newError(ErrExpired, "Otp has been expired")
	}

	if !utils.CheckPasswordHash(req.OTP, otp.CodeHash) {
		return nil, newError(ErrInvalidCode, "Otp is invalid or expired")
	}

	if err := s.repo.User.MarkVerified(ctx, user.ID); err != nil {
		s.log.Error("Failed to mark user verified", zap.Error(err), zap.String("user_id", req.UserID))
		return nil, internalError("Some Error occured")
	}
	user.IsVerified = true

	if err := s.repo.OTP.Delete(ctx, otp.ID); err != nil {
		s.log.Warn("Failed to delete used OTP", zap.Error(err), zap.String("otp_id", otp.ID.String()))
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))

	sanitized := response.NewSanitizedUser(user)
	return &sanitized, nil
}

func (s *authService) ResendOTP(ctx context.Context, req *request.ResendOTPRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	user, err := s.findUser(ctx, req.User)
	if err != nil {
		s.log.Error("Failed to find user for OTP resend", zap.Error(err), zap.String("user_id", req.User))
		return internalError("Some error occured while resending otp, please try again later")
	}
	if user == nil {
		return newError(ErrNotFound, "User not found")
	}

	if !s.acquireCooldown(ctx, throttle.KindResendOTP, user.ID) {
		return newError(ErrTooManyRequests, "Please wait before requesting another OTP")
	}

	if err := s.issueOTP(ctx, user); err != nil {
		s.log.Error("Failed to resend OTP", zap.Error(err), zap.String("user_id", req.User))
		s.releaseCooldown(ctx, throttle.KindResendOTP, user.ID)
		return internalError("Some error occured while resending otp, please try again later")
	}

	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) (string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return "", validationError(errs)
	}
	email := normalizeEmail(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for password reset", zap.Error(err), zap.String("email", email))
		return "", internalError("Error occured while sending password reset mail")
	}
	if user == nil {
		return "", newError(ErrNotFound, "Provided email does not exists")
	}

	if !s.acquireCooldown(ctx, throttle.KindForgotPassword, user.ID) {
		return "", newError(ErrTooManyRequests, "Please wait before requesting another reset link")
	}

	if err := s.sendResetLink(ctx, user); err != nil {
		s.releaseCooldown(ctx, throttle.KindForgotPassword, user.ID)
		return "", err
	}

	return fmt.Sprintf("Password Reset link sent to %s", user.Email), nil
}

// sendResetLink replaces the user's reset token and mails the link.
func (s *authService) sendResetLink(ctx context.Context, user *entity.User) error {
	if _, err := s.repo.ResetToken.DeleteByUserID(ctx, user.ID); err != nil {
		s.log.Error("Failed to delete old reset tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return internalError("Error occured while sending password reset mail")
	}

	token, expiresAt, err := s.issuer.Issue(sessionIdentity(user), session.PurposePasswordReset)
	if err != nil {
		s.log.Error("Failed to issue reset token", zap.Error(err))
		return internalError("Error occured while sending password reset mail")
	}

	hashed, err := utils.HashToken(token)
	if err != nil {
		s.log.Error("Failed to hash reset token", zap.Error(err))
		return internalError("Error occured while sending password reset mail")
	}

	record := &entity.PasswordResetToken{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: s.now()},
		UserID:     user.ID,
		TokenHash:  hashed,
		ExpiresAt:  expiresAt,
	}
	if err := s.repo.ResetToken.Create(ctx, record); err != nil {
		s.log.Error("Failed to save reset token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return internalError("Error occured while sending password reset mail")
	}

	link := fmt.Sprintf("%s/reset-password/%s/%s", strings.TrimRight(s.config.App.Origin, "/"), user.ID, token)
	if err := s.mail.SendPasswordReset(ctx, user.Email, user.Name, link); err != nil {
		s.log.Error("Failed to send reset mail", zap.Error(err), zap.String("user_id", user.ID.String()))
		return internalError("Error occured while sending password reset mail")
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return validationError(errs)
	}
	user, err := s.findUser(ctx, req.UserID)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("user_id", req.UserID))
		return internalError("Error occured while resetting the password, please try again later")
	}
	if user == nil {
		return newError(ErrNotFound, "User does not exists")
	}

	record, err := s.repo.ResetToken.FindByUserID(ctx, user.ID)
	if err != nil {
		s.log.Error("Failed to find reset token", zap.Error(err), zap.String("user_id", req.UserID))
		return internalError("Error occured while resetting the password, please try again later")
	}
	if record == nil {
		return newError(ErrNotFound, "Reset Link is Not Valid")
	}

	if record.Expired(s.now()) {
		if err := s.repo.ResetToken.Delete(ctx, record.ID); err != nil {
			s.log.Warn("Failed to delete expired reset token", zap.Error(err))
		}
		return newError(ErrNotFound, "Reset Link has been expired")
	}

	if !utils.CheckTokenHash(req.Token, record.TokenHash) || !s.resetTokenBelongsTo(req.Token, user.ID) {
		return newError(ErrNotFound, "Reset Link is Not Valid")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash new password", zap.Error(err))
		return internalError("Error occured while resetting the password, please try again later")
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, hashed); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", req.UserID))
		return internalError("Error occured while resetting the password, please try again later")
	}

	if err := s.repo.ResetToken.Delete(ctx, record.ID); err != nil {
		s.log.Warn("Failed to delete used reset token", zap.Error(err))
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) CheckAuth(ctx context.Context, userID uuid.UUID) (*response.SanitizedUser, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load user", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Internal Server Error")
	}
	if user == nil {
		return nil, newError(ErrUnauthenticated, "User not found, please login again")
	}

	sanitized := response.NewSanitizedUser(user)
	return &sanitized, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) startSession(user *entity.User) (*response.AuthResult, error) {
	token, expiresAt, err := s.issuer.Issue(sessionIdentity(user), session.PurposeLogin)
	if err != nil {
		return nil, err
	}
	return &response.AuthResult{
		User:      response.NewSanitizedUser(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// issueOTP replaces any live code for the user with a fresh one and mails it.
// The code stays stored when only the mail fails.
func (s *authService) issueOTP(ctx context.Context, user *entity.User) error {
	if _, err := s.repo.OTP.DeleteByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("delete old otps: %w", err)
	}

	code, err := utils.GenerateOTP(s.config.OTP.Length)
	if err != nil {
		return err
	}

	hashed, err := utils.HashPassword(code)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	now := s.now()
	otp := &entity.OTP{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:     user.ID,
		CodeHash:   hashed,
		ExpiresAt:  now.Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute),
	}
	if err := s.repo.OTP.Create(ctx, otp); err != nil {
		return err
	}

	if err := s.mail.SendOTP(ctx, user.Email, user.Name, code); err != nil {
		return fmt.Errorf("mail otp: %w", err)
	}

	return nil
}

// findUser treats an id that does not parse as an unknown user.
func (s *authService) findUser(ctx context.Context, rawID string) (*entity.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil
	}
	return s.repo.User.FindByID(ctx, id)
}

// acquireCooldown fails open when the cooldown store errors.
func (s *authService) acquireCooldown(ctx context.Context, kind throttle.Kind, userID uuid.UUID) bool {
	ok, err := s.cooldown.Acquire(ctx, kind, userID.String())
	if err != nil {
		s.log.Warn("Cooldown check failed", zap.Error(err), zap.String("kind", string(kind)))
		return true
	}
	return ok
}

func (s *authService) releaseCooldown(ctx context.Context, kind throttle.Kind, userID uuid.UUID) {
	if err := s.cooldown.Release(ctx, kind, userID.String()); err != nil {
		s.log.Warn("Cooldown release failed", zap.Error(err), zap.String("kind", string(kind)))
	}
}

func (s *authService) resetTokenBelongsTo(token string, userID uuid.UUID) bool {
	claims, err := s.issuer.Validate(token, session.PurposePasswordReset)
	if err != nil {
		return false
	}
	subject, err := claims.UserID()
	return err == nil && subject == userID
}

func sessionIdentity(user *entity.User) session.Identity {
	return session.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       string(user.Role),
		IsApproved: user.IsApproved,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
