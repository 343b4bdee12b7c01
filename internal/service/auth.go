// Package service implements the account-lifecycle state machine:
// registration with email OTP verification, login, and the password
// forgot/reset/update flows. The service is request-scoped and stateless
// between calls; all durable state lives in the user store.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rushikeshdhande/Library-Management-System/internal/apperr"
	"github.com/rushikeshdhande/Library-Management-System/internal/email"
	"github.com/rushikeshdhande/Library-Management-System/internal/models"
	"github.com/rushikeshdhande/Library-Management-System/internal/store"
	"github.com/rushikeshdhande/Library-Management-System/internal/utils"
)

const (
	maxRegistrationAttempts = 5
	minPasswordLength       = 8
	maxPasswordLength       = 16
)

type Config struct {
	FrontendURL string
	OTPWindow   time.Duration
	ResetWindow time.Duration
}

type AuthService struct {
	users  store.UserStore
	mailer email.Mailer
	cfg    Config
	log    *zap.Logger
}

func NewAuthService(users store.UserStore, mailer email.Mailer, cfg Config, log *zap.Logger) *AuthService {
	return &AuthService{users: users, mailer: mailer, cfg: cfg, log: log}
}

// Register creates an unverified account and emails it a verification
// code. The attempt-cap check is a read-then-write race against concurrent
// registrations for the same email; a slight overshoot of the cap is
// accepted rather than serialized away.
func (s *AuthService) Register(ctx context.Context, name, emailAddr, password string) *apperr.Error {
	name = strings.TrimSpace(name)
	emailAddr = normalizeEmail(emailAddr)
	if name == "" || emailAddr == "" || password == "" {
		return apperr.Validation("Please enter all fields.")
	}

	if _, err := s.users.FindVerifiedByEmail(ctx, emailAddr); err == nil {
		return apperr.Conflict("User already exists.")
	} else if err != store.ErrNotFound {
		return s.internal("register: verified lookup", err)
	}

	attempts, err := s.users.CountUnverifiedByEmail(ctx, emailAddr)
	if err != nil {
		return s.internal("register: attempt count", err)
	}
	if attempts >= maxRegistrationAttempts {
		return apperr.Conflict("You have exceeded the number of registration attempts.")
	}

	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return apperr.Validation("Password must be between 8 and 16 characters.")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return s.internal("register: password hash", err)
	}

	code, expiresAt, err := utils.GenerateOTP(s.cfg.OTPWindow)
	if err != nil {
		return s.internal("register: otp generation", err)
	}

	user := &models.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: passwordHash,
	}
	user.SetVerificationCode(code, expiresAt)

	if err := s.users.Create(ctx, user); err != nil {
		return s.internal("register: create", err)
	}

	// The unverified row stays persisted on dispatch failure so the user
	// can retry verification without re-registering.
	if err := s.mailer.SendVerificationCode(emailAddr, code); err != nil {
		s.log.Warn("verification code dispatch failed",
			zap.String("email", emailAddr), zap.Error(err))
		return apperr.Notification("Failed to send verification code. Please try again.")
	}

	return nil
}

// VerifyOTP checks the submitted code against the newest unverified
// account for the email and, on a match before expiry, transitions it to
// verified. A repeat call after success finds no unverified row and fails.
func (s *AuthService) VerifyOTP(ctx context.Context, emailAddr string, otp int) (*models.User, *apperr.Error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || otp == 0 {
		return nil, apperr.Validation("Email or OTP is missing.")
	}

	attempts, err := s.users.FindUnverifiedByEmail(ctx, emailAddr)
	if err != nil {
		return nil, s.internal("verify otp: lookup", err)
	}
	if len(attempts) == 0 {
		return nil, apperr.NotFound("User not found.")
	}

	user := &attempts[0]
	if user.VerificationCode == nil || *user.VerificationCode != otp {
		return nil, apperr.Invalid("Invalid OTP.")
	}
	if user.VerificationCodeExpire == nil || time.Now().After(*user.VerificationCodeExpire) {
		return nil, apperr.Expired("OTP expired.")
	}

	user.MarkVerified()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, s.internal("verify otp: save", err)
	}

	return user, nil
}

// Login authenticates a verified account. Unknown email and wrong
// password answer identically.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, *apperr.Error) {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return nil, apperr.Validation("Please enter all fields.")
	}

	user, err := s.users.FindVerifiedByEmail(ctx, emailAddr)
	if err == store.ErrNotFound {
		return nil, apperr.Unauthorized("Invalid email or password.")
	}
	if err != nil {
		return nil, s.internal("login: lookup", err)
	}

	ok, err := utils.CheckPassword(user.PasswordHash, password)
	if err != nil {
		return nil, s.internal("login: credential check", err)
	}
	if !ok {
		return nil, apperr.Unauthorized("Invalid email or password.")
	}

	return user, nil
}

// ForgotPassword issues a reset token for a verified account and emails
// the reset link. If the email cannot be dispatched the reset fields are
// rolled back so a later request starts clean.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) *apperr.Error {
	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" {
		return apperr.Validation("Email is required.")
	}

	user, err := s.users.FindVerifiedByEmail(ctx, emailAddr)
	if err == store.ErrNotFound {
		return apperr.Invalid("Invalid email.")
	}
	if err != nil {
		return s.internal("forgot password: lookup", err)
	}

	raw, hash, expiresAt, err := utils.GenerateResetToken(s.cfg.ResetWindow)
	if err != nil {
		return s.internal("forgot password: token generation", err)
	}

	user.SetResetToken(hash, expiresAt)
	if err := s.users.Save(ctx, user); err != nil {
		return s.internal("forgot password: save", err)
	}

	resetURL := strings.TrimRight(s.cfg.FrontendURL, "/") + "/password/reset/" + raw
	if err := s.mailer.SendPasswordReset(user.Email, resetURL); err != nil {
		s.log.Warn("password reset dispatch failed",
			zap.String("email", user.Email), zap.Error(err))
		user.ClearResetToken()
		if saveErr := s.users.Save(ctx, user); saveErr != nil {
			s.log.Error("reset token rollback failed",
				zap.String("email", user.Email), zap.Error(saveErr))
		}
		return apperr.Notification("Failed to send password reset email. Please try again.")
	}

	return nil
}

// ResetPassword consumes a raw reset token. Only the token's digest is
// stored, so the lookup hashes the presented token; an already-consumed
// or expired token matches nothing.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, password, confirmPassword string) (*models.User, *apperr.Error) {
	if rawToken == "" || password == "" || confirmPassword == "" {
		return nil, apperr.Validation("Please enter all fields.")
	}

	user, err := s.users.FindByResetTokenHash(ctx, utils.HashResetToken(rawToken), time.Now())
	if err == store.ErrNotFound {
		return nil, apperr.Invalid("Reset password token is invalid or has been expired.")
	}
	if err != nil {
		return nil, s.internal("reset password: lookup", err)
	}

	if password != confirmPassword {
		return nil, apperr.Validation("Password & confirm password do not match.")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, s.internal("reset password: hash", err)
	}

	user.PasswordHash = passwordHash
	user.ClearResetToken()
	if err := s.users.Save(ctx, user); err != nil {
		return nil, s.internal("reset password: save", err)
	}

	return user, nil
}

// UpdatePassword replaces the password of an authenticated user after
// re-checking the current one.
func (s *AuthService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, confirmNewPassword string) *apperr.Error {
	if currentPassword == "" || newPassword == "" || confirmNewPassword == "" {
		return apperr.Validation("Please enter all fields.")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err == store.ErrNotFound {
		return apperr.NotFound("User not found.")
	}
	if err != nil {
		return s.internal("update password: lookup", err)
	}

	ok, err := utils.CheckPassword(user.PasswordHash, currentPassword)
	if err != nil {
		return s.internal("update password: credential check", err)
	}
	if !ok {
		return apperr.Unauthorized("Current password is incorrect.")
	}

	if newPassword != confirmNewPassword {
		return apperr.Validation("New password and confirm new password do not match.")
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return s.internal("update password: hash", err)
	}

	user.PasswordHash = passwordHash
	if err := s.users.Save(ctx, user); err != nil {
		return s.internal("update password: save", err)
	}

	return nil
}

// GetUser loads the account behind an authenticated session.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, *apperr.Error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == store.ErrNotFound {
		return nil, apperr.NotFound("User not found.")
	}
	if err != nil {
		return nil, s.internal("get user: lookup", err)
	}
	return user, nil
}

func (s *AuthService) internal(op string, err error) *apperr.Error {
	s.log.Error(op, zap.Error(err))
	return apperr.Internal("Internal server error.")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
