//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"climateviz_api/internal/config"
	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/repository"
	"climateviz_api/internal/security"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// resetTokenTTL is the validity window of a password-reset token, measured
// from its creation timestamp.
const resetTokenTTL = 24 * time.Hour

// AuthService is the credential state machine: registration, email
// verification, login, and the password-reset sub-lifecycle. Every failure is
// a structured *model.AppError, never a panic.
type AuthService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error)
	VerifyAccount(ctx context.Context, code string) error
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ValidateResetToken(ctx context.Context, token string) (string, error)
}

type authService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	tokens   security.TokenService
	mailer   Mailer
	cfg      *config.Config
}

func NewAuthService(db *gorm.DB, userRepo repository.UserRepository, hasher security.PasswordHasher, tokens security.TokenService, mailer Mailer, cfg *config.Config) AuthService {
	return &authService{
		db:       db,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// Register validates the candidate, stores the account disabled with a fresh
// verification code, and then attempts the verification email. A dispatch
// failure degrades the success message; the stored account is not rolled
// back.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisterResponse, error) {
	logger := middleware.GetLogger(ctx)

	if result := ValidateRegistration(req); result.ErrorCount > 0 {
		logger.Warn("Registration rejected by field validation", "error_count", result.ErrorCount)
		return &model.RegisterResponse{
			NumOfErrors: result.ErrorCount,
			Message:     result.Message(),
			Messages:    result.Messages,
		}, nil
	}

	var newUser *model.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := s.userRepo.FindByEmail(ctx, tx, req.Email)
		if err == nil {
			logger.Warn("Email already exists", "email", req.Email)
			return model.NewAppError(model.CodeDuplicateEmail, "User already exists!", "email", model.ErrConflict)
		}
		if !errors.Is(err, model.ErrNotFound) {
			logger.Error("Failed to check email existence", "error", err)
			return model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
		}

		hashedPassword, err := s.hasher.Hash(req.Password)
		if err != nil {
			logger.Error("Failed to hash password", "error", err)
			return model.NewAppError(model.CodeInternalServerError, "Failed to process the password.", "", err)
		}

		code := newOpaqueToken()
		user := &model.User{
			Username:         req.Username,
			Email:            req.Email,
			Password:         hashedPassword,
			Enabled:          false,
			VerificationCode: &code,
		}

		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			if errors.Is(err, model.ErrConflict) {
				logger.Warn("Conflict during user creation (race condition)", "error", err)
				return model.NewAppError(model.CodeDuplicateEmail, "User already exists!", "email", model.ErrConflict)
			}
			logger.Error("Failed to create user in DB", "error", err)
			return model.NewAppError(model.CodeInternalServerError, "Failed to create the user.", "", err)
		}
		newUser = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The account is committed before the dispatch attempt: email failure
	// must not undo the registration.
	response := &model.RegisterResponse{NumOfErrors: 0}
	if err := s.sendVerificationEmail(ctx, newUser); err != nil {
		logger.Warn("Verification email dispatch failed", "error", err, "user_id", newUser.ID)
		response.Message = "User created but failed to send verification email. Please contact support."
	} else {
		response.Message = "User created successfully. Please check your email to verify your account."
	}

	logger.Info("User registered", "user_id", newUser.ID, "email", newUser.Email)
	return response, nil
}

// VerifyAccount enables the account holding the code and clears the code.
// Re-submitting a consumed code always fails; it never re-succeeds.
func (s *authService) VerifyAccount(ctx context.Context, code string) error {
	logger := middleware.GetLogger(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.FindByVerificationCode(ctx, tx, code)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				logger.Warn("Verification code not found")
				return model.NewAppError(model.CodeInvalidCode, "Invalid verification code", "code", model.ErrInvalidInput)
			}
			logger.Error("Error finding verification code", "error", err)
			return model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
		}

		if user.Enabled {
			logger.Warn("Account already verified", "user_id", user.ID)
			return model.NewAppError(model.CodeAlreadyVerified, "Account already verified", "", model.ErrConflict)
		}

		if err := s.userRepo.Enable(ctx, tx, user.ID); err != nil {
			logger.Error("Failed to enable account", "error", err, "user_id", user.ID)
			return model.NewAppError(model.CodeInternalServerError, "Failed to activate the account.", "", err)
		}

		logger.Info("Account verified", "user_id", user.ID)
		return nil
	})
}

// Login authenticates the credentials and issues a session token. Exactly
// one of {token, error} is returned.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx).With("email", req.Email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: user not found")
			return nil, model.NewAppError(model.CodeNotRegistered, "User not registered!", "", model.ErrUnauthorized)
		}
		logger.Error("Login failed: db error on FindByEmail", "error", err)
		return nil, model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
	}

	if !user.Enabled {
		logger.Warn("Login failed: account not verified", "user_id", user.ID)
		return nil, model.NewAppError(model.CodeNotVerified, "Account not verified. Please check your email.", "", model.ErrUnauthorized)
	}

	if !s.hasher.Verify(req.Password, user.Password) {
		logger.Warn("Login failed: password mismatch", "user_id", user.ID)
		return nil, model.NewAppError(model.CodeAuthenticationFailed, "Authentication failed", "", model.ErrUnauthorized)
	}

	signedToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		logger.Error("Failed to issue session token", "error", err, "user_id", user.ID)
		return nil, model.NewAppError(model.CodeInternalServerError, "Failed to generate the token.", "", err)
	}

	logger.Info("Login successful", "user_id", user.ID)
	return &model.LoginResponse{JWT: signedToken}, nil
}

// ForgotPassword records a fresh reset token, superseding any pending one,
// and dispatches the reset email. A dispatch failure is reported but the
// stored token stays valid.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	logger := middleware.GetLogger(ctx).With("email", email)

	user, err := s.userRepo.FindByEmail(ctx, s.db, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Password reset requested for unknown email")
			return model.NewAppError(model.CodeNotFound, "No account found with this email address", "email", model.ErrNotFound)
		}
		return model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
	}

	if !user.Enabled {
		logger.Warn("Password reset requested for unverified account", "user_id", user.ID)
		return model.NewAppError(model.CodeNotVerified, "Account not verified. Please verify your account first", "", model.ErrForbidden)
	}

	token := newOpaqueToken()
	now := time.Now()
	if err := s.userRepo.SetResetToken(ctx, s.db, user.ID, token, now); err != nil {
		logger.Error("Failed to store reset token", "error", err, "user_id", user.ID)
		return model.NewAppError(model.CodeInternalServerError, "Failed to store the reset token.", "", err)
	}

	if err := s.sendPasswordResetEmail(ctx, user, token); err != nil {
		// The stored token stays live; only the dispatch is reported.
		logger.Warn("Password reset email dispatch failed", "error", err, "user_id", user.ID)
		return model.NewAppError(model.CodeEmailSendFailed, "Failed to send password reset email", "", model.ErrInternalServer)
	}

	logger.Info("Password reset email sent", "user_id", user.ID)
	return nil
}

// ResetPassword consumes a reset token and stores the new password. The
// consume is a compare-and-clear update, so with concurrent calls on the
// same token at most one succeeds; the others get InvalidToken.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	logger := middleware.GetLogger(ctx)

	user, err := s.findByValidResetToken(ctx, token)
	if err != nil {
		return err
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", "error", err)
		return model.NewAppError(model.CodeInternalServerError, "Failed to process the password.", "", err)
	}

	consumed, err := s.userRepo.ConsumeResetToken(ctx, s.db, token, hashedPassword)
	if err != nil {
		logger.Error("Failed to consume reset token", "error", err, "user_id", user.ID)
		return model.NewAppError(model.CodeInternalServerError, "Failed to update the password.", "", err)
	}
	if !consumed {
		logger.Warn("Reset token consumed concurrently", "user_id", user.ID)
		return model.NewAppError(model.CodeInvalidToken, "Invalid reset token", "token", model.ErrInvalidInput)
	}

	logger.Info("Password reset successfully", "user_id", user.ID)
	return nil
}

// ValidateResetToken applies the same matching and expiry rule as
// ResetPassword without mutating state, so a client can pre-validate a link
// before prompting for a new password.
func (s *authService) ValidateResetToken(ctx context.Context, token string) (string, error) {
	user, err := s.findByValidResetToken(ctx, token)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func (s *authService) findByValidResetToken(ctx context.Context, token string) (*model.User, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByPasswordResetToken(ctx, s.db, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Reset token not found")
			return nil, model.NewAppError(model.CodeInvalidToken, "Invalid reset token", "token", model.ErrInvalidInput)
		}
		logger.Error("Error finding reset token", "error", err)
		return nil, model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
	}

	if user.TokenCreatedAt == nil || time.Since(*user.TokenCreatedAt) >= resetTokenTTL {
		logger.Warn("Reset token expired", "user_id", user.ID)
		return nil, model.NewAppError(model.CodeTokenExpired, "Reset token has expired", "token", model.ErrInvalidInput)
	}
	return user, nil
}

// --- helpers ---

// newOpaqueToken returns an unguessable single-use token.
func newOpaqueToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func (s *authService) sendVerificationEmail(ctx context.Context, user *model.User) error {
	verifyURL := fmt.Sprintf("%s/auth/verify?code=%s", s.cfg.App.BaseURL, *user.VerificationCode)
	subject := fmt.Sprintf("Verify your account - %s", s.cfg.App.Name)
	body := fmt.Sprintf(verificationEmailTemplate, s.cfg.App.Name, user.Username, verifyURL, verifyURL, verifyURL, s.cfg.App.Name)
	return s.mailer.Send(ctx, user.Email, subject, body)
}

func (s *authService) sendPasswordResetEmail(ctx context.Context, user *model.User, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.App.FrontendURL, token)
	subject := fmt.Sprintf("Reset your password - %s", s.cfg.App.Name)
	body := fmt.Sprintf(passwordResetEmailTemplate, user.Username, s.cfg.App.Name, resetURL, resetURL, resetURL, s.cfg.App.Name)
	return s.mailer.Send(ctx, user.Email, subject, body)
}

const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 10px;">
<h2 style="text-align: center; color: #333;">Welcome to %s!</h2>
<p>Hi <strong>%s</strong>,</p>
<p>Thanks for signing up. To complete your registration, please verify your email address.</p>
<div style="text-align: center;">
<a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0;">VERIFY ACCOUNT</a>
</div>
<p>If the button does not work, copy and paste this link into your browser:</p>
<p><a href="%s">%s</a></p>
<p>If you did not sign up, you can ignore this email.</p>
<div style="color: #666; font-size: 12px; text-align: center; margin-top: 20px;">
<p>This is an automated message, please do not reply.</p>
<p>&copy; 2025 %s. All rights reserved.</p>
</div>
</div>
</body>
</html>`

const passwordResetEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
<div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 10px;">
<h2 style="text-align: center; color: #333;">Reset your password</h2>
<p>Hi <strong>%s</strong>,</p>
<p>We received a request to reset the password of your %s account.</p>
<div style="text-align: center;">
<a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #dc3545; color: white; text-decoration: none; border-radius: 5px; margin: 20px 0;">RESET PASSWORD</a>
</div>
<p>If the button does not work, copy and paste this link into your browser:</p>
<p><a href="%s">%s</a></p>
<p><strong>This link will expire in 24 hours.</strong></p>
<p>If you did not request this change, you can ignore this email.</p>
<div style="color: #666; font-size: 12px; text-align: center; margin-top: 20px;">
<p>This is an automated message, please do not reply.</p>
<p>&copy; 2025 %s. All rights reserved.</p>
</div>
</div>
</body>
</html>`
