//go:generate mockery --name UserRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// UserRepository is the account store. Accounts are never hard-deleted by the
// credential flows; Delete exists for the user-management surface only.
type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *model.User) error
	Save(ctx context.Context, db *gorm.DB, user *model.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error)
	FindByVerificationCode(ctx context.Context, db *gorm.DB, code string) (*model.User, error)
	FindByPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.User, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]model.User, error)
	Delete(ctx context.Context, db *gorm.DB, id uint) error

	// Enable marks the account verified and clears its verification code in
	// one update.
	Enable(ctx context.Context, db *gorm.DB, id uint) error

	// SetResetToken records a new reset token and creation timestamp,
	// silently superseding any pending one.
	SetResetToken(ctx context.Context, db *gorm.DB, id uint, token string, createdAt time.Time) error

	// ConsumeResetToken stores the new password hash and clears the token in
	// a single compare-and-clear update. Returns false when the token was
	// already consumed or superseded, so concurrent resets racing on the
	// same token resolve to exactly one winner.
	ConsumeResetToken(ctx context.Context, db *gorm.DB, token, passwordHash string) (bool, error)
}

type gormUserRepository struct{}

func NewGormUserRepository() UserRepository {
	return &gormUserRepository{}
}

func (r *gormUserRepository) Create(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(user)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create user", "error", result.Error, "email", user.Email)
			return model.ErrConflict
		}
		logger.Error("Error creating user in DB", "error", result.Error, "email", user.Email)
		return fmt.Errorf("gormUserRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormUserRepository) Save(ctx context.Context, db *gorm.DB, user *model.User) error {
	logger := middleware.GetLogger(ctx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		logger.Error("Error saving user in DB", "error", err, "user_id", user.ID)
		return fmt.Errorf("gormUserRepository.Save: %w", err)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.User, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.User, error) {
	return r.findOne(ctx, db, "email = ?", email)
}

func (r *gormUserRepository) FindByVerificationCode(ctx context.Context, db *gorm.DB, code string) (*model.User, error) {
	return r.findOne(ctx, db, "verification_code = ?", code)
}

func (r *gormUserRepository) FindByPasswordResetToken(ctx context.Context, db *gorm.DB, token string) (*model.User, error) {
	return r.findOne(ctx, db, "password_reset_token = ?", token)
}

func (r *gormUserRepository) findOne(ctx context.Context, db *gorm.DB, query string, arg any) (*model.User, error) {
	logger := middleware.GetLogger(ctx)
	var user model.User

	result := db.WithContext(ctx).Where(query, arg).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding user in DB", "error", result.Error, "query", query)
		return nil, fmt.Errorf("gormUserRepository.findOne: %w", result.Error)
	}
	return &user, nil
}

func (r *gormUserRepository) FindAll(ctx context.Context, db *gorm.DB) ([]model.User, error) {
	logger := middleware.GetLogger(ctx)
	var users []model.User

	if err := db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		logger.Error("Error listing users in DB", "error", err)
		return nil, fmt.Errorf("gormUserRepository.FindAll: %w", err)
	}
	return users, nil
}

func (r *gormUserRepository) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		logger.Error("Error deleting user in DB", "error", result.Error, "user_id", id)
		return fmt.Errorf("gormUserRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) Enable(ctx context.Context, db *gorm.DB, id uint) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"enabled": true, "verification_code": nil})
	if result.Error != nil {
		logger.Error("Error enabling user in DB", "error", result.Error, "user_id", id)
		return fmt.Errorf("gormUserRepository.Enable: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) SetResetToken(ctx context.Context, db *gorm.DB, id uint, token string, createdAt time.Time) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"password_reset_token": token, "token_created_at": createdAt})
	if result.Error != nil {
		logger.Error("Error storing reset token in DB", "error", result.Error, "user_id", id)
		return fmt.Errorf("gormUserRepository.SetResetToken: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormUserRepository) ConsumeResetToken(ctx context.Context, db *gorm.DB, token, passwordHash string) (bool, error) {
	logger := middleware.GetLogger(ctx)

	// The WHERE clause on the token makes the read-check-then-write atomic
	// relative to other writers.
	result := db.WithContext(ctx).Model(&model.User{}).
		Where("password_reset_token = ?", token).
		Updates(map[string]any{
			"password":             passwordHash,
			"password_reset_token": nil,
			"token_created_at":     nil,
		})
	if result.Error != nil {
		logger.Error("Error consuming reset token in DB", "error", result.Error)
		return false, fmt.Errorf("gormUserRepository.ConsumeResetToken: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
