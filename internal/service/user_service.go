//go:generate mockery --name UserService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/repository"

	"gorm.io/gorm"
)

// UserService is the user-management surface. It sits outside the credential
// lifecycle; deletion here is the only way an account leaves the store.
type UserService interface {
	FindAllUsers(ctx context.Context) ([]model.UserResponse, error)
	GetUser(ctx context.Context, id uint) (*model.UserResponse, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	db       *gorm.DB
	userRepo repository.UserRepository
}

func NewUserService(db *gorm.DB, userRepo repository.UserRepository) UserService {
	return &userService{db: db, userRepo: userRepo}
}

func (s *userService) FindAllUsers(ctx context.Context) ([]model.UserResponse, error) {
	logger := middleware.GetLogger(ctx)

	users, err := s.userRepo.FindAll(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list users", "error", err)
		return nil, model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *model.NewUserResponse(&users[i]))
	}
	return responses, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.UserResponse, error) {
	logger := middleware.GetLogger(ctx)

	user, err := s.userRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError(model.CodeNotFound, "User not found", "", model.ErrNotFound)
		}
		logger.Error("Failed to find user", "error", err, "user_id", id)
		return nil, model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
	}
	return model.NewUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	logger := middleware.GetLogger(ctx)

	if err := s.userRepo.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError(model.CodeNotFound, "User not found", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete user", "error", err, "user_id", id)
		return model.NewAppError(model.CodeInternalServerError, "An internal server error occurred.", "", err)
	}

	logger.Info("User deleted", "user_id", id)
	return nil
}
