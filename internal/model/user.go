package model

import (
	"time"
)

// User is the account root entity. VerificationCode and PasswordResetToken
// are owned fields: their lifetime never exceeds the account's.
type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Username           string     `gorm:"not null" json:"username"`
	Email              string     `gorm:"unique;not null" json:"email"`
	Password           string     `gorm:"not null" json:"-"`
	Enabled            bool       `gorm:"default:false" json:"enabled"`
	VerificationCode   *string    `gorm:"uniqueIndex" json:"-"`
	PasswordResetToken *string    `gorm:"uniqueIndex" json:"-"`
	TokenCreatedAt     *time.Time `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type ContextKey string

const (
	// UserIDKey holds the authenticated account id in the request context.
	// Absent for anonymous requests.
	UserIDKey ContextKey = "userID"
)

// UserResponse is the shape returned by the user-management endpoints.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Enabled:   u.Enabled,
		CreatedAt: u.CreatedAt,
	}
}
