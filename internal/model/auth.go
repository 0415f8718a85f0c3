package model

// RegisterRequest is the request body for POST /auth/register.
// Field-level rules (password policy etc.) are enforced by the domain
// validator so the response can carry a violation count; decoding problems
// are reported through the shared error envelope instead.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse mirrors the historical response shape: a violation count
// plus a message. Messages carries every violated rule; Message keeps the
// last one for clients that only read the single field.
type RegisterResponse struct {
	NumOfErrors int      `json:"num_of_errors"`
	Message     string   `json:"message"`
	Messages    []string `json:"messages,omitempty"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on successful authentication. Exactly one of
// {token, error} ever reaches the client; errors go through the shared error
// envelope.
type LoginResponse struct {
	JWT string `json:"jwt"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ValidateResetTokenResponse lets a client pre-validate a reset link before
// prompting for a new password.
type ValidateResetTokenResponse struct {
	Success string `json:"success"`
	Email   string `json:"email"`
}

// MessageResponse is the generic {success} envelope used by the verification
// and password flows.
type MessageResponse struct {
	Success string `json:"success"`
}
