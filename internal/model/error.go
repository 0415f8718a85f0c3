package model

import (
	"errors"
	"fmt"
)

// Sentinel errors. AppError wraps one of these so webutil can map any service
// error to an HTTP status without knowing the taxonomy code.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrConflict       = errors.New("resource conflict")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Taxonomy codes carried in AppError.Detail.Code.
const (
	CodeValidationError      = "VALIDATION_ERROR"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeNotRegistered        = "NOT_REGISTERED"
	CodeNotFound             = "NOT_FOUND"
	CodeNotVerified          = "NOT_VERIFIED"
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeInvalidCode          = "INVALID_CODE"
	CodeAlreadyVerified      = "ALREADY_VERIFIED"
	CodeInvalidToken         = "INVALID_TOKEN"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeInvalidSignature     = "INVALID_SIGNATURE"
	CodeEmailSendFailed      = "EMAIL_SEND_FAILED"
	CodeInternalServerError  = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail is the client-facing part of an error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// AppError is the structured error returned by the service layer. Operations
// return these as values; they are never used as panics for control flow.
type AppError struct {
	Detail ErrorDetail
	err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		err:    err,
	}
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
}

func (e *AppError) Unwrap() error {
	return e.err
}

// APIErrorResponse is the JSON error envelope.
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
