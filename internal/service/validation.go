package service

import (
	"regexp"
	"unicode"

	"climateviz_api/internal/model"
)

// emailPattern is the mailbox syntax the service has always accepted.
var emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)

const (
	msgUsernameEmpty   = "The username field cannot be empty"
	msgEmailInvalid    = "The email field is not valid"
	msgPasswordInvalid = "The password must be between 8 and 16 characters, with at least one number, one lowercase letter and one uppercase letter"
)

// ValidationResult accumulates every violated rule. ErrorCount gates the
// registration flow; Messages carries one entry per violated rule.
type ValidationResult struct {
	ErrorCount int
	Messages   []string
}

// Message returns the last violated rule's text, the single-field shape older
// clients read.
func (r ValidationResult) Message() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1]
}

func (r *ValidationResult) add(message string) {
	r.ErrorCount++
	r.Messages = append(r.Messages, message)
}

// ValidateRegistration checks every field rule independently and reports all
// violations, not just the first.
func ValidateRegistration(req *model.RegisterRequest) ValidationResult {
	var result ValidationResult

	if req.Username == "" {
		result.add(msgUsernameEmpty)
	}
	if req.Email == "" || !emailPattern.MatchString(req.Email) {
		result.add(msgEmailInvalid)
	}
	if !validPassword(req.Password) {
		result.add(msgPasswordInvalid)
	}

	return result
}

// validPassword enforces length 8-16 with at least one digit, one lowercase
// and one uppercase letter.
func validPassword(password string) bool {
	runes := []rune(password)
	if len(runes) < 8 || len(runes) > 16 {
		return false
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	return hasDigit && hasLower && hasUpper
}
