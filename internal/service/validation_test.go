package service

import (
	"testing"

	"climateviz_api/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	testCases := []struct {
		name       string
		req        *model.RegisterRequest
		wantErrors int
	}{
		{
			name:       "all fields valid",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Secret123"},
			wantErrors: 0,
		},
		{
			name:       "empty username",
			req:        &model.RegisterRequest{Username: "", Email: "alice@example.com", Password: "Secret123"},
			wantErrors: 1,
		},
		{
			name:       "empty email",
			req:        &model.RegisterRequest{Username: "alice", Email: "", Password: "Secret123"},
			wantErrors: 1,
		},
		{
			name:       "email without domain",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@", Password: "Secret123"},
			wantErrors: 1,
		},
		{
			name:       "email with overlong TLD",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.technology", Password: "Secret123"},
			wantErrors: 1,
		},
		{
			name:       "email with subdomain is fine",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@mail.example.com", Password: "Secret123"},
			wantErrors: 0,
		},
		{
			name:       "password too short",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Aa1"},
			wantErrors: 1,
		},
		{
			name:       "password too long",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Aa1Aa1Aa1Aa1Aa1Aa1"},
			wantErrors: 1,
		},
		{
			name:       "password without digit",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "Secretss"},
			wantErrors: 1,
		},
		{
			name:       "password without uppercase",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
			wantErrors: 1,
		},
		{
			name:       "password without lowercase",
			req:        &model.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "SECRET123"},
			wantErrors: 1,
		},
		{
			name:       "every rule violated at once",
			req:        &model.RegisterRequest{Username: "", Email: "not-an-email", Password: "short"},
			wantErrors: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := ValidateRegistration(tc.req)

			assert.Equal(t, tc.wantErrors, result.ErrorCount)
			assert.Len(t, result.Messages, tc.wantErrors)
			if tc.wantErrors == 0 {
				assert.Empty(t, result.Message())
			} else {
				assert.Equal(t, result.Messages[len(result.Messages)-1], result.Message())
			}
		})
	}
}

func TestValidateRegistrationAccumulatesInFieldOrder(t *testing.T) {
	result := ValidateRegistration(&model.RegisterRequest{Username: "", Email: "bad", Password: "x"})

	assert.Equal(t, 3, result.ErrorCount)
	assert.Equal(t, []string{msgUsernameEmpty, msgEmailInvalid, msgPasswordInvalid}, result.Messages)
}
