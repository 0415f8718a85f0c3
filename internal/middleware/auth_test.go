package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/security"
	secmocks "climateviz_api/internal/security/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerAuthMiddleware(t *testing.T) {
	testCases := []struct {
		name       string
		authHeader string
		setupMocks func(tokens *secmocks.TokenService)
		wantUserID *uint
	}{
		{
			name:       "no header passes through anonymously",
			authHeader: "",
			setupMocks: func(tokens *secmocks.TokenService) {},
			wantUserID: nil,
		},
		{
			name:       "non-bearer scheme passes through anonymously",
			authHeader: "Basic dXNlcjpwYXNz",
			setupMocks: func(tokens *secmocks.TokenService) {},
			wantUserID: nil,
		},
		{
			name:       "unverifiable token passes through anonymously",
			authHeader: "Bearer bad.token.here",
			setupMocks: func(tokens *secmocks.TokenService) {
				tokens.On("Verify", "bad.token.here").Return(nil, security.ErrInvalidSignature).Once()
			},
			wantUserID: nil,
		},
		{
			name:       "expired token passes through anonymously",
			authHeader: "Bearer old.token.here",
			setupMocks: func(tokens *secmocks.TokenService) {
				tokens.On("Verify", "old.token.here").Return(nil, security.ErrTokenExpired).Once()
			},
			wantUserID: nil,
		},
		{
			name:       "valid token attaches the user id",
			authHeader: "Bearer good.token.here",
			setupMocks: func(tokens *secmocks.TokenService) {
				tokens.On("Verify", "good.token.here").Return(&security.Claims{UserID: 42}, nil).Once()
			},
			wantUserID: ptr(uint(42)),
		},
		{
			name:       "lowercase bearer scheme is accepted",
			authHeader: "bearer good.token.here",
			setupMocks: func(tokens *secmocks.TokenService) {
				tokens.On("Verify", "good.token.here").Return(&security.Claims{UserID: 7}, nil).Once()
			},
			wantUserID: ptr(uint(7)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockTokens := new(secmocks.TokenService)
			tc.setupMocks(mockTokens)

			var gotID *uint
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id, ok := middleware.UserIDFromContext(r.Context()); ok {
					gotID = &id
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			middleware.BearerAuthMiddleware(mockTokens)(next).ServeHTTP(rec, req)

			// The filter never rejects a request by itself.
			assert.Equal(t, http.StatusOK, rec.Code)
			if tc.wantUserID == nil {
				assert.Nil(t, gotID)
			} else {
				require.NotNil(t, gotID)
				assert.Equal(t, *tc.wantUserID, *gotID)
			}
			mockTokens.AssertExpectations(t)
		})
	}
}

func TestRequireUser(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous request is rejected with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user/find-all", nil)
		rec := httptest.NewRecorder()

		middleware.RequireUser(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), model.CodeAuthenticationFailed)
	})

	t.Run("authenticated request passes", func(t *testing.T) {
		mockTokens := new(secmocks.TokenService)
		mockTokens.On("Verify", "good.token.here").Return(&security.Claims{UserID: 42}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user/find-all", nil)
		req.Header.Set("Authorization", "Bearer good.token.here")
		rec := httptest.NewRecorder()

		chain := middleware.BearerAuthMiddleware(mockTokens)(middleware.RequireUser(next))
		chain.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockTokens.AssertExpectations(t)
	})
}

func TestBearerToken(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{"empty header", "", "", false},
		{"bearer with token", "Bearer abc123", "abc123", true},
		{"case-insensitive scheme", "BEARER abc123", "abc123", true},
		{"missing token", "Bearer ", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"scheme only", "Bearer", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			token, ok := middleware.BearerToken(req)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantToken, token)
		})
	}
}

func ptr[T any](v T) *T { return &v }
