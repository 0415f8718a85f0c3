package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climateviz_api/internal/handlers"
	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/service/mocks"
)

func newUserRouter(svc *mocks.UserService) http.Handler {
	h := handlers.NewUserHandler(svc)
	r := chi.NewRouter()
	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/find-all", h.FindAll)
		r.Get("/{user_id}", h.Get)
		r.Delete("/{user_id}", h.Delete)
	})
	return r
}

func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(context.WithValue(req.Context(), model.UserIDKey, uint(1)))
}

func TestUserHandler_FindAll(t *testing.T) {
	t.Run("requires an identity", func(t *testing.T) {
		mockSvc := new(mocks.UserService)
		req := httptest.NewRequest(http.MethodGet, "/user/find-all", nil)
		rec := httptest.NewRecorder()

		newUserRouter(mockSvc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		mockSvc.AssertNotCalled(t, "FindAllUsers", mock.Anything)
	})

	t.Run("lists accounts without password material", func(t *testing.T) {
		mockSvc := new(mocks.UserService)
		mockSvc.On("FindAllUsers", mock.Anything).Return([]model.UserResponse{
			{ID: 1, Username: "alice", Email: "alice@example.com", Enabled: true},
			{ID: 2, Username: "bob", Email: "bob@example.com", Enabled: false},
		}, nil).Once()

		rec := httptest.NewRecorder()
		newUserRouter(mockSvc).ServeHTTP(rec, authedRequest(http.MethodGet, "/user/find-all"))

		assert.Equal(t, http.StatusOK, rec.Code)
		var users []model.UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		assert.Len(t, users, 2)
		assert.NotContains(t, rec.Body.String(), "password")
		mockSvc.AssertExpectations(t)
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("returns the account", func(t *testing.T) {
		mockSvc := new(mocks.UserService)
		mockSvc.On("GetUser", mock.Anything, uint(7)).
			Return(&model.UserResponse{ID: 7, Username: "alice", Email: "alice@example.com"}, nil).Once()

		rec := httptest.NewRecorder()
		newUserRouter(mockSvc).ServeHTTP(rec, authedRequest(http.MethodGet, "/user/7"))

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown id answers 404", func(t *testing.T) {
		mockSvc := new(mocks.UserService)
		mockSvc.On("GetUser", mock.Anything, uint(99)).
			Return(nil, model.NewAppError(model.CodeNotFound, "User not found", "", model.ErrNotFound)).Once()

		rec := httptest.NewRecorder()
		newUserRouter(mockSvc).ServeHTTP(rec, authedRequest(http.MethodGet, "/user/99"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-numeric id answers 400", func(t *testing.T) {
		mockSvc := new(mocks.UserService)

		rec := httptest.NewRecorder()
		newUserRouter(mockSvc).ServeHTTP(rec, authedRequest(http.MethodGet, "/user/abc"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	})
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("answers 204 on success", func(t *testing.T) {
		mockSvc := new(mocks.UserService)
		mockSvc.On("DeleteUser", mock.Anything, uint(7)).Return(nil).Once()

		rec := httptest.NewRecorder()
		newUserRouter(mockSvc).ServeHTTP(rec, authedRequest(http.MethodDelete, "/user/7"))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}
