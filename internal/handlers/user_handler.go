package handlers

import (
	"net/http"
	"strconv"

	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/service"
	"climateviz_api/internal/webutil"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves the user-management surface. Routes are mounted behind
// the RequireUser gate.
type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	users, err := h.service.FindAllUsers(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, users, logger)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	id, err := userIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, user, logger)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	id, err := userIDParam(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func userIDParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "user_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, model.NewAppError(model.CodeValidationError, "The user id must be a number.", "user_id", model.ErrInvalidInput)
	}
	return uint(id), nil
}
