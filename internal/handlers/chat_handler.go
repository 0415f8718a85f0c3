package handlers

import (
	"errors"
	"net/http"

	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/service"
	"climateviz_api/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type ChatHandler struct {
	client service.ChatClient
}

func NewChatHandler(client service.ChatClient) *ChatHandler {
	return &ChatHandler{client: client}
}

// Send forwards a chat message to the upstream bot and returns its answer
// as-is.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	var req model.ChatRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode chat request body", "error", err)
		appErr := model.NewAppError(model.CodeValidationError, "Malformed request body.", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			webutil.HandleError(w, logger, err)
		}
		return
	}

	response, err := h.client.SendChat(r.Context(), &req)
	if err != nil {
		logger.Error("Chat proxy failed", "error", err)
		appErr := model.NewAppError(model.CodeInternalServerError, "Failed to reach the chat service.", "", err)
		webutil.HandleError(w, logger, appErr)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, response, logger)
}
