package handlers

import (
	"net/http"
	"strconv"

	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
	"climateviz_api/internal/service"
	"climateviz_api/internal/webutil"
)

type WeatherHandler struct {
	client            service.ForecastClient
	anonymousDayLimit int
}

func NewWeatherHandler(client service.ForecastClient, anonymousDayLimit int) *WeatherHandler {
	return &WeatherHandler{client: client, anonymousDayLimit: anonymousDayLimit}
}

// Predict proxies a forecast request upstream. Authorization policy:
// anonymous callers may request at most the configured number of days;
// authenticated callers are forwarded with their user id and bearer token.
func (h *WeatherHandler) Predict(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	city := r.URL.Query().Get("city")
	if city == "" {
		appErr := model.NewAppError(model.CodeValidationError, "The city parameter is required.", "city", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days <= 0 {
		appErr := model.NewAppError(model.CodeValidationError, "The days parameter must be a positive number.", "days", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	var userID *uint
	var bearerToken string
	if id, ok := middleware.UserIDFromContext(r.Context()); ok {
		userID = &id
		bearerToken, _ = middleware.BearerToken(r)
	} else if days > h.anonymousDayLimit {
		logger.Warn("Anonymous forecast request over the day limit", "days", days, "limit", h.anonymousDayLimit)
		appErr := model.NewAppError(model.CodeAuthenticationFailed,
			"The user is not registered or has not logged in yet", "", model.ErrUnauthorized)
		webutil.HandleError(w, logger, appErr)
		return
	}

	prediction, err := h.client.Predict(r.Context(), city, days, userID, bearerToken)
	if err != nil {
		logger.Error("Forecast proxy failed", "error", err, "city", city)
		appErr := model.NewAppError(model.CodeInternalServerError, "Failed to fetch the weather prediction.", "", err)
		webutil.HandleError(w, logger, appErr)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, model.ForecastResponse{Data: prediction}, logger)
}
