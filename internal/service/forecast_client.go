//go:generate mockery --name ForecastClient --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"climateviz_api/internal/config"
	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
)

// ForecastClient is the outbound collaborator for the weather-prediction
// service.
type ForecastClient interface {
	// Predict fetches the forecast for city over the given number of days.
	// userID and bearerToken are forwarded when the caller is authenticated;
	// pass nil/"" for anonymous requests.
	Predict(ctx context.Context, city string, days int, userID *uint, bearerToken string) ([]model.ForecastDay, error)
}

type httpForecastClient struct {
	baseURL string
	client  *http.Client
}

func NewForecastClient(cfg *config.Config) ForecastClient {
	return &httpForecastClient{
		baseURL: cfg.Upstream.PredictionURL,
		client:  &http.Client{Timeout: cfg.Upstream.Timeout},
	}
}

func (c *httpForecastClient) Predict(ctx context.Context, city string, days int, userID *uint, bearerToken string) ([]model.ForecastDay, error) {
	logger := middleware.GetLogger(ctx)

	query := url.Values{}
	query.Set("city", city)
	query.Set("days", strconv.Itoa(days))
	if userID != nil {
		query.Set("user_id", strconv.FormatUint(uint64(*userID), 10))
	}
	endpoint := fmt.Sprintf("%s/predict_future_weather/?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("forecastClient.Predict: %w", err)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("Prediction request failed", "error", err, "city", city)
		return nil, fmt.Errorf("forecastClient.Predict: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Prediction service returned non-OK status", "status", resp.StatusCode, "city", city)
		return nil, fmt.Errorf("forecastClient.Predict: upstream status %d", resp.StatusCode)
	}

	var prediction []model.ForecastDay
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		logger.Error("Failed to decode prediction response", "error", err)
		return nil, fmt.Errorf("forecastClient.Predict: %w", err)
	}
	return prediction, nil
}
