package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"climateviz_api/internal/handlers"
	"climateviz_api/internal/model"
	"climateviz_api/internal/service/mocks"
)

func TestWeatherHandler_Predict(t *testing.T) {
	forecast := []model.ForecastDay{
		{"date": "2025-06-01", "temperature": 21.5},
		{"date": "2025-06-02", "temperature": 19.0},
	}

	tests := []struct {
		name           string
		target         string
		userID         *uint
		bearer         string
		setupMock      func(client *mocks.ForecastClient)
		expectedStatus int
		checkBody      func(t *testing.T, body []byte)
	}{
		{
			name:   "anonymous request within the day limit",
			target: "/weather/predict?city=Madrid&days=2",
			setupMock: func(client *mocks.ForecastClient) {
				client.On("Predict", mock.Anything, "Madrid", 2, (*uint)(nil), "").Return(forecast, nil).Once()
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body []byte) {
				var resp model.ForecastResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Len(t, resp.Data, 2)
			},
		},
		{
			name:           "anonymous request over the day limit is rejected",
			target:         "/weather/predict?city=Madrid&days=5",
			setupMock:      func(client *mocks.ForecastClient) {},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body []byte) {
				var resp model.APIErrorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, model.CodeAuthenticationFailed, resp.Error.Code)
				assert.Equal(t, "The user is not registered or has not logged in yet", resp.Error.Message)
			},
		},
		{
			name:   "authenticated request over the limit is forwarded with identity",
			target: "/weather/predict?city=Madrid&days=7",
			userID: ptr(uint(42)),
			bearer: "good.token.here",
			setupMock: func(client *mocks.ForecastClient) {
				client.On("Predict", mock.Anything, "Madrid", 7, ptr(uint(42)), "good.token.here").Return(forecast, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing city answers 400",
			target:         "/weather/predict?days=2",
			setupMock:      func(client *mocks.ForecastClient) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric days answers 400",
			target:         "/weather/predict?city=Madrid&days=soon",
			setupMock:      func(client *mocks.ForecastClient) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero days answers 400",
			target:         "/weather/predict?city=Madrid&days=0",
			setupMock:      func(client *mocks.ForecastClient) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "upstream failure answers 500",
			target: "/weather/predict?city=Madrid&days=1",
			setupMock: func(client *mocks.ForecastClient) {
				client.On("Predict", mock.Anything, "Madrid", 1, (*uint)(nil), "").Return(nil, context.DeadlineExceeded).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := new(mocks.ForecastClient)
			tc.setupMock(mockClient)
			h := handlers.NewWeatherHandler(mockClient, 2)

			req := httptest.NewRequest(http.MethodPost, tc.target, nil)
			if tc.userID != nil {
				req = req.WithContext(context.WithValue(req.Context(), model.UserIDKey, *tc.userID))
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			rec := httptest.NewRecorder()

			h.Predict(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.checkBody != nil {
				tc.checkBody(t, rec.Body.Bytes())
			}
			mockClient.AssertExpectations(t)
		})
	}
}

func ptr[T any](v T) *T { return &v }
