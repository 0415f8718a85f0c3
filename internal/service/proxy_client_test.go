package service_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"climateviz_api/internal/config"
	"climateviz_api/internal/model"
	"climateviz_api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstreamConfig(serverURL string) *config.Config {
	return &config.Config{
		Upstream: config.UpstreamConfig{
			PredictionURL: serverURL,
			ChatURL:       serverURL,
			Timeout:       5 * time.Second,
		},
	}
}

func TestForecastClientPredict(t *testing.T) {
	t.Run("anonymous request carries no identity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/predict_future_weather/", r.URL.Path)
			assert.Equal(t, "Madrid", r.URL.Query().Get("city"))
			assert.Equal(t, "2", r.URL.Query().Get("days"))
			assert.Empty(t, r.URL.Query().Get("user_id"))
			assert.Empty(t, r.Header.Get("Authorization"))

			json.NewEncoder(w).Encode([]model.ForecastDay{
				{"date": "2025-06-01", "temperature": 21.5},
				{"date": "2025-06-02", "temperature": 19.0},
			})
		}))
		defer server.Close()

		client := service.NewForecastClient(upstreamConfig(server.URL))
		days, err := client.Predict(context.Background(), "Madrid", 2, nil, "")
		require.NoError(t, err)
		require.Len(t, days, 2)
		assert.Equal(t, "2025-06-01", days[0]["date"])
	})

	t.Run("authenticated request forwards user id and bearer token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "42", r.URL.Query().Get("user_id"))
			assert.Equal(t, "Bearer good.token.here", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode([]model.ForecastDay{})
		}))
		defer server.Close()

		userID := uint(42)
		client := service.NewForecastClient(upstreamConfig(server.URL))
		_, err := client.Predict(context.Background(), "Madrid", 7, &userID, "good.token.here")
		require.NoError(t, err)
	})

	t.Run("non-OK upstream status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer server.Close()

		client := service.NewForecastClient(upstreamConfig(server.URL))
		days, err := client.Predict(context.Background(), "Madrid", 2, nil, "")
		assert.Nil(t, days)
		assert.ErrorContains(t, err, "upstream status 502")
	})
}

func TestChatClientSendChat(t *testing.T) {
	t.Run("round-trips the message and keeps extra fields", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat_bot/", r.URL.Path)
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"message":"hello"}`, string(body))

			w.Write([]byte(`{"response":"hi there","model":"bot-1"}`))
		}))
		defer server.Close()

		client := service.NewChatClient(upstreamConfig(server.URL))
		resp, err := client.SendChat(context.Background(), &model.ChatRequest{Message: "hello"})
		require.NoError(t, err)
		assert.Equal(t, "hi there", resp.Response)
		assert.JSONEq(t, `"bot-1"`, string(resp.Extra["model"]))
	})

	t.Run("non-OK upstream status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := service.NewChatClient(upstreamConfig(server.URL))
		resp, err := client.SendChat(context.Background(), &model.ChatRequest{Message: "hello"})
		assert.Nil(t, resp)
		assert.ErrorContains(t, err, "upstream status 503")
	})
}
