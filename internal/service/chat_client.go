//go:generate mockery --name ChatClient --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"climateviz_api/internal/config"
	"climateviz_api/internal/middleware"
	"climateviz_api/internal/model"
)

// ChatClient is the outbound collaborator for the chat-bot service.
type ChatClient interface {
	SendChat(ctx context.Context, req *model.ChatRequest) (*model.ChatResponse, error)
}

type httpChatClient struct {
	baseURL string
	client  *http.Client
}

func NewChatClient(cfg *config.Config) ChatClient {
	return &httpChatClient{
		baseURL: cfg.Upstream.ChatURL,
		client:  &http.Client{Timeout: cfg.Upstream.Timeout},
	}
}

func (c *httpChatClient) SendChat(ctx context.Context, chatReq *model.ChatRequest) (*model.ChatResponse, error) {
	logger := middleware.GetLogger(ctx)

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("chatClient.SendChat: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat_bot/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("chatClient.SendChat: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("Chat request failed", "error", err)
		return nil, fmt.Errorf("chatClient.SendChat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("Chat service returned non-OK status", "status", resp.StatusCode)
		return nil, fmt.Errorf("chatClient.SendChat: upstream status %d", resp.StatusCode)
	}

	var chatResp model.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		logger.Error("Failed to decode chat response", "error", err)
		return nil, fmt.Errorf("chatClient.SendChat: %w", err)
	}
	return &chatResp, nil
}
