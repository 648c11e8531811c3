// Package memory talks to the hosted Mem0 service that keeps long-term
// conversational memory per user. Writes are best-effort by contract; the
// caller decides whether to await them.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MohamedRasheqA/teachback/internal/config"
	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
)

// Client is a minimal REST client for the memories endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a memory client from configuration.
func NewClient(cfg config.MemoryConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type memoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type addMemoriesRequest struct {
	Messages []memoryMessage `json:"messages"`
	UserID   string          `json:"user_id"`
}

// Write appends the full turn list against the caller-scoped identifier.
func (c *Client) Write(ctx context.Context, userID string, messages []chat.Message) error {
	payload := addMemoriesRequest{
		Messages: make([]memoryMessage, 0, len(messages)),
		UserID:   userID,
	}
	for _, msg := range messages {
		payload.Messages = append(payload.Messages, memoryMessage{Role: msg.Role, Content: msg.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding memory payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/memories/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building memory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Upstreamf("writing memories", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errs.Upstreamf("writing memories", fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}

	return nil
}
