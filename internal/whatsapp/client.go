package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fleetrent-backend/internal/logger"
)

// Client sends text messages through the Meta WhatsApp Cloud API.
type Client struct {
	baseURL     string
	accessToken string
	senderID    string // phone number ID registered with Meta
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken, senderID string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		senderID:    senderID,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText delivers a rendered message to a recipient phone number in
// international format (e.g. "+6281234567890").
func (c *Client) SendText(ctx context.Context, to, body string) error {
	payload := textPayload{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	payload.Text.Body = body

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.senderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	logger.ExternalServiceCall("whatsapp", "send_text", "to", to)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ExternalServiceResult("whatsapp", "send_text", err)
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		err := fmt.Errorf("whatsapp api returned %d: %s", resp.StatusCode, string(respBody))
		logger.ExternalServiceResult("whatsapp", "send_text", err)
		return err
	}
	logger.ExternalServiceResult("whatsapp", "send_text", nil)
	return nil
}
