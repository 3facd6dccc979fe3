package onesignal_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

const (
	// OneSignal notification create endpoint
	DefaultURL = "https://onesignal.com/api/v1/notifications"

	// Default timeout
	DefaultTimeout = 10 * time.Second
)

// Client represents the OneSignal push gateway client
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewClient creates a new OneSignal client from config
func NewClient(cfg *Config) *Client {
	cfg.ApplyDefaults()
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:    cfg.URL,
		apiKey: cfg.APIKey,
	}
}

// NotificationPacket is one create-notification request. One packet fans
// out to every device token in IncludePlayerIDs.
type NotificationPacket struct {
	AppID            string            `json:"app_id"`
	Contents         map[string]string `json:"contents"`
	IncludePlayerIDs []string          `json:"include_player_ids"`
	Data             map[string]string `json:"data,omitempty"`
	IOSBadgeType     string            `json:"ios_badgeType,omitempty"`
	IOSBadgeCount    int               `json:"ios_badgeCount,omitempty"`
	IOSSound         string            `json:"ios_sound,omitempty"`
	AndroidSound     string            `json:"android_sound,omitempty"`
}

// PushResponse represents the gateway response. Only the errors array is
// inspected; a response without it counts as accepted.
type PushResponse struct {
	ID         string   `json:"id,omitempty"`
	Recipients int      `json:"recipients,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// NewPacket builds a notification packet for the given tokens and body
// using the config's app id and sound. Android expects the sound name
// without its file extension, iOS with it.
func NewPacket(cfg *Config, tokens []string, message string, data map[string]string) *NotificationPacket {
	return &NotificationPacket{
		AppID:            cfg.AppID,
		Contents:         map[string]string{"en": message},
		IncludePlayerIDs: tokens,
		Data:             data,
		IOSBadgeType:     "Increase",
		IOSBadgeCount:    1,
		IOSSound:         cfg.Sound,
		AndroidSound:     strings.TrimSuffix(cfg.Sound, path.Ext(cfg.Sound)),
	}
}

// Send posts one notification packet to the gateway
func (c *Client) Send(ctx context.Context, packet *NotificationPacket) (*PushResponse, error) {
	if len(packet.IncludePlayerIDs) == 0 {
		return nil, fmt.Errorf("no device tokens to send")
	}

	jsonData, err := json.Marshal(packet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal packet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var pushResponse PushResponse
	if err := json.Unmarshal(body, &pushResponse); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &pushResponse, nil
}
