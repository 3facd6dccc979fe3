package onesignal_service

import (
	"fmt"
	"time"
)

// Config represents the configuration for the OneSignal push gateway
type Config struct {
	// Gateway endpoint and credentials
	URL    string `yaml:"url" json:"url"`         // Notification create endpoint
	AppID  string `yaml:"app_id" json:"app_id"`   // OneSignal application id
	APIKey string `yaml:"api_key" json:"api_key"` // REST API key, sent as Basic auth

	// HTTP client settings
	Timeout time.Duration `yaml:"timeout" json:"timeout"` // Request timeout

	// Push notification settings
	Sound string `yaml:"sound" json:"sound"` // Sound file shipped in the mobile apps
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		URL:     DefaultURL,
		Timeout: DefaultTimeout,
		Sound:   "chatNotification.wav",
	}
}

// ApplyDefaults applies default values to missing configuration fields
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.URL == "" {
		c.URL = defaults.URL
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.Sound == "" {
		c.Sound = defaults.Sound
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.AppID == "" {
		return fmt.Errorf("push gateway app_id is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("push gateway api_key is required")
	}
	if c.Timeout < 0 {
		c.Timeout = DefaultConfig().Timeout
	}
	return nil
}
