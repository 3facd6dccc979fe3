package chat_feed_service

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"push-fanout-service/service/fanout_service"
)

// Manager owns the feed client and routes chat lines into the fan-out
// engine.
type Manager struct {
	client *Client
	config *Config
	center *fanout_service.Center
	mu     sync.RWMutex
}

// NewManager creates a manager bound to the fan-out engine
func NewManager(config *Config, center *fanout_service.Center) *Manager {
	return &Manager{
		config: config,
		center: center,
		client: NewClient(config),
	}
}

// Start connects the feed and begins routing lines
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.center == nil {
		return errors.New("fanout center not set")
	}

	m.client.OnChatLine = func(line fanout_service.ChatLine) {
		m.center.HandleMessage(line)
	}
	m.client.OnConnect = func() {
		log.Info().Str("server", m.config.ServerURL).Msg("chat feed routing started")
	}
	m.client.OnDisconnect = func() {
		log.Warn().Msg("chat feed routing paused, waiting for reconnect")
	}
	m.client.OnError = func(err error) {
		log.Error().Err(err).Msg("chat feed client error")
	}

	return m.client.Start()
}

// Stop disconnects the feed
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		m.client.Stop()
	}
}

// IsRunning checks whether the feed is connected
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.client != nil && m.client.IsConnected()
}
