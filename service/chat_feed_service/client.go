package chat_feed_service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zishang520/socket.io/clients/engine/v3/transports"
	socketio "github.com/zishang520/socket.io/clients/socket/v3"
	"github.com/zishang520/socket.io/v3/pkg/types"

	"push-fanout-service/service/fanout_service"
)

// Config holds the chat feed connection settings
type Config struct {
	ServerURL string `yaml:"server_url" json:"server_url"` // chat server address
	AuthKey   string `yaml:"auth_key" json:"auth_key"`     // feed auth key sent as a query param
	Path      string `yaml:"path" json:"path"`             // socket.io path, default "/socket.io/"
	Timeout   int    `yaml:"timeout" json:"timeout"`       // connect timeout in seconds, default 10
}

// Feed event names
const (
	EventChatLine = "chat_line"
	EventSysLine  = "sys_line"
)

// Client is the socket.io client that subscribes to the chat feed and
// hands each chat line to the fan-out callbacks.
type Client struct {
	config    *Config
	socket    *socketio.Socket
	connected bool
	mu        sync.RWMutex

	OnChatLine   func(fanout_service.ChatLine)
	OnConnect    func()
	OnDisconnect func()
	OnError      func(error)
}

// NewClient creates a new feed client
func NewClient(config *Config) *Client {
	if config.Path == "" {
		config.Path = "/socket.io/"
	}
	if config.Timeout == 0 {
		config.Timeout = 10
	}

	return &Client{
		config: config,
	}
}

// Start connects to the chat server. The socket.io layer handles
// reconnects on its own after the first successful dial.
func (c *Client) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.socket != nil && c.connected {
		return nil
	}

	options := socketio.DefaultOptions()
	options.SetTransports(types.NewSet(
		transports.Polling,
		transports.WebSocket,
	))
	options.SetPath(c.config.Path)
	options.SetQuery(
		url.Values{
			"authKey": {c.config.AuthKey},
		},
	)
	options.SetTimeout(time.Duration(c.config.Timeout) * time.Second)

	socket, err := socketio.Connect(c.config.ServerURL, options)
	if err != nil {
		log.Error().Err(err).Str("server", c.config.ServerURL).
			Msg("chat feed connect failed")
		if c.OnError != nil {
			go c.OnError(err)
		}
		return fmt.Errorf("connect chat feed: %w", err)
	}

	c.socket = socket
	c.setupEventHandlers()

	log.Info().Str("server", c.config.ServerURL).Msg("chat feed connecting")
	return nil
}

// Stop disconnects from the chat server
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.socket != nil {
		c.socket.Disconnect()
		c.socket = nil
	}
	c.connected = false

	if c.OnDisconnect != nil {
		go c.OnDisconnect()
	}

	log.Info().Msg("chat feed client stopped")
}

// IsConnected reports the current connection state
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.socket == nil {
		return false
	}

	// The underlying socket can race its own teardown, guard the call.
	connected := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic checking socket state")
				connected = false
			}
		}()
		connected = c.socket.Connected()
	}()

	return connected
}

func (c *Client) setupEventHandlers() {
	if c.socket == nil {
		return
	}

	c.socket.On("connect", func(data ...interface{}) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic in connect handler")
			}
		}()

		c.mu.Lock()
		c.connected = true
		c.mu.Unlock()

		log.Info().Msg("chat feed connected")

		if c.OnConnect != nil {
			go c.OnConnect()
		}
	})

	c.socket.On("disconnect", func(data ...interface{}) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic in disconnect handler")
			}
		}()

		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()

		log.Warn().Msg("chat feed disconnected")

		if c.OnDisconnect != nil {
			go c.OnDisconnect()
		}
	})

	c.socket.On("connect_error", func(data ...interface{}) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic in connect_error handler")
			}
		}()

		err := eventError(data, "connection error")
		log.Error().Err(err).Msg("chat feed connect error")

		if c.OnError != nil {
			go c.OnError(err)
		}
	})

	c.socket.On("error", func(data ...interface{}) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic in error handler")
			}
		}()

		err := eventError(data, "socket error")
		log.Error().Err(err).Msg("chat feed error")

		if c.OnError != nil {
			go c.OnError(err)
		}
	})

	c.socket.On(EventChatLine, func(data ...interface{}) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic in chat_line handler")
			}
		}()

		c.handleChatLine(data)
	})

	// System lines carry no sender and never fan out, logged for visibility.
	c.socket.On(EventSysLine, func(data ...interface{}) {
		defer func() {
			if r := recover(); r != nil {
				log.Warn().Interface("panic", r).Msg("panic in sys_line handler")
			}
		}()

		log.Debug().Int("args", len(data)).Msg("system line received")
	})
}

func (c *Client) handleChatLine(data []interface{}) {
	if len(data) == 0 || data[0] == nil {
		log.Warn().Msg("empty chat_line event")
		return
	}

	line, err := ParseChatLine(data[0])
	if err != nil {
		log.Warn().Err(err).Msg("dropping unparseable chat line")
		return
	}

	if c.OnChatLine != nil {
		c.OnChatLine(line)
	}
}

// ParseChatLine decodes one chat_line event payload. The feed delivers
// either a JSON string or an already-decoded object.
func ParseChatLine(raw interface{}) (fanout_service.ChatLine, error) {
	var line fanout_service.ChatLine

	var payload []byte
	switch v := raw.(type) {
	case string:
		payload = []byte(v)
	case []byte:
		payload = v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return line, fmt.Errorf("encode chat line payload: %w", err)
		}
		payload = encoded
	}

	if err := json.Unmarshal(payload, &line); err != nil {
		return line, fmt.Errorf("decode chat line: %w", err)
	}
	if line.Room == "" {
		return line, errors.New("chat line has no room")
	}
	return line, nil
}

func eventError(data []interface{}, prefix string) error {
	if len(data) > 0 && data[0] != nil {
		if e, ok := data[0].(error); ok {
			return e
		}
		return fmt.Errorf("%s: %v", prefix, data[0])
	}
	return fmt.Errorf("%s: unknown error", prefix)
}
