package onesignal_service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Notifier is the best-effort delivery wrapper around the gateway client.
// Delivery failures are logged and swallowed so the fan-out pass that
// requested the send never observes them.
type Notifier struct {
	client *Client
	cfg    *Config
}

// NewNotifier creates a notifier. Config defaults are applied; Validate
// must have passed before this point.
func NewNotifier(cfg *Config) *Notifier {
	cfg.ApplyDefaults()
	return &Notifier{
		client: NewClient(cfg),
		cfg:    cfg,
	}
}

// Notify sends one batched notification to all tokens. Network errors,
// bad status codes and gateway-reported errors all end up as log lines.
func (n *Notifier) Notify(ctx context.Context, tokens []string, message string) {
	if len(tokens) == 0 {
		return
	}

	packet := NewPacket(n.cfg, tokens, message, nil)
	resp, err := n.client.Send(ctx, packet)
	if err != nil {
		log.Error().Err(err).Int("tokens", len(tokens)).
			Msg("push delivery failed")
		return
	}

	if len(resp.Errors) > 0 {
		log.Warn().Str("errors", strings.Join(resp.Errors, ", ")).
			Int("tokens", len(tokens)).Msg("push gateway reported errors")
		return
	}

	log.Debug().Str("id", resp.ID).Int("tokens", len(tokens)).
		Msg("push batch accepted")
}
