package fanout_service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog/log"

	"push-fanout-service/service/subscription_service"
)

// ChatLine is one inbound chat message to fan out.
type ChatLine struct {
	SenderID int64  `json:"senderId"`
	Sender   string `json:"sender"`
	Room     string `json:"room"`
	Content  string `json:"content"`
}

// BanChecker answers whether a named user is banned in a room.
type BanChecker interface {
	IsBanned(name, room string) bool
}

// Notifier delivers one message to a batch of device tokens. Delivery is
// best effort; implementations log and swallow their own failures.
type Notifier interface {
	Notify(ctx context.Context, tokens []string, message string)
}

// Center is the fan-out engine. For each chat line it scans the current
// subscription snapshot, applies the recipient filters and hands the
// surviving device tokens to the notifier as a single batch.
type Center struct {
	cache           *subscription_service.Cache
	bans            BanChecker
	notifier        Notifier
	systemSenderID  int64
	dispatchTimeout time.Duration
}

// NewCenter wires the fan-out engine. systemSenderID marks lines emitted
// by the system itself, which are never fanned out.
func NewCenter(cache *subscription_service.Cache, bans BanChecker, notifier Notifier, systemSenderID int64, dispatchTimeout time.Duration) *Center {
	if dispatchTimeout <= 0 {
		dispatchTimeout = 30 * time.Second
	}
	return &Center{
		cache:           cache,
		bans:            bans,
		notifier:        notifier,
		systemSenderID:  systemSenderID,
		dispatchTimeout: dispatchTimeout,
	}
}

const maxBodyRunes = 100

// FormatLine renders the push body as "[room] sender: content". Stored
// content carries HTML entities, so they are decoded first. Long bodies
// are cut to keep the push payload small.
func FormatLine(line ChatLine) string {
	content := html.UnescapeString(line.Content)
	if runes := []rune(content); len(runes) > maxBodyRunes {
		content = string(runes[:maxBodyRunes])
	}
	return fmt.Sprintf("[%s] %s: %s", line.Room, line.Sender, content)
}

// FindRecipients returns the device tokens that should receive the line.
// A subscriber is skipped when they are the sender, when they are banned
// in the room, when they are not a member of the room, or when the line
// fails their content filter.
func (c *Center) FindRecipients(line ChatLine) []string {
	var tokens []string
	for _, sub := range c.cache.Snapshot() {
		if sub.UserID == line.SenderID {
			continue
		}
		if c.bans != nil && c.bans.IsBanned(sub.Name, line.Room) {
			continue
		}
		if !sub.InRoom(line.Room) {
			continue
		}
		if !sub.Matches(line.Content) {
			continue
		}
		tokens = append(tokens, sub.DeviceToken)
	}
	return tokens
}

// HandleMessage runs one fan-out pass for the line. The scan and dispatch
// run on their own goroutine so a slow push gateway never backs up the
// chat feed. System lines are dropped before the scan.
func (c *Center) HandleMessage(line ChatLine) {
	if line.SenderID == c.systemSenderID {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("room", line.Room).
					Msg("fanout pass panicked")
			}
		}()

		tokens := c.FindRecipients(line)
		if len(tokens) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.dispatchTimeout)
		defer cancel()

		log.Debug().Int("recipients", len(tokens)).Str("room", line.Room).
			Msg("dispatching push batch")
		c.notifier.Notify(ctx, tokens, FormatLine(line))
	}()
}

// Dispatch runs one synchronous fan-out pass and reports how many devices
// were targeted. Used by the admin API for on-demand sends.
func (c *Center) Dispatch(ctx context.Context, line ChatLine) int {
	if line.SenderID == c.systemSenderID {
		return 0
	}
	tokens := c.FindRecipients(line)
	if len(tokens) == 0 {
		return 0
	}
	c.notifier.Notify(ctx, tokens, FormatLine(line))
	return len(tokens)
}
