package subscription_service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"push-fanout-service/models"
)

// Subscription is one device's push registration. It is immutable once
// built; updates happen only through a full cache reload.
type Subscription struct {
	DeviceToken string
	UserID      int64
	Name        string
	Rooms       map[string]struct{}
	Regex       *regexp.Regexp
}

func newSubscription(row models.SubscriptionRow) (*Subscription, error) {
	if row.DeviceToken == "" {
		return nil, fmt.Errorf("empty device token for user %d", row.UserID)
	}

	re, err := regexp.Compile(row.Regex)
	if err != nil {
		return nil, fmt.Errorf("compile regex %q: %w", row.Regex, err)
	}

	rooms := make(map[string]struct{})
	for _, room := range strings.Split(row.Rooms, ",") {
		room = strings.TrimSpace(room)
		if room == "" {
			continue
		}
		rooms[room] = struct{}{}
	}

	return &Subscription{
		DeviceToken: row.DeviceToken,
		UserID:      row.UserID,
		Name:        row.Name,
		Rooms:       rooms,
		Regex:       re,
	}, nil
}

// InRoom reports whether the subscriber wants notifications for the room.
func (s *Subscription) InRoom(room string) bool {
	_, ok := s.Rooms[room]
	return ok
}

// Matches reports whether the message content passes the subscriber's
// content filter. The pattern is untrusted input, so evaluation is treated
// as fallible: any internal fault counts as no-match instead of failing
// the dispatch pass.
func (s *Subscription) Matches(content string) (matched bool) {
	if s.Regex == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("fault", r).Str("device", s.DeviceToken).
				Msg("regex evaluation fault, treating as no-match")
			matched = false
		}
	}()
	return s.Regex.MatchString(content)
}

// Cache holds the current subscription snapshot. The snapshot is an
// immutable slice replaced wholesale under the lock on every reload;
// readers grab the slice reference under the lock and scan it lock-free,
// so a slow scan never blocks a concurrent reload.
type Cache struct {
	store Store

	mu       sync.RWMutex
	snapshot []*Subscription
	byToken  map[string]*Subscription
}

// NewCache creates an empty cache. Call Reload to populate it.
func NewCache(store Store) *Cache {
	return &Cache{
		store:   store,
		byToken: make(map[string]*Subscription),
	}
}

// Reload rebuilds the snapshot from the backing store and swaps it in
// atomically. On a store error the previous snapshot stays active. Rows
// that fail to parse (typically a malformed regex) are skipped with a
// warning rather than failing the whole reload.
func (c *Cache) Reload(ctx context.Context) error {
	rows, err := c.store.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("reload subscription cache: %w", err)
	}

	snapshot := make([]*Subscription, 0, len(rows))
	byToken := make(map[string]*Subscription, len(rows))
	skipped := 0

	for _, row := range rows {
		sub, err := newSubscription(row)
		if err != nil {
			log.Warn().Err(err).Int64("userId", row.UserID).
				Msg("skipping malformed subscription row")
			skipped++
			continue
		}
		if _, dup := byToken[sub.DeviceToken]; dup {
			log.Warn().Str("device", sub.DeviceToken).
				Msg("skipping duplicate device token")
			skipped++
			continue
		}
		byToken[sub.DeviceToken] = sub
		snapshot = append(snapshot, sub)
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.byToken = byToken
	c.mu.Unlock()

	log.Info().Int("subscriptions", len(snapshot)).Int("skipped", skipped).
		Msg("subscription cache reloaded")
	return nil
}

// Snapshot returns the current immutable subscription list. The lock is
// held only long enough to grab the reference; callers scan without it.
func (c *Cache) Snapshot() []*Subscription {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// LookupByToken returns the subscription registered for a device token.
func (c *Cache) LookupByToken(token string) (*Subscription, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sub, ok := c.byToken[token]
	return sub, ok
}

// LookupByUser returns all subscriptions owned by the user. The result is
// a fresh slice so callers never share backing storage with the snapshot.
func (c *Cache) LookupByUser(userID int64) []*Subscription {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	var subs []*Subscription
	for _, sub := range snapshot {
		if sub.UserID == userID {
			subs = append(subs, sub)
		}
	}
	return subs
}

// Len reports the size of the current snapshot.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}

// AutoReload reloads the cache on a fixed interval until the context is
// cancelled. Reload failures keep the previous snapshot and are only
// logged; the next tick tries again.
func (c *Cache) AutoReload(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("periodic subscription reload failed")
			}
		}
	}
}
