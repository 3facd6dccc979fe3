package roomban_service

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/rs/zerolog/log"
)

// Config holds the ban store settings
type Config struct {
	DBPath string `yaml:"db_path" json:"db_path"` // database file path
	FS     vfs.FS `yaml:"-" json:"-"`             // overridable for in-memory stores
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DBPath: "./data/roombans",
	}
}

// BanRecord is one room-level ban as persisted in the store
type BanRecord struct {
	Name     string    `json:"name"`
	Room     string    `json:"room"`
	Reason   string    `json:"reason,omitempty"`
	BannedAt time.Time `json:"bannedAt"`
}

// Service is the pebble-backed room ban store. Lookups happen on the
// fan-out hot path, so a read failure counts as not banned instead of
// blocking delivery.
type Service struct {
	mu   sync.RWMutex
	db   *pebble.DB
	path string
}

// NewService opens the ban store at the configured path
func NewService(config *Config) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	opts := &pebble.Options{
		Cache:                 pebble.NewCache(8 << 20),
		FormatMajorVersion:    pebble.FormatNewest,
		L0CompactionThreshold: 2,
		MemTableSize:          8 << 20,
	}
	if config.FS != nil {
		opts.FS = config.FS
	}

	db, err := pebble.Open(config.DBPath, opts)
	if err != nil {
		return nil, fmt.Errorf("open ban store %s: %w", config.DBPath, err)
	}

	log.Info().Str("path", config.DBPath).Msg("room ban store opened")
	return &Service{db: db, path: config.DBPath}, nil
}

// Close closes the backing database
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close ban store: %w", err)
	}
	return nil
}

// Keys are "room\x00name" so one iterator prefix scan lists a room's bans.
func banKey(room, name string) []byte {
	return []byte(room + "\x00" + strings.ToLower(name))
}

// Ban records that the named user is banned in the room
func (s *Service) Ban(name, room, reason string) error {
	if name == "" || room == "" {
		return fmt.Errorf("name and room are required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("ban store is closed")
	}

	record := BanRecord{
		Name:     strings.ToLower(name),
		Room:     room,
		Reason:   reason,
		BannedAt: time.Now().UTC(),
	}
	value, err := json.Marshal(&record)
	if err != nil {
		return fmt.Errorf("marshal ban record: %w", err)
	}

	if err := s.db.Set(banKey(room, name), value, pebble.Sync); err != nil {
		return fmt.Errorf("write ban record: %w", err)
	}
	return nil
}

// Unban removes the ban for the named user in the room
func (s *Service) Unban(name, room string) error {
	if name == "" || room == "" {
		return fmt.Errorf("name and room are required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("ban store is closed")
	}

	if err := s.db.Delete(banKey(room, name), pebble.Sync); err != nil {
		return fmt.Errorf("delete ban record: %w", err)
	}
	return nil
}

// IsBanned reports whether the named user is banned in the room. Store
// errors are logged and answered as not banned.
func (s *Service) IsBanned(name, room string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return false
	}

	_, closer, err := s.db.Get(banKey(room, name))
	if err == pebble.ErrNotFound {
		return false
	}
	if err != nil {
		log.Warn().Err(err).Str("name", name).Str("room", room).
			Msg("ban lookup failed, treating as not banned")
		return false
	}
	closer.Close()
	return true
}

// BannedIn lists all ban records for a room
func (s *Service) BannedIn(room string) ([]BanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("ban store is closed")
	}

	prefix := []byte(room + "\x00")
	upper := []byte(room + "\x01")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: upper,
	})
	if err != nil {
		return nil, fmt.Errorf("scan ban records: %w", err)
	}
	defer iter.Close()

	var records []BanRecord
	for iter.First(); iter.Valid(); iter.Next() {
		var record BanRecord
		if err := json.Unmarshal(iter.Value(), &record); err != nil {
			log.Warn().Err(err).Str("key", string(iter.Key())).
				Msg("skipping corrupt ban record")
			continue
		}
		records = append(records, record)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scan ban records: %w", err)
	}
	return records, nil
}

var (
	globalService *Service
	globalMu      sync.RWMutex
)

// InitGlobalService opens the process-wide ban store
func InitGlobalService(config *Config) error {
	service, err := NewService(config)
	if err != nil {
		return err
	}

	globalMu.Lock()
	globalService = service
	globalMu.Unlock()
	return nil
}

// GetGlobalService returns the process-wide ban store, or nil before init
func GetGlobalService() *Service {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalService
}
