package subscription_service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"push-fanout-service/models"
)

type stubStore struct {
	mu   sync.Mutex
	rows []models.SubscriptionRow
	err  error
}

func (s *stubStore) FetchAll(ctx context.Context) ([]models.SubscriptionRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.SubscriptionRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubStore) set(rows []models.SubscriptionRow, err error) {
	s.mu.Lock()
	s.rows, s.err = rows, err
	s.mu.Unlock()
}

func TestReloadBuildsSnapshot(t *testing.T) {
	store := &stubStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "alice", Rooms: "home,dev", Regex: "deploy"},
		{DeviceToken: "tok-b", UserID: 2, Name: "bob", Rooms: "home", Regex: ".*"},
	}}
	cache := NewCache(store)

	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cache.Len() != 2 {
		t.Fatalf("Len = %d, want 2", cache.Len())
	}

	sub, ok := cache.LookupByToken("tok-a")
	if !ok {
		t.Fatal("LookupByToken(tok-a) not found")
	}
	if !sub.InRoom("dev") || sub.InRoom("ops") {
		t.Errorf("rooms parsed wrong: %v", sub.Rooms)
	}
	if !sub.Matches("nightly deploy done") {
		t.Error("regex should match")
	}
	if sub.Matches("nothing here") {
		t.Error("regex should not match")
	}
}

func TestReloadSkipsMalformedRows(t *testing.T) {
	store := &stubStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-bad", UserID: 1, Name: "alice", Rooms: "home", Regex: "(["},
		{DeviceToken: "", UserID: 2, Name: "bob", Rooms: "home", Regex: "ok"},
		{DeviceToken: "tok-good", UserID: 3, Name: "carol", Rooms: "home", Regex: "ok"},
	}}
	cache := NewCache(store)

	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cache.Len())
	}
	if _, ok := cache.LookupByToken("tok-good"); !ok {
		t.Error("valid row should survive a partial reload")
	}
	if _, ok := cache.LookupByToken("tok-bad"); ok {
		t.Error("malformed regex row should be skipped")
	}
}

func TestReloadSkipsDuplicateTokens(t *testing.T) {
	store := &stubStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "alice", Rooms: "home", Regex: "x"},
		{DeviceToken: "tok-a", UserID: 2, Name: "bob", Rooms: "home", Regex: "y"},
	}}
	cache := NewCache(store)

	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len = %d, want 1", cache.Len())
	}
	sub, _ := cache.LookupByToken("tok-a")
	if sub.UserID != 1 {
		t.Errorf("first row should win, got userId %d", sub.UserID)
	}
}

func TestReloadFailureKeepsOldSnapshot(t *testing.T) {
	store := &stubStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "alice", Rooms: "home", Regex: "x"},
	}}
	cache := NewCache(store)
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	store.set(nil, errors.New("connection refused"))
	if err := cache.Reload(context.Background()); err == nil {
		t.Fatal("Reload should surface the store error")
	}
	if cache.Len() != 1 {
		t.Fatalf("old snapshot should remain, Len = %d", cache.Len())
	}
	if _, ok := cache.LookupByToken("tok-a"); !ok {
		t.Error("old snapshot entry should still resolve")
	}
}

func TestLookupByUser(t *testing.T) {
	store := &stubStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "alice", Rooms: "home", Regex: "x"},
		{DeviceToken: "tok-b", UserID: 1, Name: "alice", Rooms: "home", Regex: "y"},
		{DeviceToken: "tok-c", UserID: 2, Name: "bob", Rooms: "home", Regex: "z"},
	}}
	cache := NewCache(store)
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	subs := cache.LookupByUser(1)
	if len(subs) != 2 {
		t.Fatalf("LookupByUser(1) = %d subs, want 2", len(subs))
	}
	if subs := cache.LookupByUser(99); len(subs) != 0 {
		t.Errorf("unknown user should have no subs, got %d", len(subs))
	}
}

func TestConcurrentReadersDuringReload(t *testing.T) {
	store := &stubStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "alice", Rooms: "home", Regex: "x"},
	}}
	cache := NewCache(store)
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				// Every observed snapshot must be internally consistent.
				for _, sub := range cache.Snapshot() {
					if sub.DeviceToken == "" {
						t.Error("torn read: empty token in snapshot")
						return
					}
				}
				cache.LookupByToken("tok-a")
			}
		}()
	}

	for i := 0; i < 100; i++ {
		if err := cache.Reload(context.Background()); err != nil {
			t.Fatalf("Reload: %v", err)
		}
	}
	close(done)
	wg.Wait()
}

func TestMatchesNilRegex(t *testing.T) {
	sub := &Subscription{DeviceToken: "tok-a"}
	if sub.Matches("anything") {
		t.Error("nil regex should never match")
	}
}
