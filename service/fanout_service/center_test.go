package fanout_service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"push-fanout-service/models"
	"push-fanout-service/service/subscription_service"
)

type rowStore struct {
	rows []models.SubscriptionRow
}

func (s *rowStore) FetchAll(ctx context.Context) ([]models.SubscriptionRow, error) {
	return s.rows, nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches [][]string
	bodies  []string
	done    chan struct{}
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, 8)}
}

func (n *recordingNotifier) Notify(ctx context.Context, tokens []string, message string) {
	n.mu.Lock()
	batch := make([]string, len(tokens))
	copy(batch, tokens)
	n.batches = append(n.batches, batch)
	n.bodies = append(n.bodies, message)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *recordingNotifier) batchCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.batches)
}

type banList map[string]map[string]bool

func (b banList) IsBanned(name, room string) bool {
	return b[room][name]
}

func buildCache(t *testing.T, rows []models.SubscriptionRow) *subscription_service.Cache {
	t.Helper()
	cache := subscription_service.NewCache(&rowStore{rows: rows})
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return cache
}

func TestFindRecipientsFilters(t *testing.T) {
	rows := []models.SubscriptionRow{
		{DeviceToken: "tok-sender", UserID: 10, Name: "sender", Rooms: "dev", Regex: ".*"},
		{DeviceToken: "tok-banned", UserID: 11, Name: "banned", Rooms: "dev", Regex: ".*"},
		{DeviceToken: "tok-elsewhere", UserID: 12, Name: "elsewhere", Rooms: "ops", Regex: ".*"},
		{DeviceToken: "tok-nomatch", UserID: 13, Name: "nomatch", Rooms: "dev", Regex: "never-seen"},
		{DeviceToken: "tok-hit", UserID: 14, Name: "hit", Rooms: "dev", Regex: "deploy"},
	}
	bans := banList{"dev": {"banned": true}}
	center := NewCenter(buildCache(t, rows), bans, newRecordingNotifier(), 0, time.Second)

	tokens := center.FindRecipients(ChatLine{SenderID: 10, Sender: "sender", Room: "dev", Content: "deploy finished"})
	if len(tokens) != 1 || tokens[0] != "tok-hit" {
		t.Fatalf("FindRecipients = %v, want [tok-hit]", tokens)
	}
}

func TestFindRecipientsBatchesAllMatches(t *testing.T) {
	rows := []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "a", Rooms: "dev", Regex: "alert"},
		{DeviceToken: "tok-b", UserID: 2, Name: "b", Rooms: "dev,ops", Regex: "alert"},
		{DeviceToken: "tok-c", UserID: 3, Name: "c", Rooms: "ops", Regex: "alert"},
	}
	center := NewCenter(buildCache(t, rows), banList{}, newRecordingNotifier(), 0, time.Second)

	tokens := center.FindRecipients(ChatLine{SenderID: 99, Sender: "x", Room: "dev", Content: "alert fired"})
	sort.Strings(tokens)
	if len(tokens) != 2 || tokens[0] != "tok-a" || tokens[1] != "tok-b" {
		t.Fatalf("FindRecipients = %v, want [tok-a tok-b]", tokens)
	}
}

func TestHandleMessageDispatchesOneBatch(t *testing.T) {
	rows := []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "a", Rooms: "dev", Regex: ".*"},
		{DeviceToken: "tok-b", UserID: 2, Name: "b", Rooms: "dev", Regex: ".*"},
	}
	notifier := newRecordingNotifier()
	center := NewCenter(buildCache(t, rows), banList{}, notifier, 0, time.Second)

	center.HandleMessage(ChatLine{SenderID: 99, Sender: "x", Room: "dev", Content: "hello"})

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier never called")
	}
	if got := notifier.batchCount(); got != 1 {
		t.Fatalf("batches = %d, want 1 combined dispatch", got)
	}
	if len(notifier.batches[0]) != 2 {
		t.Fatalf("batch size = %d, want 2", len(notifier.batches[0]))
	}
	if want := "[dev] x: hello"; notifier.bodies[0] != want {
		t.Errorf("body = %q, want %q", notifier.bodies[0], want)
	}
}

func TestHandleMessageNoRecipientsNoDispatch(t *testing.T) {
	rows := []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "a", Rooms: "ops", Regex: ".*"},
	}
	notifier := newRecordingNotifier()
	center := NewCenter(buildCache(t, rows), banList{}, notifier, 0, time.Second)

	center.HandleMessage(ChatLine{SenderID: 99, Sender: "x", Room: "dev", Content: "hello"})

	select {
	case <-notifier.done:
		t.Fatal("dispatch should be skipped when nobody matches")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHandleMessageSkipsSystemSender(t *testing.T) {
	rows := []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "a", Rooms: "dev", Regex: ".*"},
	}
	notifier := newRecordingNotifier()
	center := NewCenter(buildCache(t, rows), banList{}, notifier, 0, time.Second)

	center.HandleMessage(ChatLine{SenderID: 0, Sender: "~", Room: "dev", Content: "motd"})

	select {
	case <-notifier.done:
		t.Fatal("system lines must not fan out")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDispatchSynchronous(t *testing.T) {
	rows := []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "a", Rooms: "dev", Regex: ".*"},
	}
	notifier := newRecordingNotifier()
	center := NewCenter(buildCache(t, rows), banList{}, notifier, 0, time.Second)

	n := center.Dispatch(context.Background(), ChatLine{SenderID: 99, Sender: "x", Room: "dev", Content: "ping"})
	if n != 1 {
		t.Fatalf("Dispatch = %d, want 1", n)
	}
	if notifier.batchCount() != 1 {
		t.Fatal("notifier should have been called once")
	}
}

func TestFormatLineDecodesEntities(t *testing.T) {
	got := FormatLine(ChatLine{Sender: "alice", Room: "dev", Content: "a &lt;b&gt; &amp; c"})
	if want := "[dev] alice: a <b> & c"; got != want {
		t.Errorf("FormatLine = %q, want %q", got, want)
	}
}

func TestFormatLineTruncatesLongBody(t *testing.T) {
	got := FormatLine(ChatLine{Sender: "alice", Room: "dev", Content: strings.Repeat("я", 300)})
	if want := "[dev] alice: " + strings.Repeat("я", 100); got != want {
		t.Errorf("truncation wrong, got %d runes of content", len([]rune(got)))
	}
}

func TestRecipientsReflectReload(t *testing.T) {
	store := &rowStore{rows: []models.SubscriptionRow{
		{DeviceToken: "tok-a", UserID: 1, Name: "a", Rooms: "dev", Regex: ".*"},
	}}
	cache := subscription_service.NewCache(store)
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	center := NewCenter(cache, banList{}, newRecordingNotifier(), 0, time.Second)

	line := ChatLine{SenderID: 99, Sender: "x", Room: "dev", Content: "hi"}
	if got := center.FindRecipients(line); len(got) != 1 {
		t.Fatalf("before reload: %v", got)
	}

	store.rows = []models.SubscriptionRow{
		{DeviceToken: "tok-b", UserID: 2, Name: "b", Rooms: "dev", Regex: ".*"},
	}
	if err := cache.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	got := center.FindRecipients(line)
	if len(got) != 1 || got[0] != "tok-b" {
		t.Fatalf("after reload: %v, want [tok-b]", got)
	}
}
