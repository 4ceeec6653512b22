package service

import (
	"DocVault/model"
	"sync"
	"time"

	"golang.org/x/net/context"
	"gorm.io/gorm"
)

// fakeLinkStore keeps links in memory, keyed by link_id.
type fakeLinkStore struct {
	mu     sync.Mutex
	nextID uint64
	links  map[string]model.Link
}

func newFakeLinkStore() *fakeLinkStore {
	return &fakeLinkStore{links: make(map[string]model.Link)}
}

func (s *fakeLinkStore) Create(ctx context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	link.ID = s.nextID
	link.CreatedAt = time.Now()
	s.links[link.LinkID] = *link
	return nil
}

func (s *fakeLinkStore) FindByLinkID(ctx context.Context, linkID string) (*model.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[linkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &link, nil
}

func (s *fakeLinkStore) Save(ctx context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[link.LinkID] = *link
	return nil
}

func (s *fakeLinkStore) Delete(ctx context.Context, link *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.links, link.LinkID)
	return nil
}

// fakeEventStore records appended viewer events.
type fakeEventStore struct {
	mu     sync.Mutex
	events []model.ViewerEvent
}

func (s *fakeEventStore) Append(ctx context.Context, event *model.ViewerEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *event)
	return nil
}

func (s *fakeEventStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

type fakeTokenEntry struct {
	value     []byte
	expiresAt time.Time
}

// fakeTokenStore mimics the Redis token store, including TTL handling
// and atomic consume.
type fakeTokenStore struct {
	mu      sync.Mutex
	entries map[string]fakeTokenEntry
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{entries: make(map[string]fakeTokenEntry)}
}

func (s *fakeTokenStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = fakeTokenEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *fakeTokenStore) Consume(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	delete(s.entries, key)
	if time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

// fakeMailer records sends and optionally fails.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	failed bool
	err    error
}

func (m *fakeMailer) Send(to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}
