package message

import (
	"context"
	"sync"

	"notifygate/internal/domain"
	"notifygate/pkg/platform/sentinel"
)

// Store persists accepted messages, keyed by recipient and message id.
// Not-found is reported with sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, msg Message) error
	Get(ctx context.Context, fiscalCode domain.FiscalCode, id string) (Message, error)
}

// MemoryStore keeps messages in memory; message delivery and durable storage
// live in downstream systems outside this service.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string]Message
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{messages: make(map[string]Message)}
}

func key(fiscalCode domain.FiscalCode, id string) string {
	return string(fiscalCode) + "/" + id
}

func (s *MemoryStore) Create(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[key(msg.FiscalCode, msg.ID)] = msg
	return nil
}

func (s *MemoryStore) Get(_ context.Context, fiscalCode domain.FiscalCode, id string) (Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if msg, ok := s.messages[key(fiscalCode, id)]; ok {
		return msg, nil
	}
	return Message{}, sentinel.ErrNotFound
}
