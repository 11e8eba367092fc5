package service

import (
	"context"
	"sync"

	"notifygate/internal/domain"
	"notifygate/pkg/platform/sentinel"
)

// MemoryStore keeps service records in memory. It backs unit tests and
// deployments without a configured database, favoring clarity over
// performance.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.ServiceRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.ServiceRecord)}
}

func (s *MemoryStore) BySubscription(_ context.Context, subscriptionID string) (domain.ServiceRecord, error) {
	return s.get(subscriptionID)
}

func (s *MemoryStore) ByServiceID(_ context.Context, serviceID string) (domain.ServiceRecord, error) {
	return s.get(serviceID)
}

func (s *MemoryStore) get(id string) (domain.ServiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[id]; ok {
		return record.Clone(), nil
	}
	return domain.ServiceRecord{}, sentinel.ErrNotFound
}

func (s *MemoryStore) Upsert(_ context.Context, record domain.ServiceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ServiceID] = record.Clone()
	return nil
}
