package verification

import (
	"context"
	"sort"
	"sync"
)

type recordKey struct {
	entityType EntityType
	entityID   string
	fieldName  string
}

// MemoryStore keeps verification state in process memory. It backs the
// fixture-driven mode and the test suite; the pgx store is the production
// implementation of the same interface.
type MemoryStore struct {
	mu      sync.Mutex
	records map[recordKey]FieldVerification
	audits  map[string][]AuditEntry
	seq     int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[recordKey]FieldVerification),
		audits:  make(map[string][]AuditEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, entityType EntityType, entityID, fieldName string) (*FieldVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[recordKey{entityType, entityID, fieldName}]
	if !ok {
		return nil, nil
	}
	copied := record
	return &copied, nil
}

func (s *MemoryStore) ListForEntity(_ context.Context, entityType EntityType, entityID string) ([]FieldVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []FieldVerification
	for key, record := range s.records {
		if key.entityType == entityType && key.entityID == entityID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldName < out[j].FieldName })
	return out, nil
}

func (s *MemoryStore) Apply(_ context.Context, changes []Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, change := range changes {
		s.seq++
		key := recordKey{change.Record.EntityType, change.Record.EntityID, change.Record.FieldName}
		s.records[key] = change.Record

		entry := change.Audit
		entry.Seq = s.seq
		s.audits[entry.VerificationID] = append(s.audits[entry.VerificationID], entry)
	}
	return nil
}

func (s *MemoryStore) History(_ context.Context, verificationID string) ([]AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.audits[verificationID]
	out := make([]AuditEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].Seq > out[j].Seq
		}
		return out[i].ChangedAt.After(out[j].ChangedAt)
	})
	return out, nil
}

func (s *MemoryStore) CountByStatus(_ context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int)
	for _, record := range s.records {
		out[string(record.Status)]++
	}
	return out, nil
}
