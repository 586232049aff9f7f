package verification

import "context"

// Change pairs the record state after a write with the audit entry that
// describes it. Apply persists a batch of changes atomically: callers never
// observe a record updated without its audit entry, or half of a bulk
// verify.
type Change struct {
	Record FieldVerification
	Audit  AuditEntry
}

type StoreAPI interface {
	Get(ctx context.Context, entityType EntityType, entityID, fieldName string) (*FieldVerification, error)
	ListForEntity(ctx context.Context, entityType EntityType, entityID string) ([]FieldVerification, error)
	Apply(ctx context.Context, changes []Change) error
	// History returns entries newest-first; ties on changedAt break by
	// reversed insertion order.
	History(ctx context.Context, verificationID string) ([]AuditEntry, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}
