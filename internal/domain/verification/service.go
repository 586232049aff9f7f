package verification

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidEntityType = errors.New("invalid entity type")

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Get(ctx context.Context, entityType EntityType, entityID, fieldName string) (*FieldVerification, error) {
	if err := validateKey(entityType, entityID, fieldName); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, entityType, entityID, fieldName)
}

func (s *Service) ListForEntity(ctx context.Context, entityType EntityType, entityID string) ([]FieldVerification, error) {
	if !entityType.Valid() {
		return nil, ErrInvalidEntityType
	}
	return s.store.ListForEntity(ctx, entityType, entityID)
}

// SetFieldValue upserts the field's current value. Verification state only
// moves when verify is set: editing a field does not silently unverify it.
// The record update and its audit entry are applied as one unit.
func (s *Service) SetFieldValue(ctx context.Context, entityType EntityType, entityID, fieldName string, newValue *string, verify bool, source Source, actor string) (*FieldVerification, error) {
	if err := validateKey(entityType, entityID, fieldName); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, entityType, entityID, fieldName)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := s.baseRecord(existing, entityType, entityID, fieldName, now)
	if source != "" {
		record.Source = source
	}

	oldStatus := record.Status
	oldValue := record.CurrentValue
	record.CurrentValue = newValue
	record.UpdatedAt = now
	if verify {
		record.Status = StatusVerified
		record.VerifiedBy = actor
		record.VerifiedAt = &now
	}

	entry := AuditEntry{
		ID:             uuid.NewString(),
		VerificationID: record.ID,
		Action:         ActionValueUpdate,
		OldValue:       oldValue,
		NewValue:       newValue,
		ChangedBy:      actor,
		ChangedAt:      now,
	}
	if existing == nil {
		entry.OldValue = nil
	}
	if record.Status != oldStatus {
		entry.OldStatus = &oldStatus
		newStatus := record.Status
		entry.NewStatus = &newStatus
	}

	if err := s.store.Apply(ctx, []Change{{Record: record, Audit: entry}}); err != nil {
		return nil, err
	}
	return &record, nil
}

// ToggleVerified flips the status without touching the current value.
func (s *Service) ToggleVerified(ctx context.Context, entityType EntityType, entityID, fieldName, actor string) (*FieldVerification, error) {
	if err := validateKey(entityType, entityID, fieldName); err != nil {
		return nil, err
	}

	existing, err := s.store.Get(ctx, entityType, entityID, fieldName)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := s.baseRecord(existing, entityType, entityID, fieldName, now)
	target := StatusVerified
	if record.Status == StatusVerified {
		target = StatusUnverified
	}

	change := statusChange(record, target, actor, now)
	if err := s.store.Apply(ctx, []Change{change}); err != nil {
		return nil, err
	}
	return &change.Record, nil
}

// BulkSetVerified drives every named field to the requested state in a
// single atomic batch. Fields already in that state are left untouched so
// "Verify All" does not manufacture audit noise.
func (s *Service) BulkSetVerified(ctx context.Context, entityType EntityType, entityID string, fieldNames []string, verified bool, actor string) error {
	if !entityType.Valid() {
		return ErrInvalidEntityType
	}

	target := StatusUnverified
	if verified {
		target = StatusVerified
	}

	now := s.now().UTC()
	var changes []Change
	for _, fieldName := range fieldNames {
		if _, err := ParseFieldPath(fieldName); err != nil {
			return err
		}
		existing, err := s.store.Get(ctx, entityType, entityID, fieldName)
		if err != nil {
			return err
		}
		if existing == nil && target == StatusUnverified {
			continue
		}
		record := s.baseRecord(existing, entityType, entityID, fieldName, now)
		if record.Status == target {
			continue
		}
		changes = append(changes, statusChange(record, target, actor, now))
	}
	return s.store.Apply(ctx, changes)
}

// SectionProgress is recomputed from the store on every call, never cached.
func (s *Service) SectionProgress(ctx context.Context, entityType EntityType, entityID string, fieldNames []string) (Progress, error) {
	if !entityType.Valid() {
		return Progress{}, ErrInvalidEntityType
	}

	records, err := s.store.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return Progress{}, err
	}
	statusByField := make(map[string]Status, len(records))
	for _, record := range records {
		statusByField[record.FieldName] = record.Status
	}

	progress := Progress{Total: len(fieldNames)}
	for _, fieldName := range fieldNames {
		if statusByField[fieldName] == StatusVerified {
			progress.Verified++
		}
	}
	if progress.Total > 0 {
		progress.Percentage = int(math.Round(100 * float64(progress.Verified) / float64(progress.Total)))
	}
	return progress, nil
}

// History returns the field's audit trail newest-first. A field with no
// verification record has an empty history, not an error.
func (s *Service) History(ctx context.Context, entityType EntityType, entityID, fieldName string) ([]AuditEntry, error) {
	record, err := s.Get(ctx, entityType, entityID, fieldName)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return []AuditEntry{}, nil
	}
	return s.store.History(ctx, record.ID)
}

func (s *Service) baseRecord(existing *FieldVerification, entityType EntityType, entityID, fieldName string, now time.Time) FieldVerification {
	if existing != nil {
		return *existing
	}
	return FieldVerification{
		ID:         uuid.NewString(),
		EntityType: entityType,
		EntityID:   entityID,
		FieldName:  fieldName,
		Status:     StatusUnverified,
		Source:     SourceManualEntry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func statusChange(record FieldVerification, target Status, actor string, now time.Time) Change {
	oldStatus := record.Status
	record.Status = target
	record.UpdatedAt = now
	if target == StatusVerified {
		record.VerifiedBy = actor
		record.VerifiedAt = &now
	} else {
		record.VerifiedBy = ""
		record.VerifiedAt = nil
	}

	newStatus := target
	return Change{
		Record: record,
		Audit: AuditEntry{
			ID:             uuid.NewString(),
			VerificationID: record.ID,
			Action:         ActionStatusChange,
			OldStatus:      &oldStatus,
			NewStatus:      &newStatus,
			ChangedBy:      actor,
			ChangedAt:      now,
		},
	}
}

func validateKey(entityType EntityType, entityID, fieldName string) error {
	if !entityType.Valid() {
		return ErrInvalidEntityType
	}
	if entityID == "" {
		return fmt.Errorf("entity id is empty")
	}
	_, err := ParseFieldPath(fieldName)
	return err
}
