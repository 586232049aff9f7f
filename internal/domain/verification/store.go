package verification

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const verificationColumns = `
    id, entity_type, entity_id, field_name, current_value, status,
    COALESCE(source, ''), COALESCE(verified_by, ''), verified_at,
    COALESCE(notes, ''), created_at, updated_at`

func (s *Store) Get(ctx context.Context, entityType EntityType, entityID, fieldName string) (*FieldVerification, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+verificationColumns+`
    FROM field_verifications
    WHERE entity_type = $1 AND entity_id = $2 AND field_name = $3
  `, entityType, entityID, fieldName)

	record, err := scanVerification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (s *Store) ListForEntity(ctx context.Context, entityType EntityType, entityID string) ([]FieldVerification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+verificationColumns+`
    FROM field_verifications
    WHERE entity_type = $1 AND entity_id = $2
    ORDER BY field_name
  `, entityType, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FieldVerification
	for rows.Next() {
		record, err := scanVerification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	return out, rows.Err()
}

func scanVerification(row pgx.Row) (*FieldVerification, error) {
	var record FieldVerification
	err := row.Scan(
		&record.ID, &record.EntityType, &record.EntityID, &record.FieldName,
		&record.CurrentValue, &record.Status, &record.Source, &record.VerifiedBy,
		&record.VerifiedAt, &record.Notes, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Apply runs the whole batch in one transaction so a record update and its
// audit entry land together, and a bulk verify is all-or-nothing.
func (s *Store) Apply(ctx context.Context, changes []Change) error {
	if len(changes) == 0 {
		return nil
	}
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, change := range changes {
		record := change.Record
		_, err := tx.Exec(ctx, `
      INSERT INTO field_verifications (
        id, entity_type, entity_id, field_name, current_value, status, source,
        verified_by, verified_at, notes, created_at, updated_at
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
      ON CONFLICT (entity_type, entity_id, field_name) DO UPDATE SET
        current_value = EXCLUDED.current_value,
        status = EXCLUDED.status,
        source = EXCLUDED.source,
        verified_by = EXCLUDED.verified_by,
        verified_at = EXCLUDED.verified_at,
        notes = EXCLUDED.notes,
        updated_at = EXCLUDED.updated_at
    `, record.ID, record.EntityType, record.EntityID, record.FieldName,
			record.CurrentValue, record.Status, record.Source, record.VerifiedBy,
			record.VerifiedAt, record.Notes, record.CreatedAt, record.UpdatedAt)
		if err != nil {
			return err
		}

		entry := change.Audit
		_, err = tx.Exec(ctx, `
      INSERT INTO verification_audit_logs (
        id, verification_id, action, old_status, new_status, old_value,
        new_value, changed_by, changed_at, reason
      ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, entry.ID, entry.VerificationID, entry.Action, entry.OldStatus, entry.NewStatus,
			entry.OldValue, entry.NewValue, entry.ChangedBy, entry.ChangedAt, entry.Reason)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) History(ctx context.Context, verificationID string) ([]AuditEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, seq, verification_id, action, old_status, new_status,
           old_value, new_value, COALESCE(changed_by, ''), changed_at, COALESCE(reason, '')
    FROM verification_audit_logs
    WHERE verification_id = $1
    ORDER BY changed_at DESC, seq DESC
  `, verificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		if err := rows.Scan(
			&entry.ID, &entry.Seq, &entry.VerificationID, &entry.Action,
			&entry.OldStatus, &entry.NewStatus, &entry.OldValue, &entry.NewValue,
			&entry.ChangedBy, &entry.ChangedAt, &entry.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, `SELECT status, COUNT(1) FROM field_verifications GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		out[status] = count
	}
	return out, rows.Err()
}
