package verification

import "time"

type EntityType string

const (
	EntityCandidate EntityType = "candidate"
	EntityProject   EntityType = "project"
)

func (e EntityType) Valid() bool {
	return e == EntityCandidate || e == EntityProject
}

type Status string

const (
	StatusVerified   Status = "verified"
	StatusUnverified Status = "unverified"
)

type Source string

const (
	SourceResumeParse Source = "resume_parse"
	SourceManualEntry Source = "manual_entry"
	SourceZoho        Source = "zoho"
	SourceLinkedin    Source = "linkedin"
)

type Action string

const (
	ActionStatusChange Action = "status_change"
	ActionValueUpdate  Action = "value_update"
)

// FieldVerification is the single verification record for one field of one
// entity. It is upserted in place; history lives in AuditEntry.
type FieldVerification struct {
	ID           string     `json:"id"`
	EntityType   EntityType `json:"entityType"`
	EntityID     string     `json:"entityId"`
	FieldName    string     `json:"fieldName"`
	CurrentValue *string    `json:"currentValue"`
	Status       Status     `json:"status"`
	Source       Source     `json:"source"`
	VerifiedBy   string     `json:"verifiedBy,omitempty"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// AuditEntry is immutable once written. Seq captures insertion order and
// breaks ties between entries sharing a timestamp.
type AuditEntry struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"-"`
	VerificationID string    `json:"verificationId"`
	Action         Action    `json:"action"`
	OldStatus      *Status   `json:"oldStatus,omitempty"`
	NewStatus      *Status   `json:"newStatus,omitempty"`
	OldValue       *string   `json:"oldValue,omitempty"`
	NewValue       *string   `json:"newValue,omitempty"`
	ChangedBy      string    `json:"changedBy,omitempty"`
	ChangedAt      time.Time `json:"changedAt"`
	Reason         string    `json:"reason,omitempty"`
}

// Progress is the verified/total rollup for one section of field names.
type Progress struct {
	Verified   int `json:"verified"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}
