package models

import "time"

// Audit actions recorded for privileged or financial operations.
const (
	AuditActionRoleChange   = "ROLE_CHANGE"
	AuditActionClassStatus  = "CLASS_STATUS"
	AuditActionEnrollment   = "ENROLLMENT_COMPLETE"
	AuditResourceUser       = "user"
	AuditResourceClass      = "class"
	AuditResourceEnrollment = "enrollment"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorEmail *string   `db:"actor_email" json:"actorEmail,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resourceId,omitempty"`
	NewValues  []byte    `db:"new_values" json:"newValues,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ipAddress"`
	UserAgent  string    `db:"user_agent" json:"userAgent"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
